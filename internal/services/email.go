package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

type EmailService struct {
	host         string
	port         string
	user         string
	pass         string
	from         string
	supportEmail string
	frontendURL  string
	devMode      bool
}

func NewEmailService(host, port, user, pass, from, supportEmail, frontendURL string) *EmailService {
	devMode := host == "" || user == ""
	if devMode {
		log.Println("⚠ Email service running in DEV MODE (logging to console)")
	}
	return &EmailService{
		host:         host,
		port:         port,
		user:         user,
		pass:         pass,
		from:         from,
		supportEmail: supportEmail,
		frontendURL:  frontendURL,
		devMode:      devMode,
	}
}

func (s *EmailService) SendVerificationEmail(to, name, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, token)

	subject := "Verify your BrightLearn account"
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 0; background-color: #fefce8;">
  <div style="max-width: 480px; margin: 40px auto; background: white; border-radius: 16px; box-shadow: 0 4px 24px rgba(0,0,0,0.08); overflow: hidden;">
    <div style="background: linear-gradient(135deg, #f59e0b 0%%, #f97316 100%%); padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 24px; font-weight: 700;">BrightLearn</h1>
      <p style="color: rgba(255,255,255,0.9); margin: 8px 0 0; font-size: 14px;">Learning made fun</p>
    </div>
    <div style="padding: 32px;">
      <h2 style="margin: 0 0 16px; font-size: 20px; color: #1e293b;">Welcome, %s!</h2>
      <p style="color: #64748b; font-size: 14px; line-height: 1.6; margin: 0 0 24px;">
        One more step before the learning adventure begins: click the button below to verify this email address.
      </p>
      <a href="%s" style="display: inline-block; background: #f59e0b; color: white; text-decoration: none; padding: 12px 32px; border-radius: 8px; font-weight: 600; font-size: 14px;">
        Verify Email
      </a>
      <p style="color: #94a3b8; font-size: 12px; margin: 24px 0 0; line-height: 1.5;">
        If the button doesn't work, copy and paste this link:<br>
        <a href="%s" style="color: #f59e0b;">%s</a>
      </p>
      <p style="color: #94a3b8; font-size: 12px; margin: 16px 0 0;">
        This link expires in 24 hours.
      </p>
    </div>
  </div>
</body>
</html>`, name, verifyURL, verifyURL, verifyURL)

	return s.sendHTML(to, subject, body)
}

func (s *EmailService) SendReceiptEmail(to, plan string, amountCents int) error {
	subject := "Your BrightLearn receipt"
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 0; background-color: #fefce8;">
  <div style="max-width: 480px; margin: 40px auto; background: white; border-radius: 16px; box-shadow: 0 4px 24px rgba(0,0,0,0.08); overflow: hidden;">
    <div style="background: linear-gradient(135deg, #f59e0b 0%%, #f97316 100%%); padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 24px; font-weight: 700;">BrightLearn</h1>
    </div>
    <div style="padding: 32px;">
      <h2 style="margin: 0 0 16px; font-size: 20px; color: #1e293b;">Thanks for upgrading!</h2>
      <p style="color: #64748b; font-size: 14px; line-height: 1.6; margin: 0 0 8px;">
        Plan: <strong>%s</strong>
      </p>
      <p style="color: #64748b; font-size: 14px; line-height: 1.6; margin: 0 0 24px;">
        Amount charged: <strong>$%.2f</strong>
      </p>
      <p style="color: #94a3b8; font-size: 12px; margin: 0;">
        Questions? Just reply to this email.
      </p>
    </div>
  </div>
</body>
</html>`, planDisplayName(plan), float64(amountCents)/100)

	return s.sendHTML(to, subject, body)
}

// SendContactRelay forwards a contact-form submission to the support inbox.
func (s *EmailService) SendContactRelay(name, from, message string) error {
	subject := fmt.Sprintf("Contact form: %s", name)
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif;">
  <p><strong>From:</strong> %s &lt;%s&gt;</p>
  <hr>
  <p style="white-space: pre-wrap;">%s</p>
</body>
</html>`, name, from, message)

	return s.sendHTML(s.supportEmail, subject, body)
}

func (s *EmailService) SendPracticeReminder(to, name string) error {
	subject := "Your tutors miss you!"
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 0; background-color: #fefce8;">
  <div style="max-width: 480px; margin: 40px auto; background: white; border-radius: 16px; box-shadow: 0 4px 24px rgba(0,0,0,0.08); overflow: hidden;">
    <div style="background: linear-gradient(135deg, #f59e0b 0%%, #f97316 100%%); padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 24px; font-weight: 700;">BrightLearn</h1>
    </div>
    <div style="padding: 32px;">
      <h2 style="margin: 0 0 16px; font-size: 20px; color: #1e293b;">Hey %s!</h2>
      <p style="color: #64748b; font-size: 14px; line-height: 1.6; margin: 0 0 24px;">
        It's been a little while since your last lesson. ByteBot and the other tutors
        have new challenges waiting for you — a few minutes of practice keeps your
        skills growing!
      </p>
      <a href="%s" style="display: inline-block; background: #f59e0b; color: white; text-decoration: none; padding: 12px 32px; border-radius: 8px; font-weight: 600; font-size: 14px;">
        Jump Back In
      </a>
    </div>
  </div>
</body>
</html>`, name, s.frontendURL)

	return s.sendHTML(to, subject, body)
}

func planDisplayName(plan string) string {
	switch plan {
	case "premium_monthly":
		return "Premium (monthly)"
	case "premium_yearly":
		return "Premium (yearly)"
	default:
		return plan
	}
}

func (s *EmailService) sendHTML(to, subject, htmlBody string) error {
	if s.devMode {
		log.Printf("📧 [DEV EMAIL] To: %s | Subject: %s", to, subject)
		return nil
	}

	headers := []string{
		fmt.Sprintf("From: %s", s.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}

	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	log.Printf("📧 Email sent to %s: %s", to, subject)
	return nil
}
