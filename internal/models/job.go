package models

// EmailJob is the envelope pushed onto the email delivery queue. The
// worker pool picks the concrete send method from Type.
type EmailJob struct {
	Type    string `json:"type"` // verification, receipt, contact, reminder
	To      string `json:"to"`
	Name    string `json:"name,omitempty"`
	Token   string `json:"token,omitempty"`
	Plan    string `json:"plan,omitempty"`
	Amount  int    `json:"amount_cents,omitempty"`
	From    string `json:"from,omitempty"`    // contact form sender
	Message string `json:"message,omitempty"` // contact form body
}

// Redis queue and pub/sub channel names shared by producers and the
// worker pool.
const (
	QueueModerationEvents = "queue:moderation-events"
	QueueEmailDelivery    = "queue:email-delivery"
	ChannelModerationFeed = "moderation:feed"
)
