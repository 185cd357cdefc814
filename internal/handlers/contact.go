package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/redis/go-redis/v9"

	"brightlearn-backend/internal/models"
	"brightlearn-backend/internal/moderation"
	"brightlearn-backend/internal/ratelimit"
	"brightlearn-backend/internal/services"
)

var contactEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ContactHandler relays contact-form submissions to the support inbox.
// Open to unauthenticated callers, so it gets its own tight limiter.
type ContactHandler struct {
	limiter ratelimit.Limiter
	redis   *redis.Client
}

func NewContactHandler(limiter ratelimit.Limiter, redisClient *redis.Client) *ContactHandler {
	return &ContactHandler{limiter: limiter, redis: redisClient}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	allowed, err := h.limiter.Allow(r.Context(), r.RemoteAddr)
	if err != nil {
		log.Printf("contact: rate limiter error for %s: %v", r.RemoteAddr, err)
		allowed = true
	}
	if !allowed {
		writeJSON(w, http.StatusTooManyRequests, errorResp("RATE_LIMITED",
			"You've sent a few messages already — give us a little time to reply before sending more.", r))
		return
	}

	name := moderation.Sanitize(req.Name)
	message := moderation.Sanitize(req.Message)

	fields := map[string]string{}
	if name == "" {
		fields["name"] = "Name is required"
	}
	if !contactEmailRegex.MatchString(req.Email) {
		fields["email"] = "A valid email address is required"
	}
	if message == "" {
		fields["message"] = "Message is required"
	}
	if len(message) > 5000 {
		fields["message"] = "Message must be at most 5000 characters"
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	services.QueueEmail(r.Context(), h.redis, models.EmailJob{
		Type:    "contact",
		Name:    name,
		From:    strings.TrimSpace(req.Email),
		Message: message,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Thanks! We'll get back to you soon."})
}
