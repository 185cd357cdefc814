package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Plan        string     `json:"plan"`
	AmountCents int        `json:"amount_cents"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"` // pending, paid, failed
	ProviderRef string     `json:"provider_ref"`
	CreatedAt   time.Time  `json:"created_at"`
	PaidAt      *time.Time `json:"paid_at"`
}

type CheckoutRequest struct {
	Plan string `json:"plan"`
}

// WebhookPayload is the mock payment provider's callback body.
type WebhookPayload struct {
	ProviderRef string `json:"provider_ref"`
	Status      string `json:"status"` // paid or failed
}
