package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"brightlearn-backend/internal/middleware"
	"brightlearn-backend/internal/models"
	"brightlearn-backend/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	webhookSecret  string
}

func NewPaymentHandler(paymentService *services.PaymentService, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, webhookSecret: webhookSecret}
}

func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	order, err := h.paymentService.Checkout(r.Context(), userID, req.Plan)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// Webhook is the payment provider's server-to-server callback. It is
// authenticated by a shared secret header, not a user JWT.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get("X-Webhook-Secret")
	if h.webhookSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		writeJSON(w, http.StatusUnauthorized, errorResp("UNAUTHORIZED", "Invalid webhook secret", r))
		return
	}

	var payload models.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := h.paymentService.HandleWebhook(r.Context(), payload); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Webhook processed"})
}

func (h *PaymentHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	orders, err := h.paymentService.ListOrders(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load orders", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}
