package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"brightlearn-backend/internal/models"
	"brightlearn-backend/internal/repository"
)

// planPrices is the fixed catalogue; the mock provider charges whatever
// we tell it, so prices live here rather than in provider config.
var planPrices = map[string]int{
	"premium_monthly": 900,
	"premium_yearly":  9000,
}

type PaymentService struct {
	orderRepo *repository.OrderRepo
	userRepo  *repository.UserRepo
	redis     *redis.Client
}

func NewPaymentService(orderRepo *repository.OrderRepo, userRepo *repository.UserRepo, redisClient *redis.Client) *PaymentService {
	return &PaymentService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		redis:     redisClient,
	}
}

// Checkout creates a pending order and returns the provider reference
// the frontend hands to the (mock) payment page.
func (s *PaymentService) Checkout(ctx context.Context, userID uuid.UUID, plan string) (*models.Order, error) {
	amount, ok := planPrices[plan]
	if !ok {
		return nil, &ValidationError{Fields: map[string]string{"plan": "Unknown plan"}}
	}

	ref, err := generateToken(16)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:      userID,
		Plan:        plan,
		AmountCents: amount,
		Currency:    "USD",
		ProviderRef: "mockpay_" + ref,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// HandleWebhook settles an order from the provider callback. Paid orders
// upgrade the user's plan and queue a receipt email; anything else marks
// the order failed.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	order, err := s.orderRepo.GetByProviderRef(ctx, payload.ProviderRef)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "Unknown order reference"}
		}
		return err
	}

	if order.Status != "pending" {
		// Duplicate callback; settled orders stay settled.
		return nil
	}

	switch payload.Status {
	case "paid":
		if err := s.orderRepo.MarkPaid(ctx, order.ID); err != nil {
			return err
		}
		if err := s.userRepo.UpdatePlan(ctx, order.UserID, order.Plan); err != nil {
			return fmt.Errorf("order %s paid but plan upgrade failed: %w", order.ID, err)
		}

		user, err := s.userRepo.GetByID(ctx, order.UserID)
		if err == nil {
			QueueEmail(ctx, s.redis, models.EmailJob{
				Type:   "receipt",
				To:     user.Email,
				Name:   user.DisplayName,
				Plan:   order.Plan,
				Amount: order.AmountCents,
			})
		}
		return nil

	case "failed":
		return s.orderRepo.MarkFailed(ctx, order.ID)

	default:
		return &ValidationError{Fields: map[string]string{"status": "Status must be paid or failed"}}
	}
}

func (s *PaymentService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}
