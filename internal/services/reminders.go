package services

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"brightlearn-backend/internal/models"
	"brightlearn-backend/internal/repository"
)

const (
	reminderInactivityCutoff = 7 * 24 * time.Hour
	reminderPollInterval     = 24 * time.Hour
	reminderDedupeTTL        = 7 * 24 * time.Hour
)

// ReminderScheduler nudges students who haven't touched a lesson in a
// week. Delivery goes through the email queue; a Redis key per user
// keeps restarts from re-sending the same nudge.
type ReminderScheduler struct {
	userRepo *repository.UserRepo
	redis    *redis.Client
	stopChan chan struct{}
}

func NewReminderScheduler(userRepo *repository.UserRepo, redisClient *redis.Client) *ReminderScheduler {
	return &ReminderScheduler{
		userRepo: userRepo,
		redis:    redisClient,
		stopChan: make(chan struct{}),
	}
}

func (s *ReminderScheduler) Start() {
	if s.userRepo == nil || s.redis == nil {
		return
	}

	go s.loop()

	log.Printf("Practice reminder scheduler started")
}

func (s *ReminderScheduler) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
		close(s.stopChan)
	}
}

func (s *ReminderScheduler) loop() {
	// Run on startup as well as by interval.
	s.sendPracticeReminders(context.Background(), time.Now().UTC())

	ticker := time.NewTicker(reminderPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sendPracticeReminders(context.Background(), time.Now().UTC())
		}
	}
}

func (s *ReminderScheduler) sendPracticeReminders(ctx context.Context, now time.Time) {
	recipients, err := s.userRepo.ListInactiveSince(ctx, now.Add(-reminderInactivityCutoff))
	if err != nil {
		log.Printf("practice reminders: failed to list recipients: %v", err)
		return
	}

	for _, recipient := range recipients {
		dedupeKey := "reminder:sent:" + recipient.ID.String()
		set, err := s.redis.SetNX(ctx, dedupeKey, now.Format(time.RFC3339), reminderDedupeTTL).Result()
		if err != nil {
			log.Printf("practice reminders: dedupe check failed for %s: %v", recipient.Email, err)
			continue
		}
		if !set {
			// Already nudged within the TTL window.
			continue
		}

		QueueEmail(ctx, s.redis, models.EmailJob{
			Type: "reminder",
			To:   recipient.Email,
			Name: recipient.DisplayName,
		})
	}
}
