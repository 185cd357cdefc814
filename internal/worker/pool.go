package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"brightlearn-backend/internal/models"
	"brightlearn-backend/internal/repository"
	"brightlearn-backend/internal/services"
)

// Pool drains the Redis queues that keep slow work off the request
// path: moderation events headed for Postgres and outbound email.
type Pool struct {
	redis          *redis.Client
	email          *services.EmailService
	moderationRepo *repository.ModerationRepo
	workerCount    int
	stopChan       chan struct{}
}

func NewPool(
	redisClient *redis.Client,
	email *services.EmailService,
	moderationRepo *repository.ModerationRepo,
	workerCount int,
) *Pool {
	return &Pool{
		redis:          redisClient,
		email:          email,
		moderationRepo: moderationRepo,
		workerCount:    workerCount,
		stopChan:       make(chan struct{}),
	}
}

func (p *Pool) Start() {
	queues := []string{
		models.QueueModerationEvents,
		models.QueueEmailDelivery,
	}

	for i := 0; i < p.workerCount; i++ {
		go p.worker(i, queues)
	}

	log.Printf("Started %d worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int, queues []string) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, queues...).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		queue, payload := result[0], result[1]

		switch queue {
		case models.QueueModerationEvents:
			if err := p.processModerationEvent(ctx, payload); err != nil {
				log.Printf("Worker %d: moderation event failed: %v", id, err)
			}
		case models.QueueEmailDelivery:
			if err := p.processEmailJob(ctx, payload); err != nil {
				log.Printf("Worker %d: email job failed: %v", id, err)
			}
		default:
			log.Printf("Worker %d: message from unknown queue %s", id, queue)
		}
	}
}

func (p *Pool) processModerationEvent(ctx context.Context, payload string) error {
	var event models.ModerationEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return fmt.Errorf("failed to parse moderation event: %w", err)
	}

	// The event carries its own ID, so a requeued duplicate can be
	// fenced off with a short-lived lock.
	lockKey := fmt.Sprintf("event_lock:%s", event.ID.String())
	locked, err := p.redis.SetNX(ctx, lockKey, "1", 10*time.Minute).Result()
	if err != nil || !locked {
		return nil
	}

	if err := p.moderationRepo.Insert(ctx, &event); err != nil {
		p.redis.Del(ctx, lockKey)
		return fmt.Errorf("failed to persist moderation event %s: %w", event.ID, err)
	}

	return nil
}

func (p *Pool) processEmailJob(ctx context.Context, payload string) error {
	var job models.EmailJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return fmt.Errorf("failed to parse email job: %w", err)
	}

	switch job.Type {
	case "verification":
		return p.email.SendVerificationEmail(job.To, job.Name, job.Token)
	case "receipt":
		return p.email.SendReceiptEmail(job.To, job.Plan, job.Amount)
	case "contact":
		return p.email.SendContactRelay(job.Name, job.From, job.Message)
	case "reminder":
		return p.email.SendPracticeReminder(job.To, job.Name)
	default:
		return fmt.Errorf("unknown email job type: %s", job.Type)
	}
}
