package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"brightlearn-backend/internal/models"
)

// Excerpts keep enough of the offending text for review without storing
// whole conversations.
const maxExcerptLength = 200

// ModerationLogger records moderation outcomes off the request path: the
// event is queued for persistence by the worker pool and published to
// the admin live feed. Fire-and-forget; a Redis hiccup never fails the
// chat request.
type ModerationLogger struct {
	redis *redis.Client
}

func NewModerationLogger(redisClient *redis.Client) *ModerationLogger {
	return &ModerationLogger{redis: redisClient}
}

func (l *ModerationLogger) LogEvent(action, reason, text, personaID string) {
	event := models.ModerationEvent{
		ID:        uuid.New(),
		Action:    action,
		Reason:    reason,
		Excerpt:   truncate(text, maxExcerptLength),
		PersonaID: personaID,
		CreatedAt: time.Now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(event)
		if err != nil {
			log.Printf("moderation log: failed to marshal event: %v", err)
			return
		}

		if err := l.redis.RPush(ctx, models.QueueModerationEvents, data).Err(); err != nil {
			log.Printf("moderation log: failed to queue event: %v", err)
		}
		if err := l.redis.Publish(ctx, models.ChannelModerationFeed, data).Err(); err != nil {
			log.Printf("moderation log: failed to publish event: %v", err)
		}
	}()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
