package ratelimit

import (
	"context"
	"testing"
	"time"
)

func newFixedClockMemory(limit int, window time.Duration) (*Memory, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := &Memory{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		now:     func() time.Time { return now },
	}
	return m, &now
}

func TestMemoryLimiter_DeniesOverLimit(t *testing.T) {
	m, _ := newFixedClockMemory(10, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		allowed, err := m.Allow(ctx, "client-a")
		if err != nil {
			t.Fatalf("Allow returned error: %v", err)
		}
		if !allowed {
			t.Fatalf("Request %d should be allowed", i)
		}
	}

	allowed, _ := m.Allow(ctx, "client-a")
	if allowed {
		t.Error("11th request within the window should be denied")
	}
}

func TestMemoryLimiter_ResetsAfterWindow(t *testing.T) {
	m, clock := newFixedClockMemory(10, time.Minute)
	ctx := context.Background()

	for i := 0; i < 11; i++ {
		m.Allow(ctx, "client-a")
	}

	*clock = clock.Add(61 * time.Second)

	allowed, _ := m.Allow(ctx, "client-a")
	if !allowed {
		t.Error("First request after the window elapses should be allowed")
	}

	if e := m.entries["client-a"]; e.count != 1 {
		t.Errorf("Expected count reset to 1, got %d", e.count)
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	m, _ := newFixedClockMemory(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		m.Allow(ctx, "client-a")
	}

	if allowed, _ := m.Allow(ctx, "client-a"); allowed {
		t.Error("client-a should be over its limit")
	}
	if allowed, _ := m.Allow(ctx, "client-b"); !allowed {
		t.Error("client-b should not share client-a's counter")
	}
}
