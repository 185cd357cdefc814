package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter bounds abuse per identity per time window. Denial is a soft
// condition reported to the caller, never an error; the error return is
// reserved for backend failures.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type entry struct {
	count     int
	resetTime time.Time
}

// Memory is a process-local fixed-window limiter. The table is not
// durable and the guarantee only holds within one process; use the Redis
// backend when running multiple instances.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewMemory(limit int, window time.Duration) *Memory {
	m := &Memory{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}

	// Sweep expired entries so abandoned identities don't pile up.
	go func() {
		for {
			time.Sleep(window)
			m.mu.Lock()
			cutoff := m.now()
			for key, e := range m.entries {
				if cutoff.After(e.resetTime) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		}
	}()

	return m
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[key]
	if !ok || now.After(e.resetTime) {
		m.entries[key] = &entry{count: 1, resetTime: now.Add(m.window)}
		return true, nil
	}

	e.count++
	return e.count <= m.limit, nil
}

// Redis is a fixed-window limiter on a shared TTL-capable store, so the
// bound holds across server instances. INCR is atomic, so unlike the
// in-memory table there is no window-boundary race.
type Redis struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedis(client *redis.Client, prefix string, limit int, window time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, limit: limit, window: window}
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := r.prefix + key

	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		// Fail open: this is an abuse deterrent, not a hard quota.
		return true, err
	}
	if n == 1 {
		r.client.Expire(ctx, k, r.window)
	}
	return n <= int64(r.limit), nil
}
