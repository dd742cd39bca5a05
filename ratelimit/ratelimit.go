// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	bucketCleanupThreshold = 1 * time.Hour
	cleanupInterval        = 30 * time.Minute
)

// Limiter decides whether another attempt identified by key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// Memory is a per-process limiter. Each key gets capacity attempts per
// window; the bucket refills completely once the window has passed.
type Memory struct {
	mu          sync.Mutex
	capacity    int
	window      time.Duration
	buckets     map[string]*bucket
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewMemory(capacity int, window time.Duration) *Memory {
	m := &Memory{
		capacity:    capacity,
		window:      window,
		buckets:     make(map[string]*bucket),
		stopCleanup: make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

func (m *Memory) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup(time.Now())
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *Memory) cleanup(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, b := range m.buckets {
		if now.Sub(b.lastRefill) > bucketCleanupThreshold {
			delete(m.buckets, key)
		}
	}
}

// Stop ends the background cleanup goroutine.
func (m *Memory) Stop() {
	m.stopOnce.Do(func() { close(m.stopCleanup) })
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	b, exists := m.buckets[key]

	if !exists {
		m.buckets[key] = &bucket{
			tokens:     m.capacity - 1,
			lastRefill: now,
		}
		return m.capacity > 0, nil
	}

	if now.Sub(b.lastRefill) >= m.window {
		b.tokens = m.capacity
		b.lastRefill = now
	}

	if b.tokens <= 0 {
		return false, nil
	}

	b.tokens--
	return true, nil
}

// allowScript counts a hit and opens the window in one round trip. A key
// left without a TTL gets one on its next hit.
var allowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// Redis is a fixed-window limiter shared by every server instance.
type Redis struct {
	client   *redis.Client
	capacity int
	window   time.Duration
	prefix   string
}

func NewRedis(client *redis.Client, capacity int, window time.Duration) *Redis {
	return &Redis{
		client:   client,
		capacity: capacity,
		window:   window,
		prefix:   "ratelimit:",
	}
}

// NewRedisFromURL parses a redis:// URL and verifies the server responds.
func NewRedisFromURL(ctx context.Context, url string, capacity int, window time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedis(client, capacity, window), nil
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	count, err := allowScript.Run(ctx, r.client, []string{r.prefix + key}, r.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit increment: %w", err)
	}
	return count <= int64(r.capacity), nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
