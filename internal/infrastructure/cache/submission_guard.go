package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopfront/backend/internal/application/checkout"
)

const submissionKeyPrefix = "checkout:submission:"

// RedisSubmissionGuard implements checkout.SubmissionGuard using SETNX.
// Only one submission per session can hold the key at a time; the TTL
// bounds how long a crashed submission blocks the session.
type RedisSubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSubmissionGuard creates a submission guard sharing an existing client
func NewRedisSubmissionGuard(client *redis.Client, ttl time.Duration) *RedisSubmissionGuard {
	return &RedisSubmissionGuard{client: client, ttl: ttl}
}

// Acquire attempts to claim the in-flight marker for a session.
// Returns false if another submission currently holds it.
func (g *RedisSubmissionGuard) Acquire(ctx context.Context, sessionID string) (bool, error) {
	acquired, err := g.client.SetNX(ctx, submissionKeyPrefix+sessionID, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submission guard: %w", err)
	}
	return acquired, nil
}

// Release frees the in-flight marker for a session
func (g *RedisSubmissionGuard) Release(ctx context.Context, sessionID string) error {
	if err := g.client.Del(ctx, submissionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to release submission guard: %w", err)
	}
	return nil
}

var _ checkout.SubmissionGuard = (*RedisSubmissionGuard)(nil)

// InMemorySubmissionGuard implements checkout.SubmissionGuard with an
// in-process map. Suitable for single-instance deployments and testing.
type InMemorySubmissionGuard struct {
	mu   sync.Mutex
	held map[string]time.Time
	ttl  time.Duration
}

// NewInMemorySubmissionGuard creates an in-memory submission guard
func NewInMemorySubmissionGuard(ttl time.Duration) *InMemorySubmissionGuard {
	return &InMemorySubmissionGuard{
		held: make(map[string]time.Time),
		ttl:  ttl,
	}
}

// Acquire attempts to claim the in-flight marker for a session
func (g *InMemorySubmissionGuard) Acquire(ctx context.Context, sessionID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if expiresAt, exists := g.held[sessionID]; exists && time.Now().Before(expiresAt) {
		return false, nil
	}

	g.held[sessionID] = time.Now().Add(g.ttl)
	return true, nil
}

// Release frees the in-flight marker for a session
func (g *InMemorySubmissionGuard) Release(ctx context.Context, sessionID string) error {
	g.mu.Lock()
	delete(g.held, sessionID)
	g.mu.Unlock()
	return nil
}

var _ checkout.SubmissionGuard = (*InMemorySubmissionGuard)(nil)
