// Package cache implements the program-score cache on Redis. The cache
// sits outside the engine: the ranking service consults it before
// aggregating and callers that write ratings, members, or preferences
// invalidate the affected crew.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trailcrew/trekrank/internal/domain"
	"github.com/trailcrew/trekrank/internal/ports"
)

var _ ports.ProgramScoreCache = (*ProgramScoreCache)(nil)

// ProgramScoreCache caches crew-level aggregated program scores in
// Redis, one JSON entry per (crew, method).
type ProgramScoreCache struct {
	client *redis.Client
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// New creates a ProgramScoreCache against the given Redis instance.
func New(opts Options) *ProgramScoreCache {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return &ProgramScoreCache{client: client}
}

// NewWithClient wraps an existing client; used by tests.
func NewWithClient(client *redis.Client) *ProgramScoreCache {
	return &ProgramScoreCache{client: client}
}

// Ping verifies the connection.
func (c *ProgramScoreCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (c *ProgramScoreCache) Close() error { return c.client.Close() }

func key(crewID int64, method domain.Method) string {
	return fmt.Sprintf("trekrank:program_scores:%d:%s", crewID, method)
}

// Get returns the cached scores for the crew and method. A missing or
// unreadable entry is a miss, not an error; the caller recomputes.
func (c *ProgramScoreCache) Get(ctx context.Context, crewID int64, method domain.Method) (map[int64]float64, bool, error) {
	data, err := c.client.Get(ctx, key(crewID, method)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get crew %d method %s: %w", crewID, method, err)
	}

	var scores map[int64]float64
	if err := json.Unmarshal(data, &scores); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return scores, true, nil
}

// Set stores the scores for the crew and method with the given TTL.
func (c *ProgramScoreCache) Set(ctx context.Context, crewID int64, method domain.Method, scores map[int64]float64, ttl time.Duration) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("marshal program scores: %w", err)
	}
	if err := c.client.Set(ctx, key(crewID, method), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set crew %d method %s: %w", crewID, method, err)
	}
	return nil
}

// InvalidateCrew drops every cached entry for the crew across all
// aggregation methods.
func (c *ProgramScoreCache) InvalidateCrew(ctx context.Context, crewID int64) error {
	keys := make([]string, 0, 4)
	for _, m := range []domain.Method{domain.MethodTotal, domain.MethodAverage, domain.MethodMedian, domain.MethodMode} {
		keys = append(keys, key(crewID, m))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate crew %d: %w", crewID, err)
	}
	return nil
}
