package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"notemaker-server/internal/config"
	"notemaker-server/internal/summary"

	"github.com/go-redis/redis/v8"
)

const summaryKeyPrefix = "summary:"

// SummaryCache memoizes summaries by the text they were computed from.
// Get returns nil, nil on a miss.
type SummaryCache interface {
	Get(ctx context.Context, text string) (*summary.Summary, error)
	Set(ctx context.Context, text string, s summary.Summary) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) SummaryCache {
	return &redisSummaryCache{
		client: client,
		ttl:    ttl,
	}
}

// ConnectRedis builds a client and pings it within cfg.PingTimeout.
func ConnectRedis(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return client, nil
}

func summaryKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return summaryKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *redisSummaryCache) Get(ctx context.Context, text string) (*summary.Summary, error) {
	raw, err := c.client.Get(ctx, summaryKey(text)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached summary: %w", err)
	}

	var s summary.Summary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to decode cached summary: %w", err)
	}

	return &s, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, text string, s summary.Summary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	if err := c.client.Set(ctx, summaryKey(text), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache summary: %w", err)
	}

	return nil
}
