// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cabernetwork/provider-video-123tv/internal/tv123"
)

// RedisStore is a Redis-backed payload store for callers that want feed
// payloads to outlive a single aggregation run. Failed round-trips degrade
// to cache misses; the store never fails an aggregation.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string        // Redis server address (host:port)
	Password string        // optional
	DB       int           // database number
	TTL      time.Duration // payload lifetime
}

// NewRedisStore connects to Redis and returns a payload store.
func NewRedisStore(cfg RedisConfig, logger zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	logger.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("connected to Redis feed cache")
	return &RedisStore{client: client, ttl: ttl, logger: logger}, nil
}

func (s *RedisStore) key(feedID string) string {
	return "tv123:feed:" + feedID
}

// Get retrieves a cached feed payload.
func (s *RedisStore) Get(ctx context.Context, feedID string) (*tv123.Feed, bool) {
	val, err := s.client.Get(ctx, s.key(feedID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("feed_id", feedID).Msg("redis get failed")
		return nil, false
	}

	var feed tv123.Feed
	if err := json.Unmarshal(val, &feed); err != nil {
		s.logger.Warn().Err(err).Str("feed_id", feedID).Msg("cached feed payload unmarshal failed")
		return nil, false
	}
	return &feed, true
}

// Put stores a feed payload with the configured TTL.
func (s *RedisStore) Put(ctx context.Context, feedID string, feed *tv123.Feed) {
	data, err := json.Marshal(feed)
	if err != nil {
		s.logger.Warn().Err(err).Str("feed_id", feedID).Msg("feed payload marshal failed")
		return
	}
	if err := s.client.Set(ctx, s.key(feedID), data, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Str("feed_id", feedID).Msg("redis set failed")
	}
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
