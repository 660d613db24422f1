package revalidate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// Message is published to the Redis channel for every revalidation.
type Message struct {
	Paths []string `json:"paths"`
	At    int64    `json:"at"`
}

// RedisNotifier publishes invalidated paths on a Redis channel so that
// every instance of the host can refresh its views.
type RedisNotifier struct {
	client   *redis.Client
	channel  string
	patterns []string
}

// NewRedisNotifier creates a notifier publishing on channel. If patterns
// are given, only paths matching one of them are published.
func NewRedisNotifier(client *redis.Client, channel string, patterns ...string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel, patterns: patterns}
}

// Connect creates a Redis client and verifies connectivity.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info().Str("addr", addr).Msg("redis client connected")
	return rdb, nil
}

// Revalidate publishes the paths. Failures are logged, a stale view on
// another instance must not fail the mutation that caused it.
func (n *RedisNotifier) Revalidate(ctx context.Context, paths ...string) {
	paths = filter(n.patterns, paths)
	if len(paths) == 0 {
		return
	}

	body, err := json.Marshal(Message{Paths: paths, At: time.Now().Unix()})
	if err != nil {
		log.Error().Err(err).Msg("revalidate: marshal message")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err = n.client.Publish(ctx, n.channel, body).Err()
	if err != nil {
		log.Warn().Err(err).Str("channel", n.channel).Strs("paths", paths).Msg("revalidate: publish failed")
	}
}
