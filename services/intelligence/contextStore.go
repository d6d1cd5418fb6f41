// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"time"

	"venueflow/models"

	"github.com/go-redis/redis/v8"
)

const nluContextPrefix = "nlu:ctx:"

// RedisContextStore keeps a rolling window of recent messages per event so
// the Gemini extractor can resolve references like "the bigger one".
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

// Append records one message for an event, trimming to the last 20.
func (s *RedisContextStore) Append(ctx context.Context, eventID, text string) error {
	key := nluContextPrefix + eventID
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, text)
	pipe.LTrim(ctx, key, -20, -1)
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Recent returns up to n most recent messages for the snapshot's event.
func (s *RedisContextStore) Recent(ctx context.Context, snapshot models.StateSnapshot, n int) ([]string, error) {
	key := nluContextPrefix + snapshot.EventID
	msgs, err := s.client.LRange(ctx, key, int64(-n), -1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return msgs, err
}

// Clear drops the context window for an event.
func (s *RedisContextStore) Clear(ctx context.Context, eventID string) error {
	return s.client.Del(ctx, nluContextPrefix+eventID).Err()
}
