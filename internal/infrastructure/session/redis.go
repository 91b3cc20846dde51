package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fortunaclub/spinbot/internal/core/domain"
)

const redisKeyPrefix = "session:"

// RedisStore keeps one JSON-encoded session per user key. Used instead of
// the file store when Redis is configured, so several bot replicas can
// share identity state.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (domain.Session, bool, error) {
	raw, err := s.client.Get(ctx, redisKey(userID)).Result()
	if err == redis.Nil {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("session: redis get: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return domain.Session{}, false, fmt.Errorf("session: decode: %w", err)
	}
	return sess, true, nil
}

func (s *RedisStore) Set(ctx context.Context, userID int64, sess domain.Session) error {
	if sess.Phone == "" {
		prev, ok, err := s.Get(ctx, userID)
		if err != nil {
			return err
		}
		if ok {
			sess.Phone = prev.Phone
		}
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, redisKey(userID)).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}

func redisKey(userID int64) string {
	return fmt.Sprintf("%s%d", redisKeyPrefix, userID)
}
