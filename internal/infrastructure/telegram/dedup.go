package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// RedisDedup provides update idempotency checks backed by Redis.
// Key format: update:<update_id>
type RedisDedup struct {
	client *redis.Client
}

func NewRedisDedup(client *redis.Client) *RedisDedup {
	return &RedisDedup{client: client}
}

func (d *RedisDedup) IsDuplicate(ctx context.Context, updateID int) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(updateID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this update has been processed (expires after dedupTTL).
func (d *RedisDedup) Mark(ctx context.Context, updateID int) error {
	return d.client.Set(ctx, d.key(updateID), "1", dedupTTL).Err()
}

func (d *RedisDedup) key(updateID int) string {
	return fmt.Sprintf("update:%d", updateID)
}

// NopDedup treats every update as new. Used when Redis is not configured;
// Telegram's own offset tracking already makes redelivery rare.
type NopDedup struct{}

func (NopDedup) IsDuplicate(context.Context, int) (bool, error) { return false, nil }
func (NopDedup) Mark(context.Context, int) error                { return nil }
