package prefs

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// profileTTL is refreshed on every write.
const profileTTL = 365 * 24 * time.Hour

// RedisBackend keeps one hash per profile.
type RedisBackend struct {
	rdb *redis.Client
}

func NewRedisBackend(rdb *redis.Client) *RedisBackend {
	return &RedisBackend{rdb: rdb}
}

func redisKey(profile string) string {
	return "prefs:" + profile
}

func (b *RedisBackend) Load(ctx context.Context, profile string, key Key) (string, bool, error) {
	v, err := b.rdb.HGet(ctx, redisKey(profile), string(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (b *RedisBackend) Save(ctx context.Context, profile string, key Key, value string) error {
	pipe := b.rdb.TxPipeline()
	pipe.HSet(ctx, redisKey(profile), string(key), value)
	pipe.Expire(ctx, redisKey(profile), profileTTL)
	_, err := pipe.Exec(ctx)
	return err
}

var _ Backend = (*RedisBackend)(nil)
