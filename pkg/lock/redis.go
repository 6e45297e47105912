package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Compare-and-delete so only the acquisition that set the key can release it.
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker serializes booking writes across instances via SetNX.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(redisAddr string) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("lock.NewRedisLocker: %w", err)
	}

	return &RedisLocker{client: client}, nil
}

func (r *RedisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, "lock:"+key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("lock.RedisLocker.Lock: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (r *RedisLocker) Unlock(ctx context.Context, key, token string) error {
	if err := unlockScript.Run(ctx, r.client, []string{"lock:" + key}, token).Err(); err != nil {
		return fmt.Errorf("lock.RedisLocker.Unlock: %w", err)
	}
	return nil
}

func (r *RedisLocker) Close() error {
	return r.client.Close()
}
