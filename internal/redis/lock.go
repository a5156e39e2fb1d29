package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrLockNotAcquired = errors.New("date lock not acquired")
)

const defaultRetryInterval = 50 * time.Millisecond

// DateLocker serializes work on one calendar date across every process
// sharing the Redis instance. A busy date is polled until wait elapses.
type DateLocker struct {
	client        *redis.Client
	ttl           time.Duration
	wait          time.Duration
	retryInterval time.Duration
}

func NewDateLocker(client *redis.Client, ttl, wait time.Duration) *DateLocker {
	return &DateLocker{
		client:        client,
		ttl:           ttl,
		wait:          wait,
		retryInterval: defaultRetryInterval,
	}
}

func lockKey(date string) string {
	return fmt.Sprintf("lock:seed:%s", date)
}

func (l *DateLocker) WithDateLock(ctx context.Context, date string, fn func(ctx context.Context) error) error {
	key := lockKey(date)
	token := uuid.NewString()

	if err := l.acquire(ctx, key, token); err != nil {
		return err
	}

	defer func() {
		// the caller's context may already be cancelled; release regardless
		_ = l.release(context.WithoutCancel(ctx), key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

func (l *DateLocker) acquire(ctx context.Context, key, token string) error {
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("acquire date lock: %w", err)
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return ErrLockNotAcquired
		}

		timer := time.NewTimer(l.retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *DateLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release date lock: %w", err)
	}
	return nil
}
