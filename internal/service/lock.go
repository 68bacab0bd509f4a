package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another generation run already holds the
// distributed lock for a (service, year, month) key.
var ErrLockHeld = errors.New("a generation run is already in progress for this period")

// releaseScript atomically deletes the lock key only if it still holds this
// holder's token, so one run can never release a lock it no longer owns
// (e.g. after its TTL expired and a different run acquired it).
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

// GenerationLock is a Redis-backed mutual-exclusion lock scoped to one
// generation run (SPEC_FULL.md §4.7), preventing two callers from racing to
// generate the same (tenant, service, year, month) schedule concurrently.
type GenerationLock struct {
	redis *redis.Client
}

// NewGenerationLock creates a GenerationLock backed by rdb.
func NewGenerationLock(rdb *redis.Client) *GenerationLock {
	return &GenerationLock{redis: rdb}
}

func lockKey(tenantID, serviceID uuid.UUID, year, month int) string {
	return fmt.Sprintf("shiftplan:genlock:%s:%s:%d:%02d", tenantID, serviceID, year, month)
}

// Acquire attempts to take the lock, returning a release function on success.
// Acquire is non-blocking: if the lock is already held, it returns ErrLockHeld
// immediately rather than waiting (spec.md §5: "never block the caller on
// lock contention").
func (l *GenerationLock) Acquire(ctx context.Context, tenantID, serviceID uuid.UUID, year, month int, ttl time.Duration) (release func(context.Context) error, err error) {
	key := lockKey(tenantID, serviceID, year, month)
	token := uuid.NewString()

	ok, err := l.redis.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire generation lock: %w", err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	release = func(releaseCtx context.Context) error {
		if err := l.redis.Eval(releaseCtx, releaseScript, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("failed to release generation lock: %w", err)
		}
		return nil
	}
	return release, nil
}
