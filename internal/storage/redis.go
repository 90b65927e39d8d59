package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// quotaTTL keeps counters around long enough to survive clock skew across
// the day boundary; Redis expiry replaces the memory store's janitor.
const quotaTTL = 48 * time.Hour

// recordPullScript does the check-and-increment as one atomic step so two
// concurrent pulls can never both spend the last slot under the cap.
var recordPullScript = redis.NewScript(`
local used = tonumber(redis.call('GET', KEYS[1]) or '0')
if used >= tonumber(ARGV[1]) then
  return -1
end
used = redis.call('INCR', KEYS[1])
redis.call('EXPIRE', KEYS[1], ARGV[2])
return used
`)

// RedisQuotaStore keeps pull counters in Redis, one key per
// (identity, day). Intended for deployments where several engine
// instances share the quota.
type RedisQuotaStore struct {
	client *redis.Client
}

// NewRedisQuotaStore creates a Redis-backed quota store.
func NewRedisQuotaStore(client *redis.Client) *RedisQuotaStore {
	return &RedisQuotaStore{client: client}
}

func quotaRedisKey(identity, day string) string {
	return fmt.Sprintf("pulls:%s:%s", day, identity)
}

func (s *RedisQuotaStore) PullsUsed(ctx context.Context, identity, day string) (int, error) {
	used, err := s.client.Get(ctx, quotaRedisKey(identity, day)).Int()
	if err == redis.Nil {
		// Missing key reads as zero: implicit day rollover.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read pull counter: %w", err)
	}
	return used, nil
}

func (s *RedisQuotaStore) RecordPull(ctx context.Context, identity, day string, cap int) (int, error) {
	seconds := int(quotaTTL / time.Second)
	used, err := recordPullScript.Run(ctx, s.client, []string{quotaRedisKey(identity, day)}, cap, seconds).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to record pull: %w", err)
	}
	if used < 0 {
		return cap, ErrQuotaExceeded
	}
	return used, nil
}
