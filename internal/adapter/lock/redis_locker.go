package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "lock:seat:"

// releaseScript deletes the key only while it still carries the caller's
// token, so a late release cannot drop a lock that expired and was re-acquired.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: client, prefix: DefaultKeyPrefix}
}

func (l *RedisLocker) Key(seatID int64) string {
	return fmt.Sprintf("%s%d", l.prefix, seatID)
}

func (l *RedisLocker) TryAcquire(ctx context.Context, seatID int64, token string, ttl time.Duration) (bool, error) {
	acquired, err := l.client.SetNX(ctx, l.Key(seatID), token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis SET NX %s: %w", l.Key(seatID), err)
	}

	return acquired, nil
}

func (l *RedisLocker) Release(ctx context.Context, seatID int64, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.Key(seatID)}, token).Err(); err != nil {
		return fmt.Errorf("redis release %s: %w", l.Key(seatID), err)
	}

	return nil
}

// ReleaseScriptHash is exposed so the script can be preloaded at startup.
func ReleaseScriptHash() string {
	return releaseScript.Hash()
}

func PreloadScripts(ctx context.Context, client redis.UniversalClient) error {
	return releaseScript.Load(ctx, client).Err()
}
