package lock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	exportDomain "pf-loan-generator/internal/domain/export"
	"pf-loan-generator/pkg/id"
)

const (
	// Upper bound on how long a crashed holder can keep a key busy.
	DefaultLockTTL = 60 * time.Second
	keyPrefix      = "pf:busy:"
	opTimeout      = 2 * time.Second
)

var _ exportDomain.Locker = (*Redis)(nil)

// only the holder's token may delete the key
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Redis is a Locker shared by every API instance pointing at the same
// Redis database.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func NewRedis(rdb *redis.Client, ttl time.Duration, log *slog.Logger) *Redis {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Redis{rdb: rdb, ttl: ttl, log: log}
}

func (r *Redis) TryAcquire(ctx context.Context, key string) (func(), bool, error) {
	token := id.NewID32()
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	ok, err := r.rdb.SetNX(ctx, keyPrefix+key, token, r.ttl).Result()
	if err != nil || !ok {
		return func() {}, false, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// the caller's context may be gone by now
			ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
			defer cancel()
			if err := releaseScript.Run(ctx, r.rdb, []string{keyPrefix + key}, token).Err(); err != nil {
				r.log.Warn("busy lock: release failed", "key", key, "err", err)
			}
		})
	}, true, nil
}

func (r *Redis) Held(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	n, err := r.rdb.Exists(ctx, keyPrefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
