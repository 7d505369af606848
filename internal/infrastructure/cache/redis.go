package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultDialTimeout = 5 * time.Second

// OpenRedis connects and pings once; the returned client backs both the
// session store and the export busy lock.
func OpenRedis(addr string, db int, timeout time.Duration) (*redis.Client, error) {
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db, DialTimeout: timeout})
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}
