package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pf-loan-generator/internal/domain/application"
)

const sessionKeyPrefix = "pf:session:"

var _ application.Repository = (*RedisRepository)(nil)

// RedisRepository stores sessions as JSON values that expire after ttl.
type RedisRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRepository(rdb *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string { return sessionKeyPrefix + id }

func (r *RedisRepository) Create(ctx context.Context, s *application.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ok, err := r.rdb.SetNX(ctx, sessionKey(s.ID), payload, r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, id string) (*application.Session, error) {
	v, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, application.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var s application.Session
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

// Save only overwrites a live session and resets its TTL.
func (r *RedisRepository) Save(ctx context.Context, s *application.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ok, err := r.rdb.SetXX(ctx, sessionKey(s.ID), payload, r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return application.ErrSessionNotFound
	}
	return nil
}
