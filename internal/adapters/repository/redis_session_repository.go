package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/mergington/high-school/activities-service/internal/config"
	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

const sessionKeyPrefix = "session:"

// RedisClient is the subset of *redis.Client the session store uses.
type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisSessionRepository stores token -> email as plain string keys so
// several API instances can share sessions.
type RedisSessionRepository struct {
	client RedisClient
	ttl    time.Duration
	cb     *gobreaker.CircuitBreaker
}

var _ ports.SessionRepository = (*RedisSessionRepository)(nil)

func NewRedisSessionRepository(client RedisClient, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{
		client: client,
		ttl:    ttl,
		cb:     config.NewCircuitBreaker(config.BreakerRedisSessions),
	}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (r *RedisSessionRepository) Create(ctx context.Context, session domain.Session) error {
	return run(r.cb, func() error {
		ok, err := r.client.SetNX(ctx, sessionKey(session.Token), session.Email, r.ttl).Result()
		if err != nil {
			return fmt.Errorf("redis setnx: %w", err)
		}
		if !ok {
			return domain.NewError(domain.CodeDuplicate, "session token already in use")
		}
		return nil
	})
}

func (r *RedisSessionRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	var email string
	err := run(r.cb, func() error {
		val, err := r.client.Get(ctx, sessionKey(token)).Result()
		if errors.Is(err, redis.Nil) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("redis get: %w", err)
		}
		email = val
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: token, Email: email}, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, token string) error {
	return run(r.cb, func() error {
		if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
		return nil
	})
}
