package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient covers the string commands the session store issues.
// Expiry is recorded but only checked on read.
type MockRedisClient struct {
	mu   sync.Mutex
	data map[string]redisEntry

	SetNXError error
	GetError   error
	DelError   error
}

type redisEntry struct {
	value     string
	expiresAt time.Time
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{data: make(map[string]redisEntry)}
}

func (m *MockRedisClient) live(key string) (redisEntry, bool) {
	e, ok := m.data[key]
	if !ok {
		return e, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(m.data, key)
		return e, false
	}
	return e, true
}

func (m *MockRedisClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewBoolCmd(ctx)
	if m.SetNXError != nil {
		cmd.SetErr(m.SetNXError)
		return cmd
	}
	if _, ok := m.live(key); ok {
		cmd.SetVal(false)
		return cmd
	}

	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}
	m.data[key] = redisEntry{value: value.(string), expiresAt: expiresAt}
	cmd.SetVal(true)
	return cmd
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewStringCmd(ctx)
	if m.GetError != nil {
		cmd.SetErr(m.GetError)
		return cmd
	}
	e, ok := m.live(key)
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(e.value)
	return cmd
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewIntCmd(ctx)
	if m.DelError != nil {
		cmd.SetErr(m.DelError)
		return cmd
	}
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

// TTL returns the expiry recorded for key, zero when none or missing.
func (m *MockRedisClient) TTL(key string) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key].expiresAt
}

func (m *MockRedisClient) HasKey(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.live(key)
	return ok
}
