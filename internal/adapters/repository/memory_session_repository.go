package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

type memorySession struct {
	email     string
	expiresAt time.Time
}

// MemorySessionRepository is a thread-safe in-memory token store. A zero
// ttl means sessions live until logout.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

var _ ports.SessionRepository = (*MemorySessionRepository)(nil)

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *MemorySessionRepository) Create(ctx context.Context, session domain.Session) error {
	var expiresAt time.Time
	if r.ttl > 0 {
		expiresAt = r.now().Add(r.ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.Token]; ok {
		return errors.New("session token already in use")
	}
	r.sessions[session.Token] = memorySession{email: session.Email, expiresAt: expiresAt}
	return nil
}

func (r *MemorySessionRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[token]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !s.expiresAt.IsZero() && r.now().After(s.expiresAt) {
		_ = r.Delete(ctx, token)
		return nil, domain.ErrNotFound
	}
	return &domain.Session{Token: token, Email: s.email}, nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (r *MemorySessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
