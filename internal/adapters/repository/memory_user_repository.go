package repository

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

// MemoryUserRepository keeps user records in a map guarded by one lock.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

var _ ports.UserRepository = (*MemoryUserRepository)(nil)

func NewMemoryUserRepository(seed []domain.User) *MemoryUserRepository {
	users := make(map[string]domain.User, len(seed))
	for _, u := range seed {
		users[u.Email] = u
	}
	return &MemoryUserRepository{users: users}
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return domain.ErrDuplicate
	}
	r.users[user.Email] = user
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, email string, check func(*domain.User) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return domain.ErrNotFound
	}
	if check != nil {
		if err := check(&u); err != nil {
			return err
		}
	}
	delete(r.users, email)
	return nil
}

// List returns every user ordered by email.
func (r *MemoryUserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.User) int { return strings.Compare(a.Email, b.Email) })
	return out, nil
}
