// Package mocks provides in-memory implementations of the port interfaces
// with call tracking and error injection for tests.
package mocks

import (
	"context"
	"sync"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

// MockUserRepository implements ports.UserRepository for testing.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User

	// Call tracking for verification
	FindByEmailCalls []string
	CreateCalls      []domain.User
	DeleteCalls      []string

	// Error injection for testing error scenarios
	FindByEmailError error
	CreateError      error
	DeleteError      error
	ListError        error
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository(seed ...domain.User) *MockUserRepository {
	m := &MockUserRepository{users: make(map[string]domain.User)}
	for _, u := range seed {
		m.users[u.Email] = u
	}
	return m
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindByEmailCalls = append(m.FindByEmailCalls, email)
	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, user)
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.users[user.Email]; ok {
		return domain.ErrDuplicate
	}
	m.users[user.Email] = user
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, email string, check func(*domain.User) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, email)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	u, ok := m.users[email]
	if !ok {
		return domain.ErrNotFound
	}
	if check != nil {
		if err := check(&u); err != nil {
			return err
		}
	}
	delete(m.users, email)
	return nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

// Has reports whether email currently has a record.
func (m *MockUserRepository) Has(email string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[email]
	return ok
}

// MockSessionRepository implements ports.SessionRepository for testing.
type MockSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]string

	CreateError error
	GetError    error
	DeleteError error

	DeleteCalls []string
}

var _ ports.SessionRepository = (*MockSessionRepository)(nil)

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{sessions: make(map[string]string)}
}

func (m *MockSessionRepository) Create(ctx context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	m.sessions[s.Token] = s.Email
	return nil
}

func (m *MockSessionRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	email, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.Session{Token: token, Email: email}, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, token)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.sessions, token)
	return nil
}

// Tokens returns how many sessions point at email.
func (m *MockSessionRepository) Tokens(email string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.sessions {
		if e == email {
			n++
		}
	}
	return n
}
