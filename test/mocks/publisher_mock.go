package mocks

import (
	"context"
	"sync"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

// MockEventPublisher records published events instead of sending them.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []domain.Event

	PublishError error
}

var _ ports.EventPublisher = (*MockEventPublisher)(nil)

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, evt domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PublishError != nil {
		return m.PublishError
	}
	m.events = append(m.events, evt)
	return nil
}

// Events returns a copy of everything published so far.
func (m *MockEventPublisher) Events() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Event, len(m.events))
	copy(out, m.events)
	return out
}
