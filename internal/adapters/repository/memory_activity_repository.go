package repository

import (
	"context"
	"sync"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

type activityEntry struct {
	mu       sync.Mutex
	activity domain.Activity
}

// MemoryActivityRepository holds the catalog. The name index never changes
// after construction, so only each roster needs a lock.
type MemoryActivityRepository struct {
	index map[string]*activityEntry
	order []string
}

var _ ports.ActivityRepository = (*MemoryActivityRepository)(nil)

func NewMemoryActivityRepository(seed []domain.Activity) *MemoryActivityRepository {
	r := &MemoryActivityRepository{
		index: make(map[string]*activityEntry, len(seed)),
		order: make([]string, 0, len(seed)),
	}
	for i := range seed {
		a := seed[i].Clone()
		if _, dup := r.index[a.Name]; dup {
			continue
		}
		r.index[a.Name] = &activityEntry{activity: a}
		r.order = append(r.order, a.Name)
	}
	return r
}

// List returns copies of all activities in seed order.
func (r *MemoryActivityRepository) List(ctx context.Context) ([]domain.Activity, error) {
	out := make([]domain.Activity, 0, len(r.order))
	for _, name := range r.order {
		e := r.index[name]
		e.mu.Lock()
		out = append(out, e.activity.Clone())
		e.mu.Unlock()
	}
	return out, nil
}

func (r *MemoryActivityRepository) Get(ctx context.Context, name string) (*domain.Activity, error) {
	e, ok := r.index[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.mu.Lock()
	a := e.activity.Clone()
	e.mu.Unlock()
	return &a, nil
}

func (r *MemoryActivityRepository) UpdateRoster(ctx context.Context, name string, fn func(*domain.Activity) error) error {
	e, ok := r.index[name]
	if !ok {
		return domain.ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	work := e.activity.Clone()
	if err := fn(&work); err != nil {
		return err
	}
	e.activity.Participants = work.Participants
	return nil
}
