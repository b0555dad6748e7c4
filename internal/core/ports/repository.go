package ports

import (
	"context"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
)

// UserRepository is the Credential Store. FindByEmail returns
// domain.ErrNotFound when the email has no record.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts user, failing with domain.ErrDuplicate if the email exists.
	Create(ctx context.Context, user domain.User) error
	// Delete removes the record for email after check approves it. The
	// lookup, check and removal happen atomically.
	Delete(ctx context.Context, email string, check func(*domain.User) error) error
	List(ctx context.Context) ([]domain.User, error)
}

// SessionRepository is the Session Store. Get returns domain.ErrNotFound
// for unknown tokens; Delete of an unknown token is not an error.
type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// ActivityRepository is the Activity Catalog. Activities are fixed at
// construction; only rosters change, through UpdateRoster.
type ActivityRepository interface {
	List(ctx context.Context) ([]domain.Activity, error)
	Get(ctx context.Context, name string) (*domain.Activity, error)
	// UpdateRoster runs fn with exclusive access to the named activity and
	// keeps its changes only when fn returns nil.
	UpdateRoster(ctx context.Context, name string, fn func(*domain.Activity) error) error
}
