package ports

import (
	"context"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
}

type EnrollmentService interface {
	ListActivities(ctx context.Context) ([]domain.Activity, error)
	GetActivity(ctx context.Context, name string) (*domain.Activity, error)
	Signup(ctx context.Context, activity, email string, actor *domain.User) error
	Unregister(ctx context.Context, activity, email string, actor *domain.User) error
}

type CreateUserInput struct {
	Email    string
	Password string
	Role     string
	Name     string
}

type AccountService interface {
	CreateUser(ctx context.Context, in CreateUserInput, actor *domain.User) error
	DeleteUser(ctx context.Context, email string, actor *domain.User) error
	ListUsers(ctx context.Context, actor *domain.User) (map[string]domain.UserProfile, error)
}
