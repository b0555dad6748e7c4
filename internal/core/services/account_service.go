package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

var (
	errUserNotFound = domain.NewError(domain.CodeNotFound, "User not found")
	errDeleteAdmin  = domain.NewError(domain.CodeForbidden, "Cannot delete another admin")
)

type AccountService struct {
	users     ports.UserRepository
	publisher ports.EventPublisher
	logger    *slog.Logger
}

var _ ports.AccountService = (*AccountService)(nil)

func NewAccountService(users ports.UserRepository, publisher ports.EventPublisher, logger *slog.Logger) *AccountService {
	return &AccountService{
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateUser registers a new account. Only admins and staff may call it;
// checks run in the order role, presence, uniqueness, role name.
func (s *AccountService) CreateUser(ctx context.Context, in ports.CreateUserInput, actor *domain.User) error {
	if _, err := RequireRole(actor, domain.RoleAdmin, domain.RoleStaff); err != nil {
		return err
	}

	if in.Email == "" || in.Password == "" || in.Role == "" || in.Name == "" {
		return domain.ErrMissingFields
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return domain.ErrDuplicate
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("find user: %w", err)
	}

	role := domain.Role(in.Role)
	if !role.Valid() {
		return domain.ErrBadRole
	}

	user := domain.User{
		Email:    in.Email,
		Password: in.Password,
		Role:     role,
		Name:     in.Name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}

	publish(ctx, s.publisher, s.logger, newEvent(domain.EventUserCreated, "", in.Email, actor))
	return nil
}

// DeleteUser removes a non-admin account. Sessions held by the deleted user
// are not revoked; they fail to resolve from then on.
func (s *AccountService) DeleteUser(ctx context.Context, email string, actor *domain.User) error {
	if _, err := RequireRole(actor, domain.RoleAdmin); err != nil {
		return err
	}

	err := s.users.Delete(ctx, email, func(target *domain.User) error {
		if target.Role == domain.RoleAdmin {
			return errDeleteAdmin
		}
		return nil
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return errUserNotFound
	case errors.Is(err, domain.ErrForbidden):
		return err
	case err != nil:
		return fmt.Errorf("delete user: %w", err)
	}

	publish(ctx, s.publisher, s.logger, newEvent(domain.EventUserDeleted, "", email, actor))
	return nil
}

func (s *AccountService) ListUsers(ctx context.Context, actor *domain.User) (map[string]domain.UserProfile, error) {
	if _, err := RequireRole(actor, domain.RoleAdmin, domain.RoleStaff); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make(map[string]domain.UserProfile, len(users))
	for _, u := range users {
		out[u.Email] = u.Profile()
	}
	return out, nil
}
