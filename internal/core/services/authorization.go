package services

import (
	"slices"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
)

// RequireRole returns user unchanged when its role is one of allowed.
func RequireRole(user *domain.User, allowed ...domain.Role) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrAuthRequired
	}
	if !slices.Contains(allowed, user.Role) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// AuthorizeSelfOrStaff is the ownership rule for enrollment: students act
// only on their own email, staff and admins on anyone's.
func AuthorizeSelfOrStaff(user *domain.User, targetEmail string) error {
	if user == nil {
		return domain.ErrAuthRequired
	}
	if user.Role != domain.RoleStudent || user.Email == targetEmail {
		return nil
	}
	return domain.ErrForbidden
}
