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
	errActivityNotFound = domain.NewError(domain.CodeNotFound, "Activity not found")
	errSignupOthers     = domain.NewError(domain.CodeForbidden, "Students can only sign up themselves")
	errUnregisterOthers = domain.NewError(domain.CodeForbidden, "Students can only unregister themselves")
)

type EnrollmentService struct {
	activities ports.ActivityRepository
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

var _ ports.EnrollmentService = (*EnrollmentService)(nil)

func NewEnrollmentService(
	activities ports.ActivityRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		activities: activities,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *EnrollmentService) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	activities, err := s.activities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

func (s *EnrollmentService) GetActivity(ctx context.Context, name string) (*domain.Activity, error) {
	activity, err := s.activities.Get(ctx, name)
	if err != nil {
		return nil, rosterError(err)
	}
	return activity, nil
}

// Signup adds email to the roster of the named activity. Capacity is not
// checked.
func (s *EnrollmentService) Signup(ctx context.Context, activity, email string, actor *domain.User) error {
	err := s.activities.UpdateRoster(ctx, activity, func(a *domain.Activity) error {
		if err := AuthorizeSelfOrStaff(actor, email); err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return errSignupOthers
			}
			return err
		}
		if a.IsEnrolled(email) {
			return domain.ErrAlreadyEnrolled
		}
		a.Enroll(email)
		return nil
	})
	if err != nil {
		return rosterError(err)
	}

	publish(ctx, s.publisher, s.logger, newEvent(domain.EventSignedUp, activity, email, actor))
	return nil
}

func (s *EnrollmentService) Unregister(ctx context.Context, activity, email string, actor *domain.User) error {
	err := s.activities.UpdateRoster(ctx, activity, func(a *domain.Activity) error {
		if err := AuthorizeSelfOrStaff(actor, email); err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return errUnregisterOthers
			}
			return err
		}
		if !a.IsEnrolled(email) {
			return domain.ErrNotEnrolled
		}
		a.Withdraw(email)
		return nil
	})
	if err != nil {
		return rosterError(err)
	}

	publish(ctx, s.publisher, s.logger, newEvent(domain.EventUnregistered, activity, email, actor))
	return nil
}

func rosterError(err error) error {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		return fmt.Errorf("activity catalog: %w", err)
	}
	if derr.Code == domain.CodeNotFound {
		return errActivityNotFound
	}
	return err
}
