package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
)

// run executes fn through cb. Domain errors from fn (not found, duplicate,
// a failed check) and cancelled or expired request contexts are returned
// as-is without counting against the breaker.
func run(cb *gobreaker.CircuitBreaker, fn func() error) error {
	var passthrough error
	_, err := cb.Execute(func() (interface{}, error) {
		err := fn()
		if isCallerError(err) {
			passthrough = err
			return nil, nil
		}
		return nil, err
	})
	if err != nil {
		return breakerError(err)
	}
	return passthrough
}

func isCallerError(err error) bool {
	var derr *domain.Error
	return errors.As(err, &derr) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func breakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return err
}
