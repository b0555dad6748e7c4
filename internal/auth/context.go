// Package auth carries the authenticated user and request ID through a
// request context.
package auth

import (
	"context"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
)

type userKey struct{}
type requestIDKey struct{}

func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey{}).(*domain.User)
	return u, ok && u != nil
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
