package auth

import (
	"context"
	"testing"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
)

func TestUserRoundTrip(t *testing.T) {
	if _, ok := UserFromContext(context.Background()); ok {
		t.Fatal("empty context should have no user")
	}

	u := &domain.User{Email: "a@mergington.edu", Role: domain.RoleStaff}
	got, ok := UserFromContext(WithUser(context.Background(), u))
	if !ok || got.Email != u.Email {
		t.Errorf("got %+v, %v", got, ok)
	}

	if _, ok := UserFromContext(WithUser(context.Background(), nil)); ok {
		t.Error("nil user should not count as authenticated")
	}
}

func TestRequestID(t *testing.T) {
	if id := RequestID(context.Background()); id != "" {
		t.Errorf("RequestID = %q, want empty", id)
	}
	if id := RequestID(WithRequestID(context.Background(), "abc")); id != "abc" {
		t.Errorf("RequestID = %q, want abc", id)
	}
}
