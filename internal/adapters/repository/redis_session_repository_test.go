package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/test/mocks"
)

func TestRedisSessionRepository_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	client := mocks.NewMockRedisClient()
	repo := NewRedisSessionRepository(client, 0)

	if err := repo.Create(ctx, domain.Session{Token: "abc", Email: "a@x"}); err != nil {
		t.Fatal(err)
	}
	if !client.HasKey("session:abc") {
		t.Fatal("expected session:abc to be written")
	}
	if !client.TTL("session:abc").IsZero() {
		t.Error("expected no expiry with zero ttl")
	}

	s, err := repo.Get(ctx, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if s.Email != "a@x" || s.Token != "abc" {
		t.Errorf("unexpected session %+v", s)
	}

	if err := repo.Delete(ctx, "abc"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Get(ctx, "abc"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisSessionRepository_TTL(t *testing.T) {
	client := mocks.NewMockRedisClient()
	repo := NewRedisSessionRepository(client, time.Hour)

	if err := repo.Create(context.Background(), domain.Session{Token: "abc", Email: "a@x"}); err != nil {
		t.Fatal(err)
	}
	if exp := client.TTL("session:abc"); exp.IsZero() || time.Until(exp) > time.Hour {
		t.Errorf("unexpected expiry %v", exp)
	}
}

func TestRedisSessionRepository_TokenCollision(t *testing.T) {
	ctx := context.Background()
	repo := NewRedisSessionRepository(mocks.NewMockRedisClient(), 0)

	if err := repo.Create(ctx, domain.Session{Token: "abc", Email: "a@x"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, domain.Session{Token: "abc", Email: "b@x"}); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	s, _ := repo.Get(ctx, "abc")
	if s.Email != "a@x" {
		t.Error("collision overwrote the existing session")
	}
}

func TestRedisSessionRepository_MissesDoNotTripBreaker(t *testing.T) {
	ctx := context.Background()
	repo := NewRedisSessionRepository(mocks.NewMockRedisClient(), 0)

	for i := 0; i < 10; i++ {
		if _, err := repo.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("call %d: expected ErrNotFound, got %v", i, err)
		}
	}
}

func TestRedisSessionRepository_BreakerOpens(t *testing.T) {
	ctx := context.Background()
	client := mocks.NewMockRedisClient()
	client.GetError = errors.New("connection refused")
	repo := NewRedisSessionRepository(client, 0)

	for i := 0; i < 3; i++ {
		_, err := repo.Get(ctx, "abc")
		if err == nil || errors.Is(err, domain.ErrUnavailable) {
			t.Fatalf("call %d: expected raw failure, got %v", i, err)
		}
	}

	_, err := repo.Get(ctx, "abc")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable once open, got %v", err)
	}
}

func TestRedisSessionRepository_CallerCancellationDoesNotTripBreaker(t *testing.T) {
	ctx := context.Background()
	client := mocks.NewMockRedisClient()
	repo := NewRedisSessionRepository(client, 0)

	for _, cause := range []error{context.Canceled, context.DeadlineExceeded, context.Canceled, context.Canceled} {
		client.GetError = cause
		if _, err := repo.Get(ctx, "abc"); !errors.Is(err, cause) {
			t.Fatalf("expected %v, got %v", cause, err)
		}
	}

	client.GetError = nil
	if err := repo.Create(ctx, domain.Session{Token: "abc", Email: "a@x"}); err != nil {
		t.Fatalf("expected breaker to stay closed, got %v", err)
	}
	if _, err := repo.Get(ctx, "abc"); err != nil {
		t.Fatalf("expected breaker to stay closed, got %v", err)
	}
}
