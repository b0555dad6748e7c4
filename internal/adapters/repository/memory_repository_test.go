package repository

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(SeedUsers())

	u, err := repo.FindByEmail(ctx, "teacher@mergington.edu")
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != domain.RoleStaff {
		t.Errorf("expected staff, got %s", u.Role)
	}

	if _, err := repo.FindByEmail(ctx, "ghost@mergington.edu"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	dup := domain.User{Email: "teacher@mergington.edu", Password: "x", Role: domain.RoleStudent, Name: "X"}
	if err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	emails := make([]string, len(users))
	for i, u := range users {
		emails[i] = u.Email
	}
	want := []string{"admin@mergington.edu", "student@mergington.edu", "teacher@mergington.edu"}
	if !slices.Equal(emails, want) {
		t.Errorf("expected %v, got %v", want, emails)
	}
}

func TestMemoryUserRepository_DeleteCheck(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(SeedUsers())
	blocked := errors.New("blocked")

	err := repo.Delete(ctx, "admin@mergington.edu", func(*domain.User) error { return blocked })
	if !errors.Is(err, blocked) {
		t.Fatalf("expected check error, got %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "admin@mergington.edu"); err != nil {
		t.Error("expected admin to survive a failed check")
	}

	if err := repo.Delete(ctx, "student@mergington.edu", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.FindByEmail(ctx, "student@mergington.edu"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "student@mergington.edu", nil); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository(0)

	if err := repo.Create(ctx, domain.Session{Token: "t1", Email: "a@x"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, domain.Session{Token: "t1", Email: "b@x"}); err == nil {
		t.Error("expected reused token to be rejected")
	}

	s, err := repo.Get(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if s.Email != "a@x" {
		t.Errorf("expected a@x, got %s", s.Email)
	}

	if err := repo.Delete(ctx, "t1"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Get(ctx, "t1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "t1"); err != nil {
		t.Errorf("expected deleting a missing token to succeed, got %v", err)
	}
}

func TestMemorySessionRepository_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	repo := NewMemorySessionRepository(time.Hour)
	repo.now = func() time.Time { return now }

	if err := repo.Create(ctx, domain.Session{Token: "t1", Email: "a@x"}); err != nil {
		t.Fatal(err)
	}

	now = now.Add(59 * time.Minute)
	if _, err := repo.Get(ctx, "t1"); err != nil {
		t.Fatalf("expected live session, got %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := repo.Get(ctx, "t1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
	if repo.Len() != 0 {
		t.Errorf("expected expired session to be dropped, %d left", repo.Len())
	}
}

func TestMemoryActivityRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryActivityRepository(SeedActivities())

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 9 || list[0].Name != "Chess Club" {
		t.Fatalf("unexpected catalog: %d entries, first %q", len(list), list[0].Name)
	}

	// callers get copies
	list[0].Participants[0] = "mutated@x"
	a, err := repo.Get(ctx, "Chess Club")
	if err != nil {
		t.Fatal(err)
	}
	if a.Participants[0] == "mutated@x" {
		t.Error("List leaked the stored roster")
	}

	if _, err := repo.Get(ctx, "chess club"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected case-sensitive lookup to miss, got %v", err)
	}
}

func TestMemoryActivityRepository_UpdateRoster(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryActivityRepository(SeedActivities())
	stop := errors.New("stop")

	err := repo.UpdateRoster(ctx, "Chess Club", func(a *domain.Activity) error {
		a.Enroll("x@mergington.edu")
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected fn error, got %v", err)
	}
	a, _ := repo.Get(ctx, "Chess Club")
	if a.IsEnrolled("x@mergington.edu") {
		t.Error("failed update must not change the roster")
	}

	err = repo.UpdateRoster(ctx, "Chess Club", func(a *domain.Activity) error {
		a.Enroll("x@mergington.edu")
		a.Description = "ignored"
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	a, _ = repo.Get(ctx, "Chess Club")
	if !a.IsEnrolled("x@mergington.edu") {
		t.Error("expected roster change to be applied")
	}
	if a.Description == "ignored" {
		t.Error("only the roster may change")
	}

	if err := repo.UpdateRoster(ctx, "Nope", func(*domain.Activity) error { return nil }); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := repo.UpdateRoster(cancelled, "Chess Club", func(*domain.Activity) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMemoryActivityRepository_ParallelRosters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryActivityRepository(SeedActivities())
	names := []string{"Chess Club", "Gym Class", "Art Club"}

	var wg sync.WaitGroup
	for _, name := range names {
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(name string, i int) {
				defer wg.Done()
				_ = repo.UpdateRoster(ctx, name, func(a *domain.Activity) error {
					a.Enroll(string(rune('a'+i)) + "@p")
					return nil
				})
			}(name, i)
		}
	}
	wg.Wait()

	seed := NewMemoryActivityRepository(SeedActivities())
	for _, name := range names {
		before, _ := seed.Get(ctx, name)
		after, _ := repo.Get(ctx, name)
		if len(after.Participants) != len(before.Participants)+20 {
			t.Errorf("%s: expected %d participants, got %d", name, len(before.Participants)+20, len(after.Participants))
		}
	}
}
