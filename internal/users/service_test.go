package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"hireprompt-backend/internal/shared/apperr"
)

func TestEnsureFromIdentityCreatesOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo())
	fixed := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }

	first, err := svc.EnsureFromIdentity(ctx, IdentityInput{ExternalID: "ext-1", Email: "jane.doe@example.com", FullName: "Jane Doe"})
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if first.Username != "jane.doe" || first.Plan != PlanFree || !first.CreatedAt.Equal(fixed) {
		t.Fatalf("unexpected user %+v", first)
	}

	second, err := svc.EnsureFromIdentity(ctx, IdentityInput{ExternalID: "ext-1", Email: "jane.doe@example.com"})
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same local user, got %s and %s", first.ID, second.ID)
	}
}

func TestEnsureFromIdentityDisambiguatesUsername(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo())

	a, err := svc.EnsureFromIdentity(ctx, IdentityInput{ExternalID: "a", Email: "sam@one.test"})
	if err != nil {
		t.Fatalf("ensure a: %v", err)
	}
	b, err := svc.EnsureFromIdentity(ctx, IdentityInput{ExternalID: "b", Email: "sam@two.test"})
	if err != nil {
		t.Fatalf("ensure b: %v", err)
	}
	if a.Username == b.Username {
		t.Fatalf("expected distinct usernames, got %s", a.Username)
	}
}

func TestEnsureFromIdentityValidates(t *testing.T) {
	_, err := NewService(NewMemoryRepo()).EnsureFromIdentity(context.Background(), IdentityInput{Email: "x@y.z"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdatePlan(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo())
	u, _ := svc.EnsureFromIdentity(ctx, IdentityInput{ExternalID: "a", Email: "a@b.c"})

	if err := svc.UpdatePlan(ctx, u.ID, "professional"); err != nil {
		t.Fatalf("update plan: %v", err)
	}
	got, _ := svc.Get(ctx, u.ID)
	if got.Plan != "professional" {
		t.Fatalf("expected plan to be updated, got %s", got.Plan)
	}
	if err := svc.UpdatePlan(ctx, "missing", "basic"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
