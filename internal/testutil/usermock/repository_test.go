package usermock

import (
	"context"
	"testing"

	domain "prizzys-backend/internal/domain/user"
)

func TestRepo_Forwarding(t *testing.T) {
	ctx := context.Background()
	want := &domain.User{ID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Email: "a@example.com"}

	m := &Repo{
		GetByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email != want.Email {
				t.Fatalf("email mismatch: %s", email)
			}
			return want, nil
		},
	}
	got, err := m.GetByEmail(ctx, want.Email)
	if err != nil || got != want {
		t.Fatalf("GetByEmail: got %+v, %v", got, err)
	}
}

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if err := m.Create(ctx, &domain.User{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if err := m.Save(ctx, &domain.User{}); err != nil {
		t.Fatalf("Save default: %v", err)
	}
	if _, err := m.GetByID(ctx, "x"); err != context.Canceled {
		t.Fatalf("GetByID default: want context.Canceled, got %v", err)
	}
	if _, err := m.ListByIDs(ctx, nil); err != context.Canceled {
		t.Fatalf("ListByIDs default: want context.Canceled, got %v", err)
	}
}
