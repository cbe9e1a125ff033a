package user

import (
	"errors"
	"testing"

	"prizzys-backend/internal/domain/apperr"
)

func TestBeforeCreate_AssignsIDAndNormalizesEmail(t *testing.T) {
	u := &User{Email: "  Jane@Example.COM "}
	if err := u.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate: %v", err)
	}
	if len(u.ID) != 32 {
		t.Fatalf("id length = %d, want 32", len(u.ID))
	}
	if u.Email != "jane@example.com" {
		t.Fatalf("email = %q", u.Email)
	}

	keep := &User{ID: "fixed"}
	_ = keep.BeforeCreate(nil)
	if keep.ID != "fixed" {
		t.Fatalf("existing id overwritten: %q", keep.ID)
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleLoaner, RoleLoanee} {
		if !r.Valid() {
			t.Fatalf("%s should be valid", r)
		}
	}
	if Role("BANKER").Valid() {
		t.Fatal("unknown role accepted")
	}
}

func TestErrors_WrapTaxonomy(t *testing.T) {
	if !errors.Is(ErrNotFound, apperr.ErrNotFound) {
		t.Fatal("ErrNotFound must wrap apperr.ErrNotFound")
	}
	if !errors.Is(ErrDuplicateEmail, apperr.ErrDuplicateEmail) {
		t.Fatal("ErrDuplicateEmail must wrap apperr.ErrDuplicateEmail")
	}
	if !errors.Is(ErrWrongRole, apperr.ErrUnauthorized) {
		t.Fatal("ErrWrongRole must wrap apperr.ErrUnauthorized")
	}
}
