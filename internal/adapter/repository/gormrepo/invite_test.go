package gormrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"prizzys-backend/internal/domain/apperr"
	"prizzys-backend/internal/domain/invite"
	"prizzys-backend/internal/domain/user"
)

func TestInviteRepository_PendingLookups(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewInviteRepository(gdb)
	ctx := context.Background()

	l1 := seedUser(t, gdb, "L1", "l1@example.com", user.RoleLoaner)
	l2 := seedUser(t, gdb, "L2", "l2@example.com", user.RoleLoaner)

	for _, l := range []*user.User{l1, l2} {
		if err := repo.Create(ctx, &invite.Invite{LoanerID: l.ID, LoanerName: l.Name, Email: "new@example.com", Status: invite.StatusPending}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	pending, err := repo.ListPendingByEmail(ctx, "new@example.com")
	if err != nil {
		t.Fatalf("ListPendingByEmail: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}

	got, err := repo.FindPending(ctx, l1.ID, "new@example.com")
	if err != nil {
		t.Fatalf("FindPending: %v", err)
	}
	if got.LoanerID != l1.ID {
		t.Fatalf("wrong invite: %+v", got)
	}

	got.Accept("ffffffffffffffffffffffffffffffff", time.Now().UTC())
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := repo.FindPending(ctx, l1.ID, "new@example.com"); !errors.Is(err, invite.ErrNotFound) {
		t.Fatalf("accepted invite still pending: %v", err)
	}

	sent, err := repo.ListByLoaner(ctx, l1.ID)
	if err != nil {
		t.Fatalf("ListByLoaner: %v", err)
	}
	if len(sent) != 1 || sent[0].Status != invite.StatusAccepted || sent[0].AcceptedBy == nil {
		t.Fatalf("unexpected sent list: %+v", sent)
	}
}

func TestInviteRepository_GetByID_NotFound(t *testing.T) {
	repo := NewInviteRepository(openTestDB(t))
	if _, err := repo.GetByID(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"); !errors.Is(err, invite.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInviteRepository_OnePendingPerLoanerAndEmail(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewInviteRepository(gdb)
	ctx := context.Background()

	l1 := seedUser(t, gdb, "L1", "l1@example.com", user.RoleLoaner)
	pending := func() *invite.Invite {
		return &invite.Invite{LoanerID: l1.ID, LoanerName: l1.Name, Email: "new@example.com", Status: invite.StatusPending}
	}

	first := pending()
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	// Skips FindPending, as a concurrent sender that has not seen the first row would.
	err := repo.Create(ctx, pending())
	if !errors.Is(err, invite.ErrDuplicate) || !errors.Is(err, apperr.ErrDuplicateInvite) {
		t.Fatalf("second pending Create: want ErrDuplicate, got %v", err)
	}

	first.Accept("ffffffffffffffffffffffffffffffff", time.Now().UTC())
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save accepted: %v", err)
	}
	again := pending()
	if err := repo.Create(ctx, again); err != nil {
		t.Fatalf("pending Create after accept: %v", err)
	}
	again.Accept("eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", time.Now().UTC())
	if err := repo.Save(ctx, again); err != nil {
		t.Fatalf("second accepted row must not collide: %v", err)
	}

	var keys []*string
	if err := gdb.Model(&invite.Invite{}).Order("created_at ASC").Pluck("pending_key", &keys).Error; err != nil {
		t.Fatalf("pluck: %v", err)
	}
	for i, k := range keys {
		if k != nil {
			t.Fatalf("row %d still has pending_key %q", i, *k)
		}
	}
}
