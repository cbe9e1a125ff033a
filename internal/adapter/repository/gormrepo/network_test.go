package gormrepo

import (
	"context"
	"testing"

	"prizzys-backend/internal/domain/user"
)

func TestNetworkRepository_ConnectIsIdempotent(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewNetworkRepository(gdb)
	ctx := context.Background()

	loaner := seedUser(t, gdb, "Lender", "lender@example.com", user.RoleLoaner)
	loanee := seedUser(t, gdb, "Borrower", "borrower@example.com", user.RoleLoanee)

	link, err := repo.Connect(ctx, loaner.ID, loanee.ID)
	if err != nil || link == nil {
		t.Fatalf("first Connect = %+v, %v; want a link", link, err)
	}
	if link.CreatedAt.IsZero() {
		t.Fatal("created link carries no created_at")
	}
	again, err := repo.Connect(ctx, loaner.ID, loanee.ID)
	if err != nil || again != nil {
		t.Fatalf("second Connect = %+v, %v; want nil, nil", again, err)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one edge, got %d", len(all))
	}
	if !all[0].CreatedAt.Equal(link.CreatedAt) {
		t.Fatalf("stored created_at %s != returned %s", all[0].CreatedAt, link.CreatedAt)
	}
}

func TestNetworkRepository_PeersVisibleFromBothSides(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewNetworkRepository(gdb)
	ctx := context.Background()

	loaner := seedUser(t, gdb, "Lender", "lender@example.com", user.RoleLoaner)
	e1 := seedUser(t, gdb, "E1", "e1@example.com", user.RoleLoanee)
	e2 := seedUser(t, gdb, "E2", "e2@example.com", user.RoleLoanee)

	for _, e := range []*user.User{e1, e2} {
		if _, err := repo.Connect(ctx, loaner.ID, e.ID); err != nil {
			t.Fatalf("Connect: %v", err)
		}
	}

	peers, err := repo.PeersOf(ctx, loaner.ID)
	if err != nil {
		t.Fatalf("PeersOf loaner: %v", err)
	}
	if len(peers) != 2 {
		t.Fatalf("loaner peers = %v", peers)
	}

	peers, err = repo.PeersOf(ctx, e2.ID)
	if err != nil {
		t.Fatalf("PeersOf loanee: %v", err)
	}
	if len(peers) != 1 || peers[0] != loaner.ID {
		t.Fatalf("loanee peers = %v", peers)
	}

	ok, err := repo.AreConnected(ctx, loaner.ID, e1.ID)
	if err != nil || !ok {
		t.Fatalf("AreConnected = %v, %v", ok, err)
	}
	ok, err = repo.AreConnected(ctx, loaner.ID, loaner.ID)
	if err != nil || ok {
		t.Fatalf("AreConnected(self) = %v, %v", ok, err)
	}
}
