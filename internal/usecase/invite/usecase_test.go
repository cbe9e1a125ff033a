package invite

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"prizzys-backend/internal/domain/apperr"
	domainInvite "prizzys-backend/internal/domain/invite"
	domainNetwork "prizzys-backend/internal/domain/network"
	"prizzys-backend/internal/domain/uow"
	domainUser "prizzys-backend/internal/domain/user"
	"prizzys-backend/internal/testutil/invitemock"
	"prizzys-backend/internal/testutil/networkmock"
	"prizzys-backend/internal/testutil/uowmock"
	"prizzys-backend/internal/testutil/usermock"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type recorder struct{ links []domainNetwork.Link }

func (r *recorder) Project(_ context.Context, links ...domainNetwork.Link) {
	r.links = append(r.links, links...)
}

// store backs the function mocks with maps so flows can be asserted end to end.
type store struct {
	users   map[string]*domainUser.User
	invites map[string]*domainInvite.Invite
	edges   map[domainNetwork.Link]bool
	seq     int
}

func newStore(users ...*domainUser.User) *store {
	s := &store{
		users:   map[string]*domainUser.User{},
		invites: map[string]*domainInvite.Invite{},
		edges:   map[domainNetwork.Link]bool{},
	}
	for _, u := range users {
		cp := *u
		s.users[u.ID] = &cp
	}
	return s
}

func (s *store) repos() uow.Repos {
	users := &usermock.Repo{
		GetByIDFn: func(_ context.Context, id string) (*domainUser.User, error) {
			if u, ok := s.users[id]; ok {
				return u, nil
			}
			return nil, domainUser.ErrNotFound
		},
		GetByEmailFn: func(_ context.Context, email string) (*domainUser.User, error) {
			for _, u := range s.users {
				if u.Email == email {
					return u, nil
				}
			}
			return nil, domainUser.ErrNotFound
		},
	}
	invites := &invitemock.Repo{
		CreateFn: func(_ context.Context, i *domainInvite.Invite) error {
			s.seq++
			i.ID = "inv-" + string(rune('0'+s.seq))
			cp := *i
			s.invites[i.ID] = &cp
			return nil
		},
		SaveFn: func(_ context.Context, i *domainInvite.Invite) error {
			cp := *i
			s.invites[i.ID] = &cp
			return nil
		},
		GetByIDFn: func(_ context.Context, id string) (*domainInvite.Invite, error) {
			if i, ok := s.invites[id]; ok {
				cp := *i
				return &cp, nil
			}
			return nil, domainInvite.ErrNotFound
		},
		FindPendingFn: func(_ context.Context, loanerID, email string) (*domainInvite.Invite, error) {
			for _, i := range s.invites {
				if i.LoanerID == loanerID && i.Email == email && i.Status == domainInvite.StatusPending {
					cp := *i
					return &cp, nil
				}
			}
			return nil, domainInvite.ErrNotFound
		},
		ListPendingByEmailFn: func(_ context.Context, email string) ([]domainInvite.Invite, error) {
			out := []domainInvite.Invite{}
			for _, i := range s.invites {
				if i.Email == email && i.Status == domainInvite.StatusPending {
					out = append(out, *i)
				}
			}
			sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
			return out, nil
		},
	}
	net := &networkmock.Repo{
		ConnectFn: func(_ context.Context, loanerID, loaneeID string) (*domainNetwork.Link, error) {
			k := domainNetwork.Link{LoanerID: loanerID, LoaneeID: loaneeID}
			if s.edges[k] {
				return nil, nil
			}
			s.edges[k] = true
			return &domainNetwork.Link{LoanerID: loanerID, LoaneeID: loaneeID, CreatedAt: fixedNow}, nil
		},
	}
	return uow.Repos{Users: users, Invites: invites, Network: net}
}

func (s *store) usecase(rec *recorder) *Usecase {
	uc := NewUsecase(uowmock.Over(s.repos()), rec, zap.NewNop())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

var (
	loanerA = &domainUser.User{ID: "loaner-a", Name: "Ada", Email: "ada@example.com", Role: domainUser.RoleLoaner}
	loanerB = &domainUser.User{ID: "loaner-b", Name: "Bayo", Email: "bayo@example.com", Role: domainUser.RoleLoaner}
	loaneeC = &domainUser.User{ID: "loanee-c", Name: "Chi", Email: "chi@example.com", Role: domainUser.RoleLoanee}
)

func TestSendInvite_NewEmailStaysPending(t *testing.T) {
	s := newStore(loanerA)
	rec := &recorder{}

	inv, err := s.usecase(rec).SendInvite(context.Background(), loanerA.ID, "  New@Example.com ")
	if err != nil {
		t.Fatalf("SendInvite: %v", err)
	}
	want := domainInvite.Invite{
		ID: inv.ID, LoanerID: loanerA.ID, LoanerName: "Ada", Email: "new@example.com", Status: domainInvite.StatusPending,
	}
	if diff := cmp.Diff(want, *inv); diff != "" {
		t.Fatalf("invite mismatch (-want +got):\n%s", diff)
	}
	if len(s.edges) != 0 || len(rec.links) != 0 {
		t.Fatalf("pending invite must not connect anyone")
	}
}

func TestSendInvite_ExistingLoaneeConnectsAtOnce(t *testing.T) {
	s := newStore(loanerA, loaneeC)
	rec := &recorder{}

	inv, err := s.usecase(rec).SendInvite(context.Background(), loanerA.ID, loaneeC.Email)
	if err != nil {
		t.Fatalf("SendInvite: %v", err)
	}
	if inv.Status != domainInvite.StatusAccepted || inv.AcceptedBy == nil || *inv.AcceptedBy != loaneeC.ID {
		t.Fatalf("expected accepted invite, got %+v", inv)
	}
	wantLink := domainNetwork.Link{LoanerID: loanerA.ID, LoaneeID: loaneeC.ID}
	if !s.edges[wantLink] {
		t.Fatalf("edge not created")
	}
	projected := wantLink
	projected.CreatedAt = fixedNow
	if diff := cmp.Diff([]domainNetwork.Link{projected}, rec.links); diff != "" {
		t.Fatalf("projection mismatch (-want +got):\n%s", diff)
	}
}

func TestSendInvite_Guards(t *testing.T) {
	ctx := context.Background()

	s := newStore(loanerA, loanerB, loaneeC)
	uc := s.usecase(&recorder{})
	if _, err := uc.SendInvite(ctx, loanerA.ID, "pending@example.com"); err != nil {
		t.Fatalf("first SendInvite: %v", err)
	}

	tests := []struct {
		name     string
		loanerID string
		email    string
		wantErr  error
	}{
		{"duplicate pending", loanerA.ID, "pending@example.com", apperr.ErrDuplicateInvite},
		{"loanee cannot invite", loaneeC.ID, "x@example.com", apperr.ErrUnauthorized},
		{"email of a loaner", loanerA.ID, loanerB.Email, apperr.ErrUnauthorized},
		{"malformed email", loanerA.ID, "not-an-email", apperr.ErrInvalidInput},
		{"unknown loaner", "ghost", "x@example.com", apperr.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.SendInvite(ctx, tt.loanerID, tt.email); !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
		})
	}

	// another loaner may invite the same pending email
	if _, err := uc.SendInvite(ctx, loanerB.ID, "pending@example.com"); err != nil {
		t.Fatalf("second loaner SendInvite: %v", err)
	}
}

func TestResolveOnRegistration_AcceptsEveryPendingInvite(t *testing.T) {
	s := newStore(loanerA, loanerB)
	uc := s.usecase(&recorder{})
	ctx := context.Background()

	for _, l := range []*domainUser.User{loanerA, loanerB} {
		if _, err := uc.SendInvite(ctx, l.ID, "newbie@example.com"); err != nil {
			t.Fatalf("SendInvite: %v", err)
		}
	}
	newbie := &domainUser.User{ID: "loanee-n", Email: "newbie@example.com", Role: domainUser.RoleLoanee}
	s.users[newbie.ID] = newbie

	links, err := uc.ResolveOnRegistration(ctx, s.repos(), "Newbie@example.com", newbie.ID)
	if err != nil {
		t.Fatalf("ResolveOnRegistration: %v", err)
	}
	if len(links) != 2 || len(s.edges) != 2 {
		t.Fatalf("expected 2 new edges, got links=%v edges=%v", links, s.edges)
	}
	for _, inv := range s.invites {
		if inv.Status != domainInvite.StatusAccepted || inv.AcceptedAt == nil || !inv.AcceptedAt.Equal(fixedNow) {
			t.Fatalf("invite not accepted: %+v", inv)
		}
	}

	pending, err := uc.PendingInvitesFor(ctx, "newbie@example.com")
	if err != nil || len(pending) != 0 {
		t.Fatalf("PendingInvitesFor = %v, %v", pending, err)
	}
}

func TestAcceptInvite_TwiceIsNoop(t *testing.T) {
	s := newStore(loanerA)
	rec := &recorder{}
	uc := s.usecase(rec)
	ctx := context.Background()

	inv, err := uc.SendInvite(ctx, loanerA.ID, loaneeC.Email)
	if err != nil {
		t.Fatalf("SendInvite: %v", err)
	}
	cp := *loaneeC
	s.users[loaneeC.ID] = &cp

	for i := 0; i < 2; i++ {
		got, err := uc.AcceptInvite(ctx, inv.ID, loaneeC.ID)
		if err != nil {
			t.Fatalf("AcceptInvite #%d: %v", i+1, err)
		}
		if got.Status != domainInvite.StatusAccepted {
			t.Fatalf("AcceptInvite #%d: status %s", i+1, got.Status)
		}
	}
	if len(s.edges) != 1 || len(rec.links) != 1 {
		t.Fatalf("expected exactly one edge and one projection, got %d/%d", len(s.edges), len(rec.links))
	}
}

func TestAcceptInvite_Guards(t *testing.T) {
	s := newStore(loanerA, loaneeC)
	uc := s.usecase(&recorder{})
	ctx := context.Background()

	inv, err := uc.SendInvite(ctx, loanerA.ID, "someone@example.com")
	if err != nil {
		t.Fatalf("SendInvite: %v", err)
	}

	if _, err := uc.AcceptInvite(ctx, "missing", loaneeC.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing invite: want ErrNotFound, got %v", err)
	}
	if _, err := uc.AcceptInvite(ctx, inv.ID, loaneeC.ID); !errors.Is(err, domainInvite.ErrNotInvitee) {
		t.Fatalf("other email: want ErrNotInvitee, got %v", err)
	}
	if _, err := uc.AcceptInvite(ctx, inv.ID, loanerA.ID); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("loaner accepting: want ErrUnauthorized, got %v", err)
	}
}
