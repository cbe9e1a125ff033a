package network

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"prizzys-backend/internal/adapter/graph"
	"prizzys-backend/internal/adapter/repository/gormrepo"
	"prizzys-backend/internal/domain/apperr"
	domainNetwork "prizzys-backend/internal/domain/network"
	"prizzys-backend/internal/domain/uow"
	domainUser "prizzys-backend/internal/domain/user"
	"prizzys-backend/internal/testutil/networkmock"
	"prizzys-backend/internal/testutil/sqlitedb"
	"prizzys-backend/internal/testutil/uowmock"
	"prizzys-backend/internal/testutil/usermock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixture is a tiny in-memory user/edge store behind the function mocks.
type fixture struct {
	users     map[string]*domainUser.User
	edges     map[domainNetwork.Link]bool
	projector *networkmock.Projector
}

func newFixture(users ...*domainUser.User) *fixture {
	f := &fixture{
		users:     map[string]*domainUser.User{},
		edges:     map[domainNetwork.Link]bool{},
		projector: &networkmock.Projector{},
	}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fixture) repos() uow.Repos {
	return uow.Repos{
		Users: &usermock.Repo{
			GetByIDFn: func(_ context.Context, id string) (*domainUser.User, error) {
				if u, ok := f.users[id]; ok {
					return u, nil
				}
				return nil, domainUser.ErrNotFound
			},
			ListByIDsFn: func(_ context.Context, ids []string) ([]domainUser.User, error) {
				out := []domainUser.User{}
				for _, id := range ids {
					if u, ok := f.users[id]; ok {
						out = append(out, *u)
					}
				}
				return out, nil
			},
		},
		Network: &networkmock.Repo{
			ConnectFn: func(_ context.Context, loanerID, loaneeID string) (*domainNetwork.Link, error) {
				k := domainNetwork.Link{LoanerID: loanerID, LoaneeID: loaneeID}
				if f.edges[k] {
					return nil, nil
				}
				f.edges[k] = true
				stored := k
				stored.CreatedAt = linkedAt
				return &stored, nil
			},
			PeersOfFn: func(_ context.Context, id string) ([]string, error) {
				var out []string
				for k := range f.edges {
					switch id {
					case k.LoanerID:
						out = append(out, k.LoaneeID)
					case k.LoaneeID:
						out = append(out, k.LoanerID)
					}
				}
				return out, nil
			},
			AllFn: func(context.Context) ([]domainNetwork.Link, error) {
				out := []domainNetwork.Link{}
				for k := range f.edges {
					out = append(out, k)
				}
				return out, nil
			},
		},
	}
}

func (f *fixture) usecase() *Usecase {
	return NewUsecase(uowmock.Over(f.repos()), f.projector, zap.NewNop())
}

var linkedAt = time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

var (
	lender   = &domainUser.User{ID: "loaner-1", Name: "Lender", Role: domainUser.RoleLoaner, IsAcceptingLoans: true}
	idle     = &domainUser.User{ID: "loaner-2", Name: "Idle", Role: domainUser.RoleLoaner}
	borrower = &domainUser.User{ID: "loanee-1", Name: "Borrower", Role: domainUser.RoleLoanee}
	admin    = &domainUser.User{ID: "admin-1", Name: "Admin", Role: domainUser.RoleAdmin}
)

func TestConnect_IsIdempotentAndMutual(t *testing.T) {
	f := newFixture(lender, borrower)
	uc := f.usecase()
	ctx := context.Background()

	require.NoError(t, uc.Connect(ctx, lender.ID, borrower.ID))
	require.NoError(t, uc.Connect(ctx, lender.ID, borrower.ID))

	assert.Len(t, f.edges, 1)
	require.Len(t, f.projector.Projected, 1, "only the new edge is projected")
	assert.Equal(t, linkedAt, f.projector.Projected[0].CreatedAt)

	fromLoaner, err := uc.MembersOf(ctx, lender.ID)
	require.NoError(t, err)
	require.Len(t, fromLoaner, 1)
	assert.Equal(t, borrower.ID, fromLoaner[0].ID)

	body, err := json.Marshal(fromLoaner[0])
	require.NoError(t, err)
	assert.NotContains(t, string(body), `"network"`, "members do not expose their own network")

	fromLoanee, err := uc.NetworkMembersFor(ctx, borrower.ID)
	require.NoError(t, err)
	require.Len(t, fromLoanee, 1)
	assert.Equal(t, lender.ID, fromLoanee[0].ID)
}

func TestConnect_Guards(t *testing.T) {
	f := newFixture(lender, borrower, admin)
	uc := f.usecase()
	ctx := context.Background()

	assert.ErrorIs(t, uc.Connect(ctx, "ghost", borrower.ID), apperr.ErrNotFound)
	assert.ErrorIs(t, uc.Connect(ctx, lender.ID, "ghost"), apperr.ErrNotFound)
	assert.ErrorIs(t, uc.Connect(ctx, borrower.ID, lender.ID), apperr.ErrUnauthorized)
	assert.ErrorIs(t, uc.Connect(ctx, lender.ID, admin.ID), apperr.ErrUnauthorized)
	assert.Empty(t, f.edges)
}

func TestConnect_ProjectionFailureDoesNotFail(t *testing.T) {
	f := newFixture(lender, borrower)
	f.projector.ProjectLinkFn = func(context.Context, domainNetwork.Link) error { return errors.New("graph down") }

	require.NoError(t, f.usecase().Connect(context.Background(), lender.ID, borrower.ID))
	assert.Len(t, f.edges, 1)
}

func TestMembersOf_UnknownUser(t *testing.T) {
	_, err := newFixture().usecase().MembersOf(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLendableLoaners_FiltersOnAvailability(t *testing.T) {
	f := newFixture(lender, idle, borrower)
	uc := f.usecase()
	ctx := context.Background()

	require.NoError(t, uc.Connect(ctx, lender.ID, borrower.ID))
	require.NoError(t, uc.Connect(ctx, idle.ID, borrower.ID))

	got, err := uc.LendableLoaners(ctx, borrower.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, lender.ID, got[0].ID)
}

func TestResync_ReplaysEveryEdge(t *testing.T) {
	f := newFixture(lender, idle, borrower)
	f.edges[domainNetwork.Link{LoanerID: lender.ID, LoaneeID: borrower.ID}] = true
	f.edges[domainNetwork.Link{LoanerID: idle.ID, LoaneeID: borrower.ID}] = true

	n, err := f.usecase().Resync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, f.projector.Projected, 2)
}

func TestConnect_ProjectsStoredTimestamp(t *testing.T) {
	gdb := sqlitedb.Open(t)
	ctx := context.Background()
	loaner := &domainUser.User{Name: "Lola", Email: "lola@example.com", Role: domainUser.RoleLoaner, PasswordHash: "x"}
	loanee := &domainUser.User{Name: "Bode", Email: "bode@example.com", Role: domainUser.RoleLoanee, PasswordHash: "x"}
	for _, u := range []*domainUser.User{loaner, loanee} {
		require.NoError(t, gdb.Create(u).Error)
	}

	client := graph.NewMemoryClient()
	uc := NewUsecase(gormrepo.NewGormUoW(gdb), graph.NewProjector(client), zap.NewNop())
	require.NoError(t, uc.Connect(ctx, loaner.ID, loanee.ID))

	stored, err := gormrepo.NewNetworkRepository(gdb).All(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	writes := client.WriteCalls()
	require.Len(t, writes, 1)
	assert.Equal(t, stored[0].CreatedAt.UTC().Format("2006-01-02T15:04:05Z"), writes[0].Params["since"])
	assert.NotEqual(t, "0001-01-01T00:00:00Z", writes[0].Params["since"])
}
