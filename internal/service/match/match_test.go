package match

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/testutil"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

type fixture struct {
	store   *testutil.Store
	clock   *clockwork.FakeClock
	service *MatchService
	admin   domain.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := testutil.NewClock()
	store := testutil.NewStore(clock)
	admin := store.AddUser(t, "Ada Admin", "ada@example.com")
	return &fixture{
		store:   store,
		clock:   clock,
		service: NewMatchService(store.Matches(), database.NopTransactionManager{}, clock, time.UTC, testutil.Logger()),
		admin:   testutil.Admin(admin.ID),
	}
}

func (f *fixture) createMatch(t *testing.T, maxPlayers int) *domain.Match {
	t.Helper()

	m, err := f.service.CreateMatch(context.Background(), f.admin, domain.CreateMatchRequest{
		Name:       "Sunday Kickabout",
		Date:       "2025-03-15",
		Time:       "18:30",
		Location:   "Riverside",
		MaxPlayers: maxPlayers,
	})
	require.NoError(t, err)
	return m
}

func joinReq(name string) domain.JoinMatchRequest {
	return domain.JoinMatchRequest{PlayerName: name, ContactInfo: name + "@example.com"}
}

func TestCreateMatch(t *testing.T) {
	f := newFixture(t)

	m := f.createMatch(t, 0)
	assert.Equal(t, domain.DefaultMaxPlayers, m.MaxPlayers)
	assert.Equal(t, "friendly", m.MatchType)
	assert.Equal(t, domain.MatchUpcoming, m.Status)
	assert.Equal(t, f.admin.UserID, m.CreatorID)
	assert.Empty(t, m.JoinedPlayers)
}

func TestCreateMatch_Validation(t *testing.T) {
	f := newFixture(t)
	base := domain.CreateMatchRequest{Name: "Kickabout", Date: "2025-03-15", Time: "18:30", Location: "Riverside"}

	tests := []struct {
		name    string
		mutate  func(r *domain.CreateMatchRequest)
		wantErr error
	}{
		{"yesterday", func(r *domain.CreateMatchRequest) { r.Date = "2025-03-09" }, domain.ErrMatchInPast},
		{"bad time", func(r *domain.CreateMatchRequest) { r.Time = "25:00" }, domain.ErrInvalidInput},
		{"bad date", func(r *domain.CreateMatchRequest) { r.Date = "soon" }, domain.ErrInvalidInput},
		{"blank location", func(r *domain.CreateMatchRequest) { r.Location = "  " }, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := f.service.CreateMatch(context.Background(), f.admin, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("today is allowed", func(t *testing.T) {
		req := base
		req.Date = "2025-03-10"
		_, err := f.service.CreateMatch(context.Background(), f.admin, req)
		assert.NoError(t, err)
	})
}

func TestJoinMatch_Full(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMatch(t, 2)

	for i := 0; i < 2; i++ {
		_, err := f.service.JoinMatch(ctx, m.ID, uuid.NewString(), joinReq(fmt.Sprintf("player%d", i)))
		require.NoError(t, err)
	}

	_, err := f.service.JoinMatch(ctx, m.ID, uuid.NewString(), joinReq("late"))
	require.ErrorIs(t, err, domain.ErrMatchFull)
	assert.Equal(t, "Match is already full", err.Error())

	got, err := f.service.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, got.JoinedPlayers, 2)
}

func TestJoinMatch_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMatch(t, 10)
	userID := uuid.NewString()

	joined, err := f.service.JoinMatch(ctx, m.ID, userID, joinReq("pat"))
	require.NoError(t, err)
	assert.True(t, joined.HasPlayer(userID))

	_, err = f.service.JoinMatch(ctx, m.ID, userID, joinReq("pat"))
	assert.ErrorIs(t, err, domain.ErrAlreadyJoined)

	_, err = f.service.JoinMatch(ctx, uuid.NewString(), userID, joinReq("pat"))
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)

	cancelled := domain.MatchCancelled
	_, err = f.service.UpdateMatch(ctx, f.admin, m.ID, domain.UpdateMatchRequest{Status: &cancelled})
	require.NoError(t, err)
	_, err = f.service.JoinMatch(ctx, m.ID, uuid.NewString(), joinReq("sam"))
	assert.ErrorIs(t, err, domain.ErrMatchNotUpcoming)
}

func TestJoinMatch_AfterKickOff(t *testing.T) {
	f := newFixture(t)
	m := f.createMatch(t, 10)

	f.clock.Advance(6*24*time.Hour + 7*time.Hour)

	_, err := f.service.JoinMatch(context.Background(), m.ID, uuid.NewString(), joinReq("late"))
	assert.ErrorIs(t, err, domain.ErrMatchStarted)
}

func TestLeaveMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMatch(t, 1)
	userID := uuid.NewString()

	_, err := f.service.JoinMatch(ctx, m.ID, userID, joinReq("pat"))
	require.NoError(t, err)

	left, err := f.service.LeaveMatch(ctx, m.ID, userID)
	require.NoError(t, err)
	assert.Empty(t, left.JoinedPlayers)

	_, err = f.service.LeaveMatch(ctx, m.ID, userID)
	assert.ErrorIs(t, err, domain.ErrNotJoined)

	_, err = f.service.JoinMatch(ctx, m.ID, uuid.NewString(), joinReq("sam"))
	assert.NoError(t, err, "the freed place can be taken")
}

func TestUpdateMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMatch(t, 3)

	for i := 0; i < 2; i++ {
		_, err := f.service.JoinMatch(ctx, m.ID, uuid.NewString(), joinReq(fmt.Sprintf("p%d", i)))
		require.NoError(t, err)
	}

	t.Run("not below joined count", func(t *testing.T) {
		one := 1
		_, err := f.service.UpdateMatch(ctx, f.admin, m.ID, domain.UpdateMatchRequest{MaxPlayers: &one})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("only creator or admin", func(t *testing.T) {
		name := "Hijacked"
		_, err := f.service.UpdateMatch(ctx, testutil.Member(uuid.NewString()), m.ID, domain.UpdateMatchRequest{Name: &name})
		assert.ErrorIs(t, err, domain.ErrNotAllowed)
	})

	t.Run("reschedule", func(t *testing.T) {
		date, at := "2025-03-20", "09:00"
		updated, err := f.service.UpdateMatch(ctx, f.admin, m.ID, domain.UpdateMatchRequest{Date: &date, Time: &at})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), updated.Date)
		assert.Equal(t, "09:00", updated.Time)
		assert.Len(t, updated.JoinedPlayers, 2)
	})

	t.Run("into the past", func(t *testing.T) {
		date := "2025-01-01"
		_, err := f.service.UpdateMatch(ctx, f.admin, m.ID, domain.UpdateMatchRequest{Date: &date})
		assert.ErrorIs(t, err, domain.ErrMatchInPast)
	})
}

func TestDeleteMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMatch(t, 3)

	err := f.service.DeleteMatch(ctx, testutil.Member(uuid.NewString()), m.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.service.DeleteMatch(ctx, f.admin, m.ID))

	_, err = f.service.GetMatch(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestListMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.createMatch(t, 3)
	f.createMatch(t, 3)

	completed := domain.MatchCompleted
	_, err := f.service.UpdateMatch(ctx, f.admin, first.ID, domain.UpdateMatchRequest{Status: &completed})
	require.NoError(t, err)

	all, err := f.service.ListMatches(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	upcoming, err := f.service.ListMatches(ctx, domain.MatchUpcoming)
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)

	_, err = f.service.ListMatches(ctx, "postponed")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
