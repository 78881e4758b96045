package league

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/service/team"
	"github.com/mani1234567sk/backend-dream/internal/testutil"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

type fixture struct {
	store   *testutil.Store
	clock   *clockwork.FakeClock
	service *LeagueService
}

func newFixture(t *testing.T, policy domain.JoinPolicy) *fixture {
	t.Helper()

	clock := testutil.NewClock()
	store := testutil.NewStore(clock)
	return &fixture{
		store: store,
		clock: clock,
		service: NewLeagueService(store.Leagues(), store.Teams(), store.Users(),
			database.NopTransactionManager{}, policy, clock, time.UTC, testutil.Logger()),
	}
}

// teamWithMember creates a team captained by captain and puts member on it.
func (f *fixture) teamWithMember(t *testing.T, name string) (team *domain.Team, captain, member *domain.User) {
	t.Helper()
	ctx := context.Background()

	captain = f.store.AddUser(t, name+" Captain", uuid.NewString()+"@example.com")
	member = f.store.AddUser(t, name+" Member", uuid.NewString()+"@example.com")

	team = &domain.Team{
		ID:        uuid.NewString(),
		Name:      name,
		NameKey:   domain.TeamNameKey(name),
		Captain:   captain.Name,
		CaptainID: &captain.ID,
	}
	require.NoError(t, f.store.Teams().Create(ctx, team))

	for _, u := range []*domain.User{captain, member} {
		ok, err := f.store.Users().AssignTeam(ctx, u.ID, team.ID)
		require.NoError(t, err)
		require.True(t, ok)
	}
	return team, captain, member
}

func (f *fixture) createLeague(t *testing.T, name, start, end string) *domain.League {
	t.Helper()

	league, err := f.service.CreateLeague(context.Background(), domain.CreateLeagueRequest{
		Name: name, StartDate: start, EndDate: end,
	})
	require.NoError(t, err)
	return league
}

func TestCreateLeague(t *testing.T) {
	f := newFixture(t, domain.JoinAnyMember)

	t.Run("future start is upcoming", func(t *testing.T) {
		league := f.createLeague(t, "Summer Cup", "2025-06-01", "2025-08-31")
		assert.Equal(t, domain.LeagueUpcoming, league.Status)
		assert.Empty(t, league.Teams)
	})

	t.Run("start today is active", func(t *testing.T) {
		league := f.createLeague(t, "Spring Cup", "2025-03-10", "2025-05-31")
		assert.Equal(t, domain.LeagueActive, league.Status)
	})

	t.Run("accepts RFC 3339", func(t *testing.T) {
		league := f.createLeague(t, "Winter", "2025-12-01T00:00:00Z", "2026-02-01T00:00:00Z")
		assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), league.StartDate)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := f.service.CreateLeague(context.Background(), domain.CreateLeagueRequest{
			Name: "Spring", StartDate: "2025-01-01", EndDate: "2024-12-31",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("end equals start", func(t *testing.T) {
		_, err := f.service.CreateLeague(context.Background(), domain.CreateLeagueRequest{
			Name: "Spring", StartDate: "2025-01-01", EndDate: "2025-01-01",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("unparseable date", func(t *testing.T) {
		_, err := f.service.CreateLeague(context.Background(), domain.CreateLeagueRequest{
			Name: "Spring", StartDate: "01/01/2025", EndDate: "2025-02-01",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUpdateLeague(t *testing.T) {
	f := newFixture(t, domain.JoinAnyMember)
	ctx := context.Background()
	league := f.createLeague(t, "Summer Cup", "2025-06-01", "2025-08-31")

	t.Run("merged dates are checked", func(t *testing.T) {
		end := "2025-05-01"
		_, err := f.service.UpdateLeague(ctx, league.ID, domain.UpdateLeagueRequest{EndDate: &end})
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("moving start into the past activates", func(t *testing.T) {
		start := "2025-03-01"
		updated, err := f.service.UpdateLeague(ctx, league.ID, domain.UpdateLeagueRequest{StartDate: &start})
		require.NoError(t, err)
		assert.Equal(t, domain.LeagueActive, updated.Status)
	})

	t.Run("explicit status", func(t *testing.T) {
		status := domain.LeagueCompleted
		updated, err := f.service.UpdateLeague(ctx, league.ID, domain.UpdateLeagueRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, domain.LeagueCompleted, updated.Status)

		name := "Summer Cup 2025"
		updated, err = f.service.UpdateLeague(ctx, league.ID, domain.UpdateLeagueRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, domain.LeagueCompleted, updated.Status, "completed leagues keep their status")
	})

	t.Run("unknown status", func(t *testing.T) {
		status := domain.LeagueStatus("paused")
		_, err := f.service.UpdateLeague(ctx, league.ID, domain.UpdateLeagueRequest{Status: &status})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing league", func(t *testing.T) {
		name := "x"
		_, err := f.service.UpdateLeague(ctx, uuid.NewString(), domain.UpdateLeagueRequest{Name: &name})
		assert.ErrorIs(t, err, domain.ErrLeagueNotFound)
	})
}

func TestJoinLeague(t *testing.T) {
	f := newFixture(t, domain.JoinAnyMember)
	ctx := context.Background()

	league := f.createLeague(t, "Spring Cup", "2025-03-01", "2025-05-31")
	team, _, member := f.teamWithMember(t, "Eagles")

	joined, err := f.service.JoinLeague(ctx, league.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, joined.HasTeam(team.ID))

	stored, err := f.store.Teams().GetByID(ctx, team.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CurrentLeagueID)
	assert.Equal(t, league.ID, *stored.CurrentLeagueID)

	_, err = f.service.JoinLeague(ctx, league.ID, member.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyInLeague)

	other := f.createLeague(t, "Summer Cup", "2025-06-01", "2025-08-31")
	_, err = f.service.JoinLeague(ctx, other.ID, member.ID)
	assert.ErrorIs(t, err, domain.ErrInAnotherLeague)

	completed := domain.LeagueCompleted
	_, err = f.service.UpdateLeague(ctx, league.ID, domain.UpdateLeagueRequest{Status: &completed})
	require.NoError(t, err)

	_, err = f.service.JoinLeague(ctx, other.ID, member.ID)
	require.NoError(t, err, "a completed current league does not block")
}

func TestJoinLeague_Rejections(t *testing.T) {
	f := newFixture(t, domain.JoinAnyMember)
	ctx := context.Background()
	league := f.createLeague(t, "Spring Cup", "2025-03-01", "2025-05-31")

	t.Run("user without team", func(t *testing.T) {
		loner := f.store.AddUser(t, "Lone Wolf", "lone@example.com")
		_, err := f.service.JoinLeague(ctx, league.ID, loner.ID)
		assert.ErrorIs(t, err, domain.ErrNoTeam)
	})

	t.Run("completed league", func(t *testing.T) {
		done := f.createLeague(t, "Old Cup", "2024-01-01", "2024-02-01")
		status := domain.LeagueCompleted
		_, err := f.service.UpdateLeague(ctx, done.ID, domain.UpdateLeagueRequest{Status: &status})
		require.NoError(t, err)

		_, _, member := f.teamWithMember(t, "Hawks")
		_, err = f.service.JoinLeague(ctx, done.ID, member.ID)
		assert.ErrorIs(t, err, domain.ErrLeagueCompleted)
	})

	t.Run("missing league", func(t *testing.T) {
		_, _, member := f.teamWithMember(t, "Owls")
		_, err := f.service.JoinLeague(ctx, uuid.NewString(), member.ID)
		assert.ErrorIs(t, err, domain.ErrLeagueNotFound)
	})
}

func TestJoinLeague_CaptainPolicy(t *testing.T) {
	f := newFixture(t, domain.JoinCaptainOnly)
	ctx := context.Background()
	league := f.createLeague(t, "Spring Cup", "2025-03-01", "2025-05-31")
	team, captain, member := f.teamWithMember(t, "Eagles")

	_, err := f.service.JoinLeague(ctx, league.ID, member.ID)
	assert.ErrorIs(t, err, domain.ErrNotCaptain)

	joined, err := f.service.JoinLeague(ctx, league.ID, captain.ID)
	require.NoError(t, err)
	assert.True(t, joined.HasTeam(team.ID))
}

func TestJoinLeague_CreatorOfNewTeam(t *testing.T) {
	for _, policy := range []domain.JoinPolicy{domain.JoinAnyMember, domain.JoinCaptainOnly} {
		t.Run(string(policy), func(t *testing.T) {
			f := newFixture(t, policy)
			ctx := context.Background()
			teams := team.NewTeamService(f.store.Teams(), f.store.Users(), f.store.Leagues(),
				database.NopTransactionManager{}, testutil.Logger())

			alex := f.store.AddUser(t, "Alex", "alex@example.com")
			created, err := teams.CreateTeam(ctx, testutil.Member(alex.ID), domain.CreateTeamRequest{
				Name:     "Eagles",
				Captain:  "Alex",
				Password: "secret1",
			})
			require.NoError(t, err)
			require.True(t, created.HasPlayer(alex.ID))

			league := f.createLeague(t, "Spring Cup", "2025-03-01", "2025-05-31")
			joined, err := f.service.JoinLeague(ctx, league.ID, alex.ID)
			require.NoError(t, err)
			assert.True(t, joined.HasTeam(created.ID))
		})
	}
}

func TestLeagueCompletesAfterEndDate(t *testing.T) {
	f := newFixture(t, domain.JoinAnyMember)
	ctx := context.Background()

	t.Run("past league is created completed", func(t *testing.T) {
		league := f.createLeague(t, "Autumn Cup", "2024-09-01", "2024-11-30")
		assert.Equal(t, domain.LeagueCompleted, league.Status)
	})

	short := f.createLeague(t, "March Cup", "2025-03-01", "2025-03-20")
	next := f.createLeague(t, "Summer Cup", "2025-06-01", "2025-08-31")
	_, _, member := f.teamWithMember(t, "Eagles")
	_, _, late := f.teamWithMember(t, "Hawks")

	_, err := f.service.JoinLeague(ctx, short.ID, member.ID)
	require.NoError(t, err)
	_, err = f.service.JoinLeague(ctx, next.ID, member.ID)
	require.ErrorIs(t, err, domain.ErrInAnotherLeague)

	f.clock.Advance(15 * 24 * time.Hour)

	_, err = f.service.JoinLeague(ctx, next.ID, member.ID)
	require.NoError(t, err, "a league past its end date does not block")

	_, err = f.service.JoinLeague(ctx, short.ID, late.ID)
	assert.ErrorIs(t, err, domain.ErrLeagueCompleted)

	name := "March Cup 2025"
	updated, err := f.service.UpdateLeague(ctx, short.ID, domain.UpdateLeagueRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, domain.LeagueCompleted, updated.Status)
}

func TestDeleteLeague_ClearsCurrentLeague(t *testing.T) {
	f := newFixture(t, domain.JoinAnyMember)
	ctx := context.Background()
	league := f.createLeague(t, "Spring Cup", "2025-03-01", "2025-05-31")
	team, _, member := f.teamWithMember(t, "Eagles")

	_, err := f.service.JoinLeague(ctx, league.ID, member.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteLeague(ctx, league.ID))

	stored, err := f.store.Teams().GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CurrentLeagueID)

	_, err = f.service.GetLeague(ctx, league.ID)
	assert.ErrorIs(t, err, domain.ErrLeagueNotFound)
	assert.ErrorIs(t, f.service.DeleteLeague(ctx, league.ID), domain.ErrLeagueNotFound)
}
