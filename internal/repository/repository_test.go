package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

func setupTestDB(t *testing.T) (*database.DB, *database.TransactionManager) {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db, "file://../../migrations"))

	txManager, err := database.NewTransactionManager(db)
	require.NoError(t, err)

	return database.NewDB(db), txManager
}

func newUser(t *testing.T, repo *UserRepository, email string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         "Player " + email,
		Email:        email,
		PasswordHash: "hash",
		Role:         domain.RoleUser,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func newTeam(t *testing.T, repo *TeamRepository, name string, captainID *string) *domain.Team {
	t.Helper()
	team := &domain.Team{
		ID:           uuid.NewString(),
		Name:         name,
		NameKey:      domain.TeamNameKey(name),
		Captain:      "Captain " + name,
		CaptainID:    captainID,
		PasswordHash: "hash",
	}
	require.NoError(t, repo.Create(context.Background(), team))
	return team
}

func newGround(t *testing.T, repo *GroundRepository) *domain.Ground {
	t.Helper()
	g := &domain.Ground{
		ID:           uuid.NewString(),
		Name:         "North Field",
		Location:     "Central Park",
		PricePerHour: 40,
		Features:     []string{"Floodlights"},
		IsAvailable:  true,
	}
	require.NoError(t, repo.Create(context.Background(), g))
	return g
}

func TestPostgresRepositories(t *testing.T) {
	db, txManager := setupTestDB(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	teams := NewTeamRepository(db)
	leagues := NewLeagueRepository(db)
	grounds := NewGroundRepository(db)
	reviews := NewReviewRepository(db)
	bookings := NewBookingRepository(db)
	stats := NewStatsRepository(db)

	t.Run("user email is unique regardless of case", func(t *testing.T) {
		newUser(t, users, "alice@example.com")

		err := users.Create(ctx, &domain.User{
			ID:           uuid.NewString(),
			Name:         "Alice Again",
			Email:        "ALICE@example.com",
			PasswordHash: "hash",
			Role:         domain.RoleUser,
		})
		assert.True(t, IsDuplicate(err, ConstraintUserEmail))

		found, err := users.GetByEmail(ctx, "Alice@Example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", found.Email)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := users.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		_, err := teams.GetByID(ctx, "abc")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = bookings.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("team name key is unique", func(t *testing.T) {
		newTeam(t, teams, "Eagles", nil)

		dup := &domain.Team{
			ID:           uuid.NewString(),
			Name:         "eagles ",
			NameKey:      domain.TeamNameKey("eagles "),
			Captain:      "Someone",
			PasswordHash: "hash",
		}
		err := teams.Create(ctx, dup)
		assert.True(t, IsDuplicate(err, ConstraintTeamName))

		exists, err := teams.ExistsByNameKey(ctx, domain.TeamNameKey("EAGLES"), "")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("league roster rejects the same team twice", func(t *testing.T) {
		team := newTeam(t, teams, "Hawks", nil)
		league := &domain.League{
			ID:        uuid.NewString(),
			Name:      "Spring",
			StartDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
			Status:    domain.LeagueUpcoming,
		}
		require.NoError(t, leagues.Create(ctx, league))

		require.NoError(t, leagues.AddTeam(ctx, league.ID, team.ID))
		err := leagues.AddTeam(ctx, league.ID, team.ID)
		assert.True(t, IsDuplicate(err, ConstraintLeagueRoster))

		got, err := leagues.GetByID(ctx, league.ID)
		require.NoError(t, err)
		require.Len(t, got.Teams, 1)
		assert.Equal(t, "Hawks", got.Teams[0].Name)
	})

	t.Run("deleting a team detaches its players", func(t *testing.T) {
		captain := newUser(t, users, "cap@example.com")
		team := newTeam(t, teams, "Falcons", &captain.ID)

		ok, err := users.AssignTeam(ctx, captain.ID, team.ID)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = users.AssignTeam(ctx, captain.ID, team.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		err = txManager.Do(ctx, func(txCtx context.Context) error {
			if _, err := users.ClearTeam(txCtx, team.ID); err != nil {
				return err
			}
			if _, err := leagues.RemoveTeamFromAll(txCtx, team.ID); err != nil {
				return err
			}
			return teams.Delete(txCtx, team.ID)
		})
		require.NoError(t, err)

		got, err := users.GetByID(ctx, captain.ID)
		require.NoError(t, err)
		assert.Nil(t, got.TeamID)

		_, err = teams.GetByID(ctx, team.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, teams.Delete(ctx, team.ID), ErrNotFound)
	})

	t.Run("failed transaction rolls back", func(t *testing.T) {
		team := newTeam(t, teams, "Owls", nil)
		boom := errors.New("boom")

		err := txManager.Do(ctx, func(txCtx context.Context) error {
			if err := teams.Delete(txCtx, team.ID); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = teams.GetByID(ctx, team.ID)
		assert.NoError(t, err)
	})

	t.Run("active booking slot is unique until cancelled", func(t *testing.T) {
		booker := newUser(t, users, "booker@example.com")
		ground := newGround(t, grounds)
		day := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

		first := &domain.Booking{
			ID:          uuid.NewString(),
			UserID:      booker.ID,
			GroundID:    ground.ID,
			Date:        day,
			Time:        "10:00",
			TotalAmount: ground.PricePerHour,
			Status:      domain.BookingConfirmed,
		}
		require.NoError(t, bookings.Create(ctx, first))

		taken, err := bookings.SlotTaken(ctx, ground.ID, day, "10:00")
		require.NoError(t, err)
		assert.True(t, taken)

		second := *first
		second.ID = uuid.NewString()
		err = bookings.Create(ctx, &second)
		assert.True(t, IsDuplicate(err, ConstraintBookingSlot))

		require.NoError(t, bookings.UpdateStatus(ctx, first.ID, domain.BookingCancelled))

		taken, err = bookings.SlotTaken(ctx, ground.ID, day, "10:00")
		require.NoError(t, err)
		assert.False(t, taken)
		require.NoError(t, bookings.Create(ctx, &second))

		mine, err := bookings.ListByUser(ctx, booker.ID)
		require.NoError(t, err)
		assert.Len(t, mine, 2)
	})

	t.Run("one review per user and ground", func(t *testing.T) {
		reviewer := newUser(t, users, "reviewer@example.com")
		ground := newGround(t, grounds)

		review := &domain.Review{
			ID:       uuid.NewString(),
			UserID:   reviewer.ID,
			GroundID: ground.ID,
			Rating:   4,
			Comment:  "Good pitch",
		}
		require.NoError(t, reviews.Create(ctx, review))

		again := *review
		again.ID = uuid.NewString()
		err := reviews.Create(ctx, &again)
		assert.True(t, IsDuplicate(err, ConstraintReviewAuthor))

		summary, err := reviews.Summary(ctx, ground.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Count)
		assert.InDelta(t, 4.0, summary.Average, 0.001)
	})

	t.Run("stats count rows", func(t *testing.T) {
		totals, err := stats.GetTotalStats(ctx)
		require.NoError(t, err)
		assert.Positive(t, totals.TotalUsers)
		assert.Positive(t, totals.TotalTeams)
		assert.Positive(t, totals.TotalGrounds)
	})
}
