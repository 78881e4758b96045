package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/testutil"
)

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(testutil.NewClock())
	user := store.AddUser(t, "Alice", "alice@example.com")
	ground := store.AddGround(t, "Arena", 30, true)

	league := &domain.League{ID: uuid.NewString(), Name: "Spring", Status: domain.LeagueActive}
	require.NoError(t, store.Leagues().Create(ctx, league))

	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	for _, hhmm := range []string{"10:00", "11:00"} {
		require.NoError(t, store.Bookings().Create(ctx, &domain.Booking{
			ID: uuid.NewString(), UserID: user.ID, GroundID: ground.ID,
			Date: day, Time: hhmm, TotalAmount: 30, Status: domain.BookingConfirmed,
		}))
	}

	svc := NewStatsService(store.Stats(), testutil.Logger())

	t.Run("totals only", func(t *testing.T) {
		stats, err := svc.GetStats(ctx, false)
		require.NoError(t, err)
		assert.EqualValues(t, 1, stats.TotalUsers)
		assert.EqualValues(t, 1, stats.TotalLeagues)
		assert.EqualValues(t, 1, stats.ActiveLeagues)
		assert.EqualValues(t, 2, stats.ActiveBookings)
		assert.Nil(t, stats.LeagueStandings)
		assert.Nil(t, stats.GroundBookings)
	})

	t.Run("with details", func(t *testing.T) {
		stats, err := svc.GetStats(ctx, true)
		require.NoError(t, err)
		require.Len(t, stats.LeagueStandings, 1)
		assert.Equal(t, "Spring", stats.LeagueStandings[0].LeagueName)
		require.Len(t, stats.GroundBookings, 1)
		assert.EqualValues(t, 2, stats.GroundBookings[0].Bookings)
		assert.InDelta(t, 60.0, stats.GroundBookings[0].Revenue, 1e-9)
	})
}
