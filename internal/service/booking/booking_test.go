package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/testutil"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

func newService(t *testing.T) (*BookingService, *testutil.Store) {
	t.Helper()

	clock := testutil.NewClock()
	store := testutil.NewStore(clock)
	svc := NewBookingService(store.Bookings(), store.Grounds(), database.NopTransactionManager{}, clock, time.UTC, testutil.Logger())
	return svc, store
}

func TestCreateBooking(t *testing.T) {
	svc, store := newService(t)
	g := store.AddGround(t, "Arena", 40, true)
	user := store.AddUser(t, "Alice", "alice@example.com")

	b, err := svc.CreateBooking(context.Background(), user.ID, domain.CreateBookingRequest{
		GroundID: g.ID, Date: "2025-03-12", Time: "18:00",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, 40.0, b.TotalAmount)
	assert.Equal(t, "Arena", b.GroundName)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), b.Date)
}

func TestCreateBooking_DoubleBooking(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	g := store.AddGround(t, "Arena", 40, true)
	alice := store.AddUser(t, "Alice", "alice@example.com")
	bob := store.AddUser(t, "Bob", "bob@example.com")
	req := domain.CreateBookingRequest{GroundID: g.ID, Date: "2025-03-12", Time: "18:00"}

	first, err := svc.CreateBooking(ctx, alice.ID, req)
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, bob.ID, req)
	require.ErrorIs(t, err, domain.ErrSlotBooked)
	assert.ErrorIs(t, err, domain.ErrConflict)

	other := req
	other.Time = "19:00"
	_, err = svc.CreateBooking(ctx, bob.ID, other)
	require.NoError(t, err, "a different hour is free")

	_, err = svc.CancelBooking(ctx, testutil.Member(alice.ID), first.ID)
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, bob.ID, req)
	assert.NoError(t, err, "cancelling frees the slot")
}

func TestCreateBooking_Rejections(t *testing.T) {
	svc, store := newService(t)
	open := store.AddGround(t, "Arena", 40, true)
	closed := store.AddGround(t, "Closed", 40, false)
	user := store.AddUser(t, "Alice", "alice@example.com")

	tests := []struct {
		name    string
		req     domain.CreateBookingRequest
		wantErr error
	}{
		{"past date", domain.CreateBookingRequest{GroundID: open.ID, Date: "2025-03-09", Time: "18:00"}, domain.ErrBookingInPast},
		{"bad time", domain.CreateBookingRequest{GroundID: open.ID, Date: "2025-03-12", Time: "6pm"}, domain.ErrInvalidInput},
		{"bad date", domain.CreateBookingRequest{GroundID: open.ID, Date: "tomorrow", Time: "18:00"}, domain.ErrInvalidInput},
		{"unavailable ground", domain.CreateBookingRequest{GroundID: closed.ID, Date: "2025-03-12", Time: "18:00"}, domain.ErrGroundUnavailable},
		{"unknown ground", domain.CreateBookingRequest{GroundID: uuid.NewString(), Date: "2025-03-12", Time: "18:00"}, domain.ErrGroundNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBooking(context.Background(), user.ID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCancelBooking(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	g := store.AddGround(t, "Arena", 40, true)
	owner := store.AddUser(t, "Alice", "alice@example.com")
	stranger := store.AddUser(t, "Bob", "bob@example.com")

	b, err := svc.CreateBooking(ctx, owner.ID, domain.CreateBookingRequest{GroundID: g.ID, Date: "2025-03-12", Time: "18:00"})
	require.NoError(t, err)

	_, err = svc.CancelBooking(ctx, testutil.Member(stranger.ID), b.ID)
	assert.ErrorIs(t, err, domain.ErrNotAllowed)

	cancelled, err := svc.CancelBooking(ctx, testutil.Admin(stranger.ID), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)

	_, err = svc.CancelBooking(ctx, testutil.Member(owner.ID), b.ID)
	assert.ErrorIs(t, err, domain.ErrBookingCancelled)

	_, err = svc.CancelBooking(ctx, testutil.Member(owner.ID), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestListBookings(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	g := store.AddGround(t, "Arena", 40, true)
	alice := store.AddUser(t, "Alice", "alice@example.com")
	bob := store.AddUser(t, "Bob", "bob@example.com")

	for _, hhmm := range []string{"10:00", "11:00"} {
		_, err := svc.CreateBooking(ctx, alice.ID, domain.CreateBookingRequest{GroundID: g.ID, Date: "2025-03-12", Time: hhmm})
		require.NoError(t, err)
	}
	_, err := svc.CreateBooking(ctx, bob.ID, domain.CreateBookingRequest{GroundID: g.ID, Date: "2025-03-12", Time: "12:00"})
	require.NoError(t, err)

	all, err := svc.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := svc.ListUserBookings(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := svc.ListUserBookings(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
