package testutil

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mani1234567sk/backend-dream/internal/domain"
)

// Now is the instant fake clocks in tests start at.
var Now = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func NewClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(Now)
}

func Logger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func Admin(userID string) domain.Principal {
	return domain.Principal{UserID: userID, Role: domain.RoleAdmin}
}

func Member(userID string) domain.Principal {
	return domain.Principal{UserID: userID, Role: domain.RoleUser}
}

func (s *Store) AddUser(t testing.TB, name, email string) *domain.User {
	t.Helper()

	u := &domain.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Role:  domain.RoleUser,
	}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func (s *Store) AddGround(t testing.TB, name string, price float64, available bool) *domain.Ground {
	t.Helper()

	g := &domain.Ground{
		ID:           uuid.NewString(),
		Name:         name,
		Location:     "Central Park",
		Size:         "11-a-side",
		PricePerHour: price,
		Features:     []string{},
		IsAvailable:  available,
	}
	require.NoError(t, s.Grounds().Create(context.Background(), g))
	return g
}
