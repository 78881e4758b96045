package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mani1234567sk/backend-dream/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	m, err := NewTokenManager(testSecret, time.Hour, clock)
	require.NoError(t, err)

	token, err := m.Issue(&domain.User{ID: "u-1", Email: "alex@example.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	p, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, "alex@example.com", p.Email)
	assert.True(t, p.IsAdmin())
}

func TestTokenExpired(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	m, err := NewTokenManager(testSecret, time.Hour, clock)
	require.NoError(t, err)

	token, err := m.Issue(&domain.User{ID: "u-1", Role: domain.RoleUser})
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)

	_, err = m.Parse(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenWrongKey(t *testing.T) {
	clock := clockwork.NewFakeClock()
	issuer, err := NewTokenManager(testSecret, time.Hour, clock)
	require.NoError(t, err)
	verifier, err := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour, clock)
	require.NoError(t, err)

	token, err := issuer.Issue(&domain.User{ID: "u-1", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	m, err := NewTokenManager(testSecret, time.Hour, clockwork.NewFakeClock())
	require.NoError(t, err)

	_, err = m.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerRejectsShortSecret(t *testing.T) {
	_, err := NewTokenManager("short", time.Hour, clockwork.NewFakeClock())
	assert.Error(t, err)
}
