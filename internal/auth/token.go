package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/jonboulle/clockwork"

	"github.com/mani1234567sk/backend-dream/internal/domain"
)

const (
	tokenIssuer  = "backend-dream"
	minSecretLen = 32
)

var ErrInvalidToken = errors.New("invalid token")

type tokenClaims struct {
	jwt.Claims
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	key    []byte
	ttl    time.Duration
	clock  clockwork.Clock
	signer jose.Signer
}

func NewTokenManager(secret string, ttl time.Duration, clock clockwork.Clock) (*TokenManager, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("token secret must be at least %d bytes", minSecretLen)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}

	key := []byte(secret)
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token signer: %w", err)
	}

	return &TokenManager{key: key, ttl: ttl, clock: clock, signer: signer}, nil
}

func (m *TokenManager) Issue(user *domain.User) (string, error) {
	now := m.clock.Now()
	claims := tokenClaims{
		Claims: jwt.Claims{
			Issuer:   tokenIssuer,
			Subject:  user.ID,
			IssuedAt: jwt.NewNumericDate(now),
			Expiry:   jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Email: user.Email,
		Role:  user.Role,
	}

	token, err := jwt.Signed(m.signer).Claims(claims).CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Parse verifies signature, issuer and expiry and returns the caller identity.
func (m *TokenManager) Parse(raw string) (*domain.Principal, error) {
	token, err := jwt.ParseSigned(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if len(token.Headers) != 1 || token.Headers[0].Algorithm != string(jose.HS256) {
		return nil, fmt.Errorf("%w: unexpected signing algorithm", ErrInvalidToken)
	}

	var claims tokenClaims
	if err := token.Claims(m.key, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	err = claims.Claims.ValidateWithLeeway(jwt.Expected{
		Issuer: tokenIssuer,
		Time:   m.clock.Now(),
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &domain.Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
