package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mani1234567sk/backend-dream/internal/auth"
	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/repository"
)

const (
	minNameLen     = 2
	minPasswordLen = 6
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

type UserService struct {
	userRepo    UserRepository
	tokens      TokenIssuer
	adminEmails map[string]struct{}
	lg          zerolog.Logger
}

func NewUserService(userRepo UserRepository,
	tokens TokenIssuer,
	adminEmails []string,
	lg zerolog.Logger) *UserService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if email = domain.NormalizeEmail(email); email != "" {
			admins[email] = struct{}{}
		}
	}
	return &UserService{
		userRepo:    userRepo,
		tokens:      tokens,
		adminEmails: admins,
		lg:          lg.With().Str("service", "user").Logger(),
	}
}

// Register creates an account and returns it with a fresh token. Addresses
// listed as admin emails get the admin role.
func (s *UserService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, string, error) {
	name := domain.NormalizeName(req.Name)
	if domain.RuneLen(name) < minNameLen {
		return nil, "", domain.Invalid("Name must be at least %d characters", minNameLen)
	}
	email := domain.NormalizeEmail(req.Email)
	if !domain.ValidEmail(email) {
		return nil, "", domain.Invalid("Email must be a valid email address")
	}
	if len(req.Password) < minPasswordLen {
		return nil, "", domain.Invalid("Password must be at least %d characters", minPasswordLen)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if _, ok := s.adminEmails[email]; ok {
		user.Role = domain.RoleAdmin
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err, repository.ConstraintUserEmail) {
			return nil, "", domain.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.lg.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user, token, nil
}

func (s *UserService) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		s.lg.Warn().Str("user_id", user.ID).Msg("login rejected")
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.lg.Info().Str("user_id", user.ID).Msg("user logged in")
	return user, token, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
