package ground

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/repository"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

const (
	minRating        = 1
	maxRating        = 5
	maxCommentLength = 500
)

type GroundRepository interface {
	Create(ctx context.Context, g *domain.Ground) error
	GetByID(ctx context.Context, groundID string) (*domain.Ground, error)
	List(ctx context.Context, availableOnly bool) ([]domain.Ground, error)
	Update(ctx context.Context, g *domain.Ground) error
	UpdateRating(ctx context.Context, groundID string, summary domain.RatingSummary) error
	Delete(ctx context.Context, groundID string) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByGround(ctx context.Context, groundID string) ([]domain.Review, error)
	Summary(ctx context.Context, groundID string) (domain.RatingSummary, error)
}

type GroundService struct {
	groundRepo GroundRepository
	reviewRepo ReviewRepository
	txManager  database.TransactionManagerInterface
	lg         zerolog.Logger
}

func NewGroundService(groundRepo GroundRepository,
	reviewRepo ReviewRepository,
	txManager database.TransactionManagerInterface,
	lg zerolog.Logger) *GroundService {
	return &GroundService{
		groundRepo: groundRepo,
		reviewRepo: reviewRepo,
		txManager:  txManager,
		lg:         lg.With().Str("service", "ground").Logger(),
	}
}

func (s *GroundService) CreateGround(ctx context.Context, req domain.CreateGroundRequest) (*domain.Ground, error) {
	g := &domain.Ground{
		ID:           uuid.NewString(),
		Name:         domain.NormalizeName(req.Name),
		Location:     strings.TrimSpace(req.Location),
		Size:         strings.TrimSpace(req.Size),
		PricePerHour: req.PricePerHour,
		Features:     normalizeFeatures(req.Features),
		IsAvailable:  true,
	}
	if req.IsAvailable != nil {
		g.IsAvailable = *req.IsAvailable
	}
	if err := validateGround(g); err != nil {
		return nil, err
	}

	if err := s.groundRepo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create ground: %w", err)
	}

	s.lg.Info().Str("ground_id", g.ID).Str("name", g.Name).Float64("price_per_hour", g.PricePerHour).Msg("ground created")
	return g, nil
}

func (s *GroundService) UpdateGround(ctx context.Context, groundID string, req domain.UpdateGroundRequest) (*domain.Ground, error) {
	var g *domain.Ground

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		g, err = s.getGround(txCtx, groundID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			g.Name = domain.NormalizeName(*req.Name)
		}
		if req.Location != nil {
			g.Location = strings.TrimSpace(*req.Location)
		}
		if req.Size != nil {
			g.Size = strings.TrimSpace(*req.Size)
		}
		if req.PricePerHour != nil {
			g.PricePerHour = *req.PricePerHour
		}
		if req.Features != nil {
			g.Features = normalizeFeatures(*req.Features)
		}
		if req.IsAvailable != nil {
			g.IsAvailable = *req.IsAvailable
		}
		if err := validateGround(g); err != nil {
			return err
		}

		if err := s.groundRepo.Update(txCtx, g); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrGroundNotFound
			}
			return fmt.Errorf("failed to update ground: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().Str("ground_id", groundID).Bool("is_available", g.IsAvailable).Msg("ground updated")
	return g, nil
}

func (s *GroundService) DeleteGround(ctx context.Context, groundID string) error {
	if err := s.groundRepo.Delete(ctx, groundID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrGroundNotFound
		}
		return fmt.Errorf("failed to delete ground: %w", err)
	}

	s.lg.Info().Str("ground_id", groundID).Msg("ground deleted")
	return nil
}

func (s *GroundService) GetGround(ctx context.Context, groundID string) (*domain.Ground, error) {
	return s.getGround(ctx, groundID)
}

func (s *GroundService) ListGrounds(ctx context.Context, availableOnly bool) ([]domain.Ground, error) {
	grounds, err := s.groundRepo.List(ctx, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list grounds: %w", err)
	}
	if grounds == nil {
		grounds = []domain.Ground{}
	}
	return grounds, nil
}

// AddReview stores the review and refreshes the ground's rating aggregate in
// the same transaction.
func (s *GroundService) AddReview(ctx context.Context, groundID, userID string, req domain.CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < minRating || req.Rating > maxRating {
		return nil, domain.Invalid("Rating must be between %d and %d", minRating, maxRating)
	}
	comment := strings.TrimSpace(req.Comment)
	if domain.RuneLen(comment) > maxCommentLength {
		return nil, domain.Invalid("Comment must be at most %d characters", maxCommentLength)
	}

	review := &domain.Review{
		ID:       uuid.NewString(),
		UserID:   userID,
		GroundID: groundID,
		Rating:   req.Rating,
		Comment:  comment,
	}

	var summary domain.RatingSummary
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getGround(txCtx, groundID); err != nil {
			return err
		}

		if err := s.reviewRepo.Create(txCtx, review); err != nil {
			if repository.IsDuplicate(err, repository.ConstraintReviewAuthor) {
				return domain.ErrReviewExists
			}
			return fmt.Errorf("failed to create review: %w", err)
		}

		var err error
		summary, err = s.reviewRepo.Summary(txCtx, groundID)
		if err != nil {
			return fmt.Errorf("failed to summarize reviews: %w", err)
		}
		if err := s.groundRepo.UpdateRating(txCtx, groundID, summary); err != nil {
			return fmt.Errorf("failed to update ground rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().
		Str("ground_id", groundID).
		Str("user_id", userID).
		Int("rating", review.Rating).
		Float64("average_rating", summary.Average).
		Int("review_count", summary.Count).
		Msg("review added")
	return review, nil
}

func (s *GroundService) ListReviews(ctx context.Context, groundID string) ([]domain.Review, error) {
	if _, err := s.getGround(ctx, groundID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByGround(ctx, groundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

func (s *GroundService) getGround(ctx context.Context, groundID string) (*domain.Ground, error) {
	g, err := s.groundRepo.GetByID(ctx, groundID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrGroundNotFound
		}
		return nil, fmt.Errorf("failed to get ground: %w", err)
	}
	return g, nil
}

func validateGround(g *domain.Ground) error {
	if g.Name == "" {
		return domain.Invalid("Ground name is required")
	}
	if g.Location == "" {
		return domain.Invalid("Location is required")
	}
	if g.PricePerHour <= 0 {
		return domain.Invalid("Price per hour must be greater than 0")
	}
	return nil
}

// normalizeFeatures trims entries and drops blanks and repeats, keeping order.
func normalizeFeatures(raw []string) []string {
	features := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, f := range raw {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		key := strings.ToLower(f)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		features = append(features, f)
	}
	return features
}
