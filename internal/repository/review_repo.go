package repository

import (
	"context"
	"fmt"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

type ReviewRepository struct {
	db *database.DB
}

func NewReviewRepository(db *database.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		INSERT INTO reviews (id, user_id, ground_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, review.ID, review.UserID, review.GroundID, review.Rating, review.Comment).Scan(&review.CreatedAt)
	if err != nil {
		return HandleWriteError(err, "failed to insert review")
	}
	return nil
}

func (r *ReviewRepository) ListByGround(ctx context.Context, groundID string) ([]domain.Review, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, `
		SELECT rv.id, rv.user_id, u.name, rv.ground_id, rv.rating, rv.comment, rv.created_at
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.ground_id = $1
		ORDER BY rv.created_at DESC
	`, groundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.UserName, &rv.GroundID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) Summary(ctx context.Context, groundID string) (domain.RatingSummary, error) {
	conn := r.db.Conn(ctx)

	var summary domain.RatingSummary
	err := conn.QueryRowContext(ctx, `
		SELECT COALESCE(AVG(rating), 0)::double precision, COUNT(*)
		FROM reviews
		WHERE ground_id = $1
	`, groundID).Scan(&summary.Average, &summary.Count)
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("failed to summarize reviews: %w", err)
	}
	return summary, nil
}
