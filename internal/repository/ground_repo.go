package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

type GroundRepository struct {
	db *database.DB
}

func NewGroundRepository(db *database.DB) *GroundRepository {
	return &GroundRepository{db: db}
}

const groundColumns = `id, name, location, size, price_per_hour, features, is_available, average_rating,
	review_count, created_at, updated_at`

func scanGround(row interface{ Scan(...any) error }) (*domain.Ground, error) {
	var g domain.Ground
	err := row.Scan(&g.ID, &g.Name, &g.Location, &g.Size, &g.PricePerHour, pq.Array(&g.Features),
		&g.IsAvailable, &g.AverageRating, &g.ReviewCount, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if g.Features == nil {
		g.Features = []string{}
	}
	return &g, nil
}

func (r *GroundRepository) Create(ctx context.Context, g *domain.Ground) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		INSERT INTO grounds (id, name, location, size, price_per_hour, features, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, g.ID, g.Name, g.Location, g.Size, g.PricePerHour, pq.Array(g.Features), g.IsAvailable).
		Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return HandleWriteError(err, "failed to insert ground")
	}
	return nil
}

func (r *GroundRepository) GetByID(ctx context.Context, groundID string) (*domain.Ground, error) {
	conn := r.db.Conn(ctx)

	g, err := scanGround(conn.QueryRowContext(ctx, `SELECT `+groundColumns+` FROM grounds WHERE id = $1`, groundID))
	if err != nil {
		return nil, HandleNoRowsError(err)
	}
	return g, nil
}

func (r *GroundRepository) List(ctx context.Context, availableOnly bool) ([]domain.Ground, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, `
		SELECT `+groundColumns+`
		FROM grounds
		WHERE (NOT $1::boolean OR is_available)
		ORDER BY name
	`, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query grounds: %w", err)
	}
	defer rows.Close()

	grounds := []domain.Ground{}
	for rows.Next() {
		g, err := scanGround(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ground: %w", err)
		}
		grounds = append(grounds, *g)
	}
	return grounds, rows.Err()
}

func (r *GroundRepository) Update(ctx context.Context, g *domain.Ground) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		UPDATE grounds
		SET name = $2, location = $3, size = $4, price_per_hour = $5, features = $6, is_available = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, g.ID, g.Name, g.Location, g.Size, g.PricePerHour, pq.Array(g.Features), g.IsAvailable).Scan(&g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update ground: %w", err)
	}
	return nil
}

// UpdateRating stores the aggregate of the ground's reviews.
func (r *GroundRepository) UpdateRating(ctx context.Context, groundID string, summary domain.RatingSummary) error {
	conn := r.db.Conn(ctx)

	_, err := conn.ExecContext(ctx, `
		UPDATE grounds SET average_rating = $2, review_count = $3, updated_at = NOW() WHERE id = $1
	`, groundID, summary.Average, summary.Count)
	if err != nil {
		return fmt.Errorf("failed to update ground rating: %w", err)
	}
	return nil
}

func (r *GroundRepository) Delete(ctx context.Context, groundID string) error {
	conn := r.db.Conn(ctx)

	res, err := conn.ExecContext(ctx, `DELETE FROM grounds WHERE id = $1`, groundID)
	if err != nil {
		return fmt.Errorf("failed to delete ground: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
