package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingSelect = `
	SELECT b.id, b.user_id, b.ground_id, g.name, g.location, b.booking_date, b.booking_time,
		b.total_amount, b.status, b.created_at, b.updated_at
	FROM bookings b
	JOIN grounds g ON g.id = b.ground_id`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.GroundID, &b.GroundName, &b.GroundLocation, &b.Date, &b.Time,
		&b.TotalAmount, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		INSERT INTO bookings (id, user_id, ground_id, booking_date, booking_time, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, b.ID, b.UserID, b.GroundID, b.Date, b.Time, b.TotalAmount, b.Status).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return HandleWriteError(err, "failed to insert booking")
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	conn := r.db.Conn(ctx)

	b, err := scanBooking(conn.QueryRowContext(ctx, bookingSelect+` WHERE b.id = $1`, bookingID))
	if err != nil {
		return nil, HandleNoRowsError(err)
	}
	return b, nil
}

// SlotTaken reports whether a non-cancelled booking holds the ground on that day and time.
func (r *BookingRepository) SlotTaken(ctx context.Context, groundID string, day time.Time, hhmm string) (bool, error) {
	conn := r.db.Conn(ctx)

	var taken bool
	err := conn.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE ground_id = $1 AND booking_date = $2::date AND booking_time = $3 AND status <> 'cancelled'
		)
	`, groundID, day.Format(domain.DateLayout), hhmm).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check booking slot: %w", err)
	}
	return taken, nil
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.list(ctx, bookingSelect+` ORDER BY b.booking_date DESC, b.booking_time DESC`)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return r.list(ctx, bookingSelect+` WHERE b.user_id = $1 ORDER BY b.booking_date DESC, b.booking_time DESC`, userID)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) error {
	conn := r.db.Conn(ctx)

	res, err := conn.ExecContext(ctx, `
		UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1
	`, bookingID, status)
	if err != nil {
		return HandleWriteError(err, "failed to update booking status")
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
