package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/repository"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, bookingID string) (*domain.Booking, error)
	SlotTaken(ctx context.Context, groundID string, day time.Time, hhmm string) (bool, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) error
}

type GroundRepository interface {
	GetByID(ctx context.Context, groundID string) (*domain.Ground, error)
}

type BookingService struct {
	bookingRepo BookingRepository
	groundRepo  GroundRepository
	txManager   database.TransactionManagerInterface
	clock       clockwork.Clock
	loc         *time.Location
	lg          zerolog.Logger
}

func NewBookingService(bookingRepo BookingRepository,
	groundRepo GroundRepository,
	txManager database.TransactionManagerInterface,
	clock clockwork.Clock,
	loc *time.Location,
	lg zerolog.Logger) *BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingService{
		bookingRepo: bookingRepo,
		groundRepo:  groundRepo,
		txManager:   txManager,
		clock:       clock,
		loc:         loc,
		lg:          lg.With().Str("service", "booking").Logger(),
	}
}

// CreateBooking reserves one slot of the ground. The amount charged is the
// ground's hourly price at booking time.
func (s *BookingService) CreateBooking(ctx context.Context, userID string, req domain.CreateBookingRequest) (*domain.Booking, error) {
	day, ok := domain.ParseDate(req.Date)
	if !ok {
		return nil, domain.Invalid("Date must be a valid date")
	}
	hhmm := strings.TrimSpace(req.Time)
	if !domain.ValidTimeOfDay(hhmm) {
		return nil, domain.Invalid("Time must be in HH:MM format")
	}
	if day.Before(domain.DateOf(s.clock.Now().In(s.loc))) {
		return nil, domain.ErrBookingInPast
	}

	b := &domain.Booking{
		ID:       uuid.NewString(),
		UserID:   userID,
		GroundID: req.GroundID,
		Date:     day,
		Time:     hhmm,
		Status:   domain.BookingConfirmed,
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		g, err := s.groundRepo.GetByID(txCtx, req.GroundID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrGroundNotFound
			}
			return fmt.Errorf("failed to get ground: %w", err)
		}
		if !g.IsAvailable {
			return domain.ErrGroundUnavailable
		}

		taken, err := s.bookingRepo.SlotTaken(txCtx, g.ID, day, hhmm)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrSlotBooked
		}

		b.TotalAmount = g.PricePerHour
		b.GroundName = g.Name
		b.GroundLocation = g.Location

		if err := s.bookingRepo.Create(txCtx, b); err != nil {
			if repository.IsDuplicate(err, repository.ConstraintBookingSlot) {
				return domain.ErrSlotBooked
			}
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().
		Str("booking_id", b.ID).
		Str("ground_id", b.GroundID).
		Str("user_id", userID).
		Str("date", day.Format(domain.DateLayout)).
		Str("time", hhmm).
		Msg("booking created")
	return b, nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return nonNil(bookings), nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	return nonNil(bookings), nil
}

// CancelBooking marks the booking cancelled, which frees its slot.
func (s *BookingService) CancelBooking(ctx context.Context, caller domain.Principal, bookingID string) (*domain.Booking, error) {
	var b *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		b, err = s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrBookingNotFound
			}
			return fmt.Errorf("failed to get booking: %w", err)
		}
		if !caller.IsAdmin() && b.UserID != caller.UserID {
			return domain.ErrNotAllowed
		}
		if b.Status == domain.BookingCancelled {
			return domain.ErrBookingCancelled
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.BookingCancelled); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrBookingNotFound
			}
			return fmt.Errorf("failed to cancel booking: %w", err)
		}
		b.Status = domain.BookingCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().Str("booking_id", bookingID).Str("user_id", caller.UserID).Msg("booking cancelled")
	return b, nil
}

func nonNil(bookings []domain.Booking) []domain.Booking {
	if bookings == nil {
		return []domain.Booking{}
	}
	return bookings
}
