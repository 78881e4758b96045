package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Unique constraints the services react to.
const (
	ConstraintUserEmail    = "users_email_key"
	ConstraintTeamName     = "teams_name_key"
	ConstraintTeamEmail    = "teams_email_key"
	ConstraintLeagueRoster = "league_teams_pkey"
	ConstraintMatchPlayer  = "match_players_pkey"
	ConstraintBookingSlot  = "bookings_active_slot_key"
	ConstraintReviewAuthor = "reviews_user_ground_key"
)

const (
	uniqueViolation           = pq.ErrorCode("23505")
	invalidTextRepresentation = pq.ErrorCode("22P02")
)

// DuplicateError reports which unique constraint rejected a write.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate key violates unique constraint %q", e.Constraint)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}

// IsDuplicate reports whether err was caused by the named unique constraint.
func IsDuplicate(err error, constraint string) bool {
	var dup *DuplicateError
	return errors.As(err, &dup) && dup.Constraint == constraint
}

// HandleNoRowsError maps a missing row to ErrNotFound. A key that does not
// parse as the column type cannot match a row either.
func HandleNoRowsError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation {
		return ErrNotFound
	}
	return err
}

// HandleWriteError converts unique violations into *DuplicateError and wraps the rest.
func HandleWriteError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return &DuplicateError{Constraint: pqErr.Constraint}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
