package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of them, handlers map
// the kind to an HTTP status.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

type Error struct {
	Kind    error
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Invalid builds a validation error for a single field.
func Invalid(format string, args ...any) *Error {
	return newError(ErrInvalidInput, "VALIDATION_ERROR", fmt.Sprintf(format, args...))
}

var (
	ErrTeamExists          = newError(ErrConflict, "TEAM_EXISTS", "Team with this name already exists")
	ErrTeamEmailExists     = newError(ErrConflict, "TEAM_EMAIL_EXISTS", "Team with this email already exists")
	ErrTeamNotFound        = newError(ErrNotFound, "NOT_FOUND", "Team not found")
	ErrPlayerAlreadyInTeam = newError(ErrConflict, "PLAYER_IN_TEAM", "Player is already in this team")
	ErrPlayerInAnotherTeam = newError(ErrConflict, "PLAYER_IN_OTHER_TEAM", "Player already belongs to another team")
	ErrPlayerNotInTeam     = newError(ErrInvalidInput, "PLAYER_NOT_IN_TEAM", "Player is not in this team")

	ErrUserNotFound       = newError(ErrNotFound, "NOT_FOUND", "User not found")
	ErrEmailTaken         = newError(ErrConflict, "EMAIL_TAKEN", "User with this email already exists")
	ErrInvalidCredentials = newError(ErrUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	ErrNoToken            = newError(ErrUnauthorized, "UNAUTHORIZED", "No token provided")
	ErrInvalidToken       = newError(ErrUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
	ErrAdminOnly          = newError(ErrForbidden, "FORBIDDEN", "Admin access required")
	ErrNotAllowed         = newError(ErrForbidden, "FORBIDDEN", "You are not allowed to perform this action")

	ErrLeagueNotFound   = newError(ErrNotFound, "NOT_FOUND", "League not found")
	ErrInvalidDateRange = newError(ErrInvalidInput, "INVALID_DATE_RANGE", "End date must be after start date")
	ErrNoTeam           = newError(ErrInvalidInput, "NO_TEAM", "You must belong to a team to join a league")
	ErrNotCaptain       = newError(ErrForbidden, "NOT_CAPTAIN", "Only the team captain can join a league")
	ErrLeagueCompleted  = newError(ErrInvalidInput, "LEAGUE_COMPLETED", "Cannot join a completed league")
	ErrAlreadyInLeague  = newError(ErrConflict, "ALREADY_IN_LEAGUE", "Team is already in this league")
	ErrInAnotherLeague  = newError(ErrConflict, "IN_ANOTHER_LEAGUE", "Team is already in another active league")

	ErrMatchNotFound    = newError(ErrNotFound, "NOT_FOUND", "Match not found")
	ErrMatchFull        = newError(ErrInvalidInput, "MATCH_FULL", "Match is already full")
	ErrAlreadyJoined    = newError(ErrConflict, "ALREADY_JOINED", "You have already joined this match")
	ErrNotJoined        = newError(ErrInvalidInput, "NOT_JOINED", "You have not joined this match")
	ErrMatchNotUpcoming = newError(ErrInvalidInput, "MATCH_CLOSED", "Match is not open for joining")
	ErrMatchStarted     = newError(ErrInvalidInput, "MATCH_STARTED", "Match has already started")
	ErrMatchInPast      = newError(ErrInvalidInput, "DATE_IN_PAST", "Match date cannot be in the past")

	ErrGroundNotFound    = newError(ErrNotFound, "NOT_FOUND", "Ground not found")
	ErrGroundUnavailable = newError(ErrInvalidInput, "GROUND_UNAVAILABLE", "Ground is not available for booking")
	ErrReviewExists      = newError(ErrConflict, "REVIEW_EXISTS", "You have already reviewed this ground")

	ErrBookingNotFound  = newError(ErrNotFound, "NOT_FOUND", "Booking not found")
	ErrSlotBooked       = newError(ErrConflict, "SLOT_BOOKED", "Ground is already booked for this date and time")
	ErrBookingInPast    = newError(ErrInvalidInput, "DATE_IN_PAST", "Booking date cannot be in the past")
	ErrBookingCancelled = newError(ErrInvalidInput, "BOOKING_CANCELLED", "Booking is already cancelled")
)

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
