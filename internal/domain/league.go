package domain

import (
	"fmt"
	"time"
)

type LeagueStatus string

const (
	LeagueUpcoming  LeagueStatus = "upcoming"
	LeagueActive    LeagueStatus = "active"
	LeagueCompleted LeagueStatus = "completed"
)

func (s LeagueStatus) IsValid() bool {
	switch s {
	case LeagueUpcoming, LeagueActive, LeagueCompleted:
		return true
	default:
		return false
	}
}

// DeriveLeagueStatus places today against the league dates: upcoming before
// the start, completed once the end date has passed, active in between.
func DeriveLeagueStatus(start, end, today time.Time) LeagueStatus {
	switch {
	case end.Before(today):
		return LeagueCompleted
	case start.After(today):
		return LeagueUpcoming
	default:
		return LeagueActive
	}
}

type League struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	StartDate   time.Time    `json:"startDate"`
	EndDate     time.Time    `json:"endDate"`
	Status      LeagueStatus `json:"status"`
	Teams       []LeagueTeam `json:"teams"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type LeagueTeam struct {
	TeamID   string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

func (l *League) HasTeam(teamID string) bool {
	for _, t := range l.Teams {
		if t.TeamID == teamID {
			return true
		}
	}
	return false
}

// StatusOn reports the status as of today. A league past its end date is
// completed even when the stored status has not caught up.
func (l *League) StatusOn(today time.Time) LeagueStatus {
	if l.EndDate.Before(today) {
		return LeagueCompleted
	}
	return l.Status
}

func (l *League) ValidateDates() error {
	if !l.EndDate.After(l.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

func (l *League) ValidateStatus() error {
	if !l.Status.IsValid() {
		return Invalid("invalid league status: %s", l.Status)
	}
	return nil
}

type CreateLeagueRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
}

type UpdateLeagueRequest struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	StartDate   *string       `json:"startDate"`
	EndDate     *string       `json:"endDate"`
	Status      *LeagueStatus `json:"status"`
}

// JoinPolicy decides which team members may enrol their team in a league.
type JoinPolicy string

const (
	JoinAnyMember   JoinPolicy = "member"
	JoinCaptainOnly JoinPolicy = "captain"
)

func ParseJoinPolicy(s string) (JoinPolicy, error) {
	switch JoinPolicy(s) {
	case "", JoinAnyMember:
		return JoinAnyMember, nil
	case JoinCaptainOnly:
		return JoinCaptainOnly, nil
	default:
		return "", fmt.Errorf("unknown league join policy %q", s)
	}
}
