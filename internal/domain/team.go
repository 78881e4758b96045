package domain

import "time"

type Team struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	NameKey         string       `json:"-"`
	Captain         string       `json:"captain"`
	CaptainID       *string      `json:"captainId,omitempty"`
	PasswordHash    string       `json:"-"`
	Logo            string       `json:"logo"`
	Email           *string      `json:"email,omitempty"`
	Players         []TeamPlayer `json:"players"`
	CurrentLeagueID *string      `json:"currentLeague,omitempty"`
	MatchesPlayed   int          `json:"matchesPlayed"`
	Wins            int          `json:"wins"`
	Losses          int          `json:"losses"`
	Draws           int          `json:"draws"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

type TeamPlayer struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func (t *Team) IsCaptain(userID string) bool {
	return t.CaptainID != nil && *t.CaptainID == userID
}

func (t *Team) HasPlayer(userID string) bool {
	for _, p := range t.Players {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

type MatchResult string

const (
	ResultWin  MatchResult = "win"
	ResultLoss MatchResult = "loss"
	ResultDraw MatchResult = "draw"
)

func (r MatchResult) IsValid() bool {
	switch r {
	case ResultWin, ResultLoss, ResultDraw:
		return true
	default:
		return false
	}
}

type CreateTeamRequest struct {
	Name     string `json:"name" binding:"required"`
	Captain  string `json:"captain" binding:"required"`
	Password string `json:"password" binding:"required"`
	Logo     string `json:"logo"`
	Email    string `json:"email"`
}

type UpdateTeamRequest struct {
	Name    *string `json:"name"`
	Captain *string `json:"captain"`
	Logo    *string `json:"logo"`
	Email   *string `json:"email"`
}

type AddPlayerRequest struct {
	PlayerID string `json:"playerId" binding:"required,uuid"`
}

type RecordResultRequest struct {
	Result MatchResult `json:"result" binding:"required,oneof=win loss draw"`
}
