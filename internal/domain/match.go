package domain

import "time"

const DefaultMaxPlayers = 22

type MatchStatus string

const (
	MatchUpcoming  MatchStatus = "upcoming"
	MatchOngoing   MatchStatus = "ongoing"
	MatchCompleted MatchStatus = "completed"
	MatchCancelled MatchStatus = "cancelled"
)

func (s MatchStatus) IsValid() bool {
	switch s {
	case MatchUpcoming, MatchOngoing, MatchCompleted, MatchCancelled:
		return true
	default:
		return false
	}
}

type Match struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Date          time.Time     `json:"date"`
	Time          string        `json:"time"`
	Location      string        `json:"location"`
	MatchType     string        `json:"matchType"`
	MaxPlayers    int           `json:"maxPlayers"`
	CreatorID     string        `json:"creator"`
	JoinedPlayers []MatchPlayer `json:"joinedPlayers"`
	Status        MatchStatus   `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type MatchPlayer struct {
	UserID      string    `json:"user"`
	PlayerName  string    `json:"playerName"`
	TeamName    string    `json:"teamName,omitempty"`
	ContactInfo string    `json:"contactInfo"`
	JoinedAt    time.Time `json:"joinedAt"`
}

func (m *Match) IsFull() bool {
	return len(m.JoinedPlayers) >= m.MaxPlayers
}

func (m *Match) HasPlayer(userID string) bool {
	for _, p := range m.JoinedPlayers {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// StartsAt is the moment the match kicks off in loc.
func (m *Match) StartsAt(loc *time.Location) (time.Time, error) {
	return At(m.Date, m.Time, loc)
}

type CreateMatchRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Location   string `json:"location" binding:"required,max=200"`
	MatchType  string `json:"matchType" binding:"max=50"`
	MaxPlayers int    `json:"maxPlayers"`
}

type UpdateMatchRequest struct {
	Name       *string      `json:"name"`
	Date       *string      `json:"date"`
	Time       *string      `json:"time"`
	Location   *string      `json:"location"`
	MatchType  *string      `json:"matchType"`
	MaxPlayers *int         `json:"maxPlayers"`
	Status     *MatchStatus `json:"status"`
}

type JoinMatchRequest struct {
	PlayerName  string `json:"playerName" binding:"required,max=100"`
	ContactInfo string `json:"contactInfo" binding:"required,max=200"`
	TeamName    string `json:"teamName" binding:"max=100"`
}
