package domain

type StatsResponse struct {
	TotalTeams      int64         `json:"total_teams"`
	TotalUsers      int64         `json:"total_users"`
	TotalLeagues    int64         `json:"total_leagues"`
	ActiveLeagues   int64         `json:"active_leagues"`
	UpcomingMatches int64         `json:"upcoming_matches"`
	TotalGrounds    int64         `json:"total_grounds"`
	ActiveBookings  int64         `json:"active_bookings"`
	LeagueStandings []LeagueTeams `json:"league_standings,omitempty"`
	GroundBookings  []GroundUsage `json:"ground_bookings,omitempty"`
}

type LeagueTeams struct {
	LeagueID   string `json:"league_id"`
	LeagueName string `json:"league_name"`
	Status     string `json:"status"`
	TeamCount  int64  `json:"team_count"`
}

type GroundUsage struct {
	GroundID      string  `json:"ground_id"`
	GroundName    string  `json:"ground_name"`
	Bookings      int64   `json:"bookings"`
	Revenue       float64 `json:"revenue"`
	AverageRating float64 `json:"average_rating"`
}
