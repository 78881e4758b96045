package service

import (
	"github.com/mani1234567sk/backend-dream/internal/service/booking"
	"github.com/mani1234567sk/backend-dream/internal/service/ground"
	"github.com/mani1234567sk/backend-dream/internal/service/league"
	"github.com/mani1234567sk/backend-dream/internal/service/match"
	"github.com/mani1234567sk/backend-dream/internal/service/team"
	"github.com/mani1234567sk/backend-dream/internal/service/user"
)

type Services struct {
	UserService    *user.UserService
	TeamService    *team.TeamService
	LeagueService  *league.LeagueService
	MatchService   *match.MatchService
	GroundService  *ground.GroundService
	BookingService *booking.BookingService
	StatsService   *StatsService
}
