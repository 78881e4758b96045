package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/repository"
)

type StatsService struct {
	statsRepo repository.StatsRepository
	logger    zerolog.Logger
}

func NewStatsService(statsRepo repository.StatsRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		logger:    logger.With().Str("service", "stats").Logger(),
	}
}

// GetStats returns the platform totals. With includeDetails the per-league
// and per-ground breakdowns are loaded as well; a failing breakdown is logged
// and left empty rather than failing the whole response.
func (s *StatsService) GetStats(ctx context.Context, includeDetails bool) (*domain.StatsResponse, error) {
	stats, err := s.statsRepo.GetTotalStats(ctx)
	if err != nil {
		return nil, err
	}

	if includeDetails {
		var (
			standings []domain.LeagueTeams
			usage     []domain.GroundUsage
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			res, err := s.statsRepo.GetLeagueTeamCounts(gctx)
			if err != nil {
				s.logger.Warn().Err(err).Msg("failed to get league team counts")
				return nil
			}
			standings = res
			return nil
		})
		g.Go(func() error {
			res, err := s.statsRepo.GetGroundUsage(gctx)
			if err != nil {
				s.logger.Warn().Err(err).Msg("failed to get ground usage")
				return nil
			}
			usage = res
			return nil
		})
		_ = g.Wait()

		stats.LeagueStandings = standings
		stats.GroundBookings = usage
	}

	s.logger.Info().
		Int64("teams", stats.TotalTeams).
		Int64("users", stats.TotalUsers).
		Int64("leagues", stats.TotalLeagues).
		Int64("upcoming_matches", stats.UpcomingMatches).
		Int64("active_bookings", stats.ActiveBookings).
		Msg("stats retrieved")

	return stats, nil
}
