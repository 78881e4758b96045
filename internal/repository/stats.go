package repository

import (
	"context"
	"fmt"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

type StatsRepository interface {
	GetTotalStats(ctx context.Context) (*domain.StatsResponse, error)
	GetLeagueTeamCounts(ctx context.Context) ([]domain.LeagueTeams, error)
	GetGroundUsage(ctx context.Context) ([]domain.GroundUsage, error)
}

type statsRepository struct {
	db *database.DB
}

func NewStatsRepository(db *database.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) GetTotalStats(ctx context.Context) (*domain.StatsResponse, error) {
	conn := r.db.Conn(ctx)

	var stats domain.StatsResponse
	err := conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM teams),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM leagues),
			(SELECT COUNT(*) FROM leagues WHERE status = 'active'),
			(SELECT COUNT(*) FROM matches WHERE status = 'upcoming'),
			(SELECT COUNT(*) FROM grounds),
			(SELECT COUNT(*) FROM bookings WHERE status = 'confirmed')
	`).Scan(
		&stats.TotalTeams,
		&stats.TotalUsers,
		&stats.TotalLeagues,
		&stats.ActiveLeagues,
		&stats.UpcomingMatches,
		&stats.TotalGrounds,
		&stats.ActiveBookings,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query totals: %w", err)
	}

	return &stats, nil
}

func (r *statsRepository) GetLeagueTeamCounts(ctx context.Context) ([]domain.LeagueTeams, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, `
		SELECT l.id, l.name, l.status, COUNT(lt.team_id)
		FROM leagues l
		LEFT JOIN league_teams lt ON lt.league_id = l.id
		GROUP BY l.id, l.name, l.status
		ORDER BY COUNT(lt.team_id) DESC, l.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query league team counts: %w", err)
	}
	defer rows.Close()

	var result []domain.LeagueTeams
	for rows.Next() {
		var s domain.LeagueTeams
		if err := rows.Scan(&s.LeagueID, &s.LeagueName, &s.Status, &s.TeamCount); err != nil {
			return nil, fmt.Errorf("failed to scan league team count: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *statsRepository) GetGroundUsage(ctx context.Context) ([]domain.GroundUsage, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, `
		SELECT g.id, g.name, COUNT(b.id), COALESCE(SUM(b.total_amount), 0)::double precision, g.average_rating
		FROM grounds g
		LEFT JOIN bookings b ON b.ground_id = g.id AND b.status = 'confirmed'
		GROUP BY g.id, g.name, g.average_rating
		ORDER BY COUNT(b.id) DESC, g.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ground usage: %w", err)
	}
	defer rows.Close()

	var result []domain.GroundUsage
	for rows.Next() {
		var u domain.GroundUsage
		if err := rows.Scan(&u.GroundID, &u.GroundName, &u.Bookings, &u.Revenue, &u.AverageRating); err != nil {
			return nil, fmt.Errorf("failed to scan ground usage: %w", err)
		}
		result = append(result, u)
	}
	return result, rows.Err()
}
