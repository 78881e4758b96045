package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

type LeagueRepository struct {
	db *database.DB
}

func NewLeagueRepository(db *database.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

const leagueColumns = `id, name, description, start_date, end_date, status, created_at, updated_at`

func scanLeague(row interface{ Scan(...any) error }) (*domain.League, error) {
	var league domain.League
	err := row.Scan(&league.ID, &league.Name, &league.Description, &league.StartDate, &league.EndDate,
		&league.Status, &league.CreatedAt, &league.UpdatedAt)
	if err != nil {
		return nil, err
	}
	league.Teams = []domain.LeagueTeam{}
	return &league, nil
}

func (r *LeagueRepository) Create(ctx context.Context, league *domain.League) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		INSERT INTO leagues (id, name, description, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, league.ID, league.Name, league.Description, league.StartDate, league.EndDate, league.Status).
		Scan(&league.CreatedAt, &league.UpdatedAt)
	if err != nil {
		return HandleWriteError(err, "failed to insert league")
	}

	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (*domain.League, error) {
	conn := r.db.Conn(ctx)

	league, err := scanLeague(conn.QueryRowContext(ctx, `SELECT `+leagueColumns+` FROM leagues WHERE id = $1`, leagueID))
	if err != nil {
		return nil, HandleNoRowsError(err)
	}

	if err := r.attachTeams(ctx, []*domain.League{league}); err != nil {
		return nil, err
	}
	return league, nil
}

func (r *LeagueRepository) List(ctx context.Context) ([]domain.League, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, `SELECT `+leagueColumns+` FROM leagues ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leagues: %w", err)
	}
	defer rows.Close()

	var leagues []*domain.League
	for rows.Next() {
		league, err := scanLeague(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan league: %w", err)
		}
		leagues = append(leagues, league)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leagues: %w", err)
	}

	if err := r.attachTeams(ctx, leagues); err != nil {
		return nil, err
	}

	result := make([]domain.League, 0, len(leagues))
	for _, l := range leagues {
		result = append(result, *l)
	}
	return result, nil
}

func (r *LeagueRepository) attachTeams(ctx context.Context, leagues []*domain.League) error {
	if len(leagues) == 0 {
		return nil
	}

	byID := make(map[string]*domain.League, len(leagues))
	ids := make([]string, 0, len(leagues))
	for _, l := range leagues {
		byID[l.ID] = l
		ids = append(ids, l.ID)
	}

	conn := r.db.Conn(ctx)
	rows, err := conn.QueryContext(ctx, `
		SELECT lt.league_id, t.id, t.name, lt.joined_at
		FROM league_teams lt
		JOIN teams t ON t.id = lt.team_id
		WHERE lt.league_id = ANY($1::uuid[])
		ORDER BY lt.joined_at
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query league teams: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			leagueID string
			team     domain.LeagueTeam
		)
		if err := rows.Scan(&leagueID, &team.TeamID, &team.Name, &team.JoinedAt); err != nil {
			return fmt.Errorf("failed to scan league team: %w", err)
		}
		if l, ok := byID[leagueID]; ok {
			l.Teams = append(l.Teams, team)
		}
	}

	return rows.Err()
}

func (r *LeagueRepository) Update(ctx context.Context, league *domain.League) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		UPDATE leagues
		SET name = $2, description = $3, start_date = $4, end_date = $5, status = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, league.ID, league.Name, league.Description, league.StartDate, league.EndDate, league.Status).
		Scan(&league.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return HandleWriteError(err, "failed to update league")
	}

	return nil
}

func (r *LeagueRepository) Delete(ctx context.Context, leagueID string) error {
	conn := r.db.Conn(ctx)

	res, err := conn.ExecContext(ctx, `DELETE FROM leagues WHERE id = $1`, leagueID)
	if err != nil {
		return fmt.Errorf("failed to delete league: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LeagueRepository) AddTeam(ctx context.Context, leagueID, teamID string) error {
	conn := r.db.Conn(ctx)

	_, err := conn.ExecContext(ctx, `
		INSERT INTO league_teams (league_id, team_id) VALUES ($1, $2)
	`, leagueID, teamID)
	if err != nil {
		return HandleWriteError(err, "failed to add team to league")
	}
	return nil
}

// RemoveTeamFromAll drops teamID from every league roster.
func (r *LeagueRepository) RemoveTeamFromAll(ctx context.Context, teamID string) (int64, error) {
	conn := r.db.Conn(ctx)

	res, err := conn.ExecContext(ctx, `DELETE FROM league_teams WHERE team_id = $1`, teamID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove team %s from leagues: %w", teamID, err)
	}
	return res.RowsAffected()
}
