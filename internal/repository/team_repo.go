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

type TeamRepository struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

const teamColumns = `id, name, name_key, captain, captain_id, password_hash, logo, email, current_league_id,
	matches_played, wins, losses, draws, created_at, updated_at`

func scanTeam(row interface{ Scan(...any) error }) (*domain.Team, error) {
	var team domain.Team
	var captainID, email, leagueID sql.NullString
	err := row.Scan(&team.ID, &team.Name, &team.NameKey, &team.Captain, &captainID, &team.PasswordHash,
		&team.Logo, &email, &leagueID, &team.MatchesPlayed, &team.Wins, &team.Losses, &team.Draws,
		&team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return nil, err
	}
	team.CaptainID = stringPtr(captainID)
	team.Email = stringPtr(email)
	team.CurrentLeagueID = stringPtr(leagueID)
	team.Players = []domain.TeamPlayer{}
	return &team, nil
}

func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		INSERT INTO teams (id, name, name_key, captain, captain_id, password_hash, logo, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, team.ID, team.Name, team.NameKey, team.Captain, nullString(team.CaptainID), team.PasswordHash,
		team.Logo, nullString(team.Email)).Scan(&team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return HandleWriteError(err, "failed to insert team")
	}

	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	conn := r.db.Conn(ctx)

	team, err := scanTeam(conn.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, teamID))
	if err != nil {
		return nil, HandleNoRowsError(err)
	}

	if err := r.attachPlayers(ctx, []*domain.Team{team}); err != nil {
		return nil, err
	}
	return team, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]domain.Team, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	if err := r.attachPlayers(ctx, teams); err != nil {
		return nil, err
	}

	result := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		result = append(result, *t)
	}
	return result, nil
}

// attachPlayers loads the roster of every team in one query.
func (r *TeamRepository) attachPlayers(ctx context.Context, teams []*domain.Team) error {
	if len(teams) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Team, len(teams))
	ids := make([]string, 0, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	conn := r.db.Conn(ctx)
	rows, err := conn.QueryContext(ctx, `
		SELECT id, name, email, team_id
		FROM users
		WHERE team_id = ANY($1::uuid[])
		ORDER BY name
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query team players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			player domain.TeamPlayer
			teamID string
		)
		if err := rows.Scan(&player.UserID, &player.Name, &player.Email, &teamID); err != nil {
			return fmt.Errorf("failed to scan team player: %w", err)
		}
		if t, ok := byID[teamID]; ok {
			t.Players = append(t.Players, player)
		}
	}

	return rows.Err()
}

// ExistsByNameKey checks for another team using nameKey; excludeID may be empty.
func (r *TeamRepository) ExistsByNameKey(ctx context.Context, nameKey, excludeID string) (bool, error) {
	conn := r.db.Conn(ctx)

	var exists bool
	err := conn.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM teams WHERE name_key = $1 AND ($2::text = '' OR id::text <> $2::text))
	`, nameKey, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check team name: %w", err)
	}
	return exists, nil
}

func (r *TeamRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	conn := r.db.Conn(ctx)

	var exists bool
	err := conn.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM teams WHERE email = $1 AND ($2::text = '' OR id::text <> $2::text))
	`, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check team email: %w", err)
	}
	return exists, nil
}

// Update writes the mutable profile fields and counters. Password is left alone.
func (r *TeamRepository) Update(ctx context.Context, team *domain.Team) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		UPDATE teams
		SET name = $2, name_key = $3, captain = $4, logo = $5, email = $6,
			matches_played = $7, wins = $8, losses = $9, draws = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, team.ID, team.Name, team.NameKey, team.Captain, team.Logo, nullString(team.Email),
		team.MatchesPlayed, team.Wins, team.Losses, team.Draws).Scan(&team.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return HandleWriteError(err, "failed to update team")
	}

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	conn := r.db.Conn(ctx)

	res, err := conn.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, teamID)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
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

func (r *TeamRepository) SetCurrentLeague(ctx context.Context, teamID string, leagueID *string) error {
	conn := r.db.Conn(ctx)

	_, err := conn.ExecContext(ctx, `
		UPDATE teams SET current_league_id = $2, updated_at = NOW() WHERE id = $1
	`, teamID, nullString(leagueID))
	if err != nil {
		return fmt.Errorf("failed to set current league of team %s: %w", teamID, err)
	}
	return nil
}

// ClearCurrentLeague detaches every team whose current league is leagueID.
func (r *TeamRepository) ClearCurrentLeague(ctx context.Context, leagueID string) (int64, error) {
	conn := r.db.Conn(ctx)

	res, err := conn.ExecContext(ctx, `
		UPDATE teams SET current_league_id = NULL, updated_at = NOW() WHERE current_league_id = $1
	`, leagueID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear current league %s: %w", leagueID, err)
	}
	return res.RowsAffected()
}
