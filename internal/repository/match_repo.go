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

type MatchRepository struct {
	db *database.DB
}

func NewMatchRepository(db *database.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchColumns = `id, name, match_date, match_time, location, match_type, max_players, creator_id, status,
	created_at, updated_at`

func scanMatch(row interface{ Scan(...any) error }) (*domain.Match, error) {
	var m domain.Match
	err := row.Scan(&m.ID, &m.Name, &m.Date, &m.Time, &m.Location, &m.MatchType, &m.MaxPlayers, &m.CreatorID,
		&m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.JoinedPlayers = []domain.MatchPlayer{}
	return &m, nil
}

func (r *MatchRepository) Create(ctx context.Context, m *domain.Match) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		INSERT INTO matches (id, name, match_date, match_time, location, match_type, max_players, creator_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, m.ID, m.Name, m.Date, m.Time, m.Location, m.MatchType, m.MaxPlayers, m.CreatorID, m.Status).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return HandleWriteError(err, "failed to insert match")
	}
	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (*domain.Match, error) {
	return r.get(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, matchID)
}

// GetByIDForUpdate locks the match row until the surrounding transaction ends.
func (r *MatchRepository) GetByIDForUpdate(ctx context.Context, matchID string) (*domain.Match, error) {
	return r.get(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1 FOR UPDATE`, matchID)
}

func (r *MatchRepository) get(ctx context.Context, query, matchID string) (*domain.Match, error) {
	conn := r.db.Conn(ctx)

	m, err := scanMatch(conn.QueryRowContext(ctx, query, matchID))
	if err != nil {
		return nil, HandleNoRowsError(err)
	}

	if err := r.attachPlayers(ctx, []*domain.Match{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns matches ordered by kick-off; an empty status means all.
func (r *MatchRepository) List(ctx context.Context, status domain.MatchStatus) ([]domain.Match, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE ($1::text = '' OR status = $1::text)
		ORDER BY match_date, match_time
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	if err := r.attachPlayers(ctx, matches); err != nil {
		return nil, err
	}

	result := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		result = append(result, *m)
	}
	return result, nil
}

func (r *MatchRepository) attachPlayers(ctx context.Context, matches []*domain.Match) error {
	if len(matches) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Match, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}

	conn := r.db.Conn(ctx)
	rows, err := conn.QueryContext(ctx, `
		SELECT match_id, user_id, player_name, team_name, contact_info, joined_at
		FROM match_players
		WHERE match_id = ANY($1::uuid[])
		ORDER BY joined_at
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query match players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			matchID string
			p       domain.MatchPlayer
		)
		if err := rows.Scan(&matchID, &p.UserID, &p.PlayerName, &p.TeamName, &p.ContactInfo, &p.JoinedAt); err != nil {
			return fmt.Errorf("failed to scan match player: %w", err)
		}
		if m, ok := byID[matchID]; ok {
			m.JoinedPlayers = append(m.JoinedPlayers, p)
		}
	}

	return rows.Err()
}

func (r *MatchRepository) Update(ctx context.Context, m *domain.Match) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		UPDATE matches
		SET name = $2, match_date = $3, match_time = $4, location = $5, match_type = $6,
			max_players = $7, status = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, m.ID, m.Name, m.Date, m.Time, m.Location, m.MatchType, m.MaxPlayers, m.Status).Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	conn := r.db.Conn(ctx)

	res, err := conn.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, matchID)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
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

func (r *MatchRepository) AddPlayer(ctx context.Context, matchID string, p *domain.MatchPlayer) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		INSERT INTO match_players (match_id, user_id, player_name, team_name, contact_info)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING joined_at
	`, matchID, p.UserID, p.PlayerName, p.TeamName, p.ContactInfo).Scan(&p.JoinedAt)
	if err != nil {
		return HandleWriteError(err, "failed to add match player")
	}
	return nil
}

func (r *MatchRepository) RemovePlayer(ctx context.Context, matchID, userID string) error {
	conn := r.db.Conn(ctx)

	res, err := conn.ExecContext(ctx, `DELETE FROM match_players WHERE match_id = $1 AND user_id = $2`, matchID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove match player: %w", err)
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
