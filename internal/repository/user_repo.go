package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, team_id, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var (
		user   domain.User
		teamID sql.NullString
	)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &teamID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	user.TeamID = stringPtr(teamID)
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRowContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, user.ID, user.Name, user.Email, user.PasswordHash, user.Role).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return HandleWriteError(err, "failed to insert user")
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	conn := r.db.Conn(ctx)

	user, err := scanUser(conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		return nil, HandleNoRowsError(err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	conn := r.db.Conn(ctx)

	user, err := scanUser(conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		return nil, HandleNoRowsError(err)
	}

	return user, nil
}

// AssignTeam puts a team-less user on teamID. It reports false when the
// user already has a team.
func (r *UserRepository) AssignTeam(ctx context.Context, userID, teamID string) (bool, error) {
	conn := r.db.Conn(ctx)

	res, err := conn.ExecContext(ctx, `
		UPDATE users
		SET team_id = $1, updated_at = NOW()
		WHERE id = $2 AND team_id IS NULL
	`, teamID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to assign user %s to team: %w", userID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

// UnassignTeam clears the team of userID if it currently is teamID.
func (r *UserRepository) UnassignTeam(ctx context.Context, userID, teamID string) (bool, error) {
	conn := r.db.Conn(ctx)

	res, err := conn.ExecContext(ctx, `
		UPDATE users
		SET team_id = NULL, updated_at = NOW()
		WHERE id = $1 AND team_id = $2
	`, userID, teamID)
	if err != nil {
		return false, fmt.Errorf("failed to remove user %s from team: %w", userID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

// ClearTeam detaches every user from teamID and returns how many were touched.
func (r *UserRepository) ClearTeam(ctx context.Context, teamID string) (int64, error) {
	conn := r.db.Conn(ctx)

	res, err := conn.ExecContext(ctx, `
		UPDATE users
		SET team_id = NULL, updated_at = NOW()
		WHERE team_id = $1
	`, teamID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear team %s from users: %w", teamID, err)
	}

	return res.RowsAffected()
}
