package team

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mani1234567sk/backend-dream/internal/auth"
	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/repository"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

const (
	minNameLen     = 2
	maxNameLen     = 50
	minPasswordLen = 6
)

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, teamID string) (*domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
	ExistsByNameKey(ctx context.Context, nameKey, excludeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Update(ctx context.Context, team *domain.Team) error
	Delete(ctx context.Context, teamID string) error
}

type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	AssignTeam(ctx context.Context, userID, teamID string) (bool, error)
	UnassignTeam(ctx context.Context, userID, teamID string) (bool, error)
	ClearTeam(ctx context.Context, teamID string) (int64, error)
}

type LeagueRepository interface {
	RemoveTeamFromAll(ctx context.Context, teamID string) (int64, error)
}

type TeamService struct {
	teamRepo   TeamRepository
	userRepo   UserRepository
	leagueRepo LeagueRepository
	txManager  database.TransactionManagerInterface
	lg         zerolog.Logger
}

func NewTeamService(teamRepo TeamRepository,
	userRepo UserRepository,
	leagueRepo LeagueRepository,
	txManager database.TransactionManagerInterface,
	lg zerolog.Logger) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		leagueRepo: leagueRepo,
		txManager:  txManager,
		lg:         lg.With().Str("service", "team").Logger(),
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, caller domain.Principal, req domain.CreateTeamRequest) (*domain.Team, error) {
	team := &domain.Team{
		ID:        uuid.NewString(),
		CaptainID: &caller.UserID,
		Players:   []domain.TeamPlayer{},
	}

	if err := applyName(team, req.Name); err != nil {
		return nil, err
	}
	if err := applyCaptain(team, req.Captain); err != nil {
		return nil, err
	}
	if err := applyLogo(team, req.Logo); err != nil {
		return nil, err
	}
	if err := applyEmail(team, req.Email); err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLen {
		return nil, domain.Invalid("Password must be at least %d characters", minPasswordLen)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash team password: %w", err)
	}
	team.PasswordHash = hash

	// The creator captains the team and becomes its first player.
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.checkUnique(txCtx, team, ""); err != nil {
			return err
		}

		creator, err := s.getUser(txCtx, caller.UserID)
		if err != nil {
			return err
		}
		if creator.TeamID != nil {
			return domain.ErrPlayerInAnotherTeam
		}

		if err := s.teamRepo.Create(txCtx, team); err != nil {
			return translateDuplicate(err)
		}

		assigned, err := s.userRepo.AssignTeam(txCtx, caller.UserID, team.ID)
		if err != nil {
			return fmt.Errorf("failed to assign captain: %w", err)
		}
		if !assigned {
			return domain.ErrPlayerInAnotherTeam
		}

		team, err = s.getTeam(txCtx, team.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().Str("team_id", team.ID).Str("name", team.Name).Str("captain_id", caller.UserID).Msg("team created")
	return team, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, caller domain.Principal, teamID string, req domain.UpdateTeamRequest) (*domain.Team, error) {
	var team *domain.Team

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		team, err = s.getTeam(txCtx, teamID)
		if err != nil {
			return err
		}
		if err := authorize(caller, team); err != nil {
			return err
		}

		if req.Name != nil {
			if err := applyName(team, *req.Name); err != nil {
				return err
			}
		}
		if req.Captain != nil {
			if err := applyCaptain(team, *req.Captain); err != nil {
				return err
			}
		}
		if req.Logo != nil {
			if err := applyLogo(team, *req.Logo); err != nil {
				return err
			}
		}
		if req.Email != nil {
			if err := applyEmail(team, *req.Email); err != nil {
				return err
			}
		}

		if err := s.checkUnique(txCtx, team, team.ID); err != nil {
			return err
		}
		if err := s.teamRepo.Update(txCtx, team); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrTeamNotFound
			}
			return translateDuplicate(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().Str("team_id", team.ID).Str("name", team.Name).Msg("team updated")
	return team, nil
}

// DeleteTeam detaches every player and league roster entry, then removes the
// team. All of it happens in one transaction.
func (s *TeamService) DeleteTeam(ctx context.Context, caller domain.Principal, teamID string) error {
	var players, rosters int64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		team, err := s.getTeam(txCtx, teamID)
		if err != nil {
			return err
		}
		if err := authorize(caller, team); err != nil {
			return err
		}

		players, err = s.userRepo.ClearTeam(txCtx, teamID)
		if err != nil {
			return fmt.Errorf("failed to detach players: %w", err)
		}
		rosters, err = s.leagueRepo.RemoveTeamFromAll(txCtx, teamID)
		if err != nil {
			return fmt.Errorf("failed to detach leagues: %w", err)
		}

		if err := s.teamRepo.Delete(txCtx, teamID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrTeamNotFound
			}
			return fmt.Errorf("failed to delete team: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.lg.Info().
		Str("team_id", teamID).
		Int64("players_detached", players).
		Int64("league_rosters_updated", rosters).
		Msg("team deleted")
	return nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	return s.getTeam(ctx, teamID)
}

func (s *TeamService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if teams == nil {
		teams = []domain.Team{}
	}
	return teams, nil
}

func (s *TeamService) AddPlayer(ctx context.Context, caller domain.Principal, teamID, playerID string) (*domain.Team, error) {
	var team *domain.Team

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		t, err := s.getTeam(txCtx, teamID)
		if err != nil {
			return err
		}
		if err := authorize(caller, t); err != nil {
			return err
		}

		player, err := s.getUser(txCtx, playerID)
		if err != nil {
			return err
		}
		if player.InTeam(teamID) {
			return domain.ErrPlayerAlreadyInTeam
		}
		if player.TeamID != nil {
			return domain.ErrPlayerInAnotherTeam
		}

		assigned, err := s.userRepo.AssignTeam(txCtx, playerID, teamID)
		if err != nil {
			return fmt.Errorf("failed to assign player: %w", err)
		}
		if !assigned {
			return domain.ErrPlayerInAnotherTeam
		}

		team, err = s.getTeam(txCtx, teamID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().Str("team_id", teamID).Str("player_id", playerID).Msg("player added to team")
	return team, nil
}

func (s *TeamService) RemovePlayer(ctx context.Context, caller domain.Principal, teamID, playerID string) (*domain.Team, error) {
	var team *domain.Team

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		t, err := s.getTeam(txCtx, teamID)
		if err != nil {
			return err
		}
		if err := authorize(caller, t); err != nil {
			return err
		}

		player, err := s.getUser(txCtx, playerID)
		if err != nil {
			return err
		}
		if !player.InTeam(teamID) {
			return domain.ErrPlayerNotInTeam
		}

		removed, err := s.userRepo.UnassignTeam(txCtx, playerID, teamID)
		if err != nil {
			return fmt.Errorf("failed to remove player: %w", err)
		}
		if !removed {
			return domain.ErrPlayerNotInTeam
		}

		team, err = s.getTeam(txCtx, teamID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().Str("team_id", teamID).Str("player_id", playerID).Msg("player removed from team")
	return team, nil
}

// RecordResult bumps matchesPlayed and the counter matching result.
func (s *TeamService) RecordResult(ctx context.Context, teamID string, result domain.MatchResult) (*domain.Team, error) {
	if !result.IsValid() {
		return nil, domain.Invalid("Result must be one of win, loss, draw")
	}

	var team *domain.Team
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		team, err = s.getTeam(txCtx, teamID)
		if err != nil {
			return err
		}

		team.MatchesPlayed++
		switch result {
		case domain.ResultWin:
			team.Wins++
		case domain.ResultLoss:
			team.Losses++
		case domain.ResultDraw:
			team.Draws++
		}

		if err := s.teamRepo.Update(txCtx, team); err != nil {
			return fmt.Errorf("failed to record result: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().Str("team_id", teamID).Str("result", string(result)).Msg("team result recorded")
	return team, nil
}

func (s *TeamService) checkUnique(ctx context.Context, team *domain.Team, excludeID string) error {
	exists, err := s.teamRepo.ExistsByNameKey(ctx, team.NameKey, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check team name: %w", err)
	}
	if exists {
		return domain.ErrTeamExists
	}

	if team.Email != nil {
		exists, err := s.teamRepo.ExistsByEmail(ctx, *team.Email, excludeID)
		if err != nil {
			return fmt.Errorf("failed to check team email: %w", err)
		}
		if exists {
			return domain.ErrTeamEmailExists
		}
	}
	return nil
}

func (s *TeamService) getTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

func (s *TeamService) getUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func authorize(caller domain.Principal, team *domain.Team) error {
	if caller.IsAdmin() || team.IsCaptain(caller.UserID) {
		return nil
	}
	return domain.ErrNotAllowed
}

func translateDuplicate(err error) error {
	switch {
	case repository.IsDuplicate(err, repository.ConstraintTeamName):
		return domain.ErrTeamExists
	case repository.IsDuplicate(err, repository.ConstraintTeamEmail):
		return domain.ErrTeamEmailExists
	default:
		return err
	}
}

func applyName(team *domain.Team, raw string) error {
	name := domain.NormalizeName(raw)
	if n := domain.RuneLen(name); n < minNameLen || n > maxNameLen {
		return domain.Invalid("Team name must be between %d and %d characters", minNameLen, maxNameLen)
	}
	team.Name = name
	team.NameKey = domain.TeamNameKey(name)
	return nil
}

func applyCaptain(team *domain.Team, raw string) error {
	captain := domain.NormalizeName(raw)
	if n := domain.RuneLen(captain); n < minNameLen || n > maxNameLen {
		return domain.Invalid("Captain name must be between %d and %d characters", minNameLen, maxNameLen)
	}
	team.Captain = captain
	return nil
}

func applyLogo(team *domain.Team, raw string) error {
	logo := strings.TrimSpace(raw)
	if logo != "" && !domain.ValidURL(logo) {
		return domain.Invalid("Logo must be a valid URL")
	}
	team.Logo = logo
	return nil
}

// applyEmail sets the optional contact email; an empty value clears it.
func applyEmail(team *domain.Team, raw string) error {
	email := domain.NormalizeEmail(raw)
	if email == "" {
		team.Email = nil
		return nil
	}
	if !domain.ValidEmail(email) {
		return domain.Invalid("Email must be a valid email address")
	}
	team.Email = &email
	return nil
}
