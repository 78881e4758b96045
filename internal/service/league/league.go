package league

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/repository"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

type LeagueRepository interface {
	Create(ctx context.Context, league *domain.League) error
	GetByID(ctx context.Context, leagueID string) (*domain.League, error)
	List(ctx context.Context) ([]domain.League, error)
	Update(ctx context.Context, league *domain.League) error
	Delete(ctx context.Context, leagueID string) error
	AddTeam(ctx context.Context, leagueID, teamID string) error
}

type TeamRepository interface {
	GetByID(ctx context.Context, teamID string) (*domain.Team, error)
	SetCurrentLeague(ctx context.Context, teamID string, leagueID *string) error
	ClearCurrentLeague(ctx context.Context, leagueID string) (int64, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*domain.User, error)
}

type LeagueService struct {
	leagueRepo LeagueRepository
	teamRepo   TeamRepository
	userRepo   UserRepository
	txManager  database.TransactionManagerInterface
	policy     domain.JoinPolicy
	clock      clockwork.Clock
	loc        *time.Location
	lg         zerolog.Logger
}

func NewLeagueService(leagueRepo LeagueRepository,
	teamRepo TeamRepository,
	userRepo UserRepository,
	txManager database.TransactionManagerInterface,
	policy domain.JoinPolicy,
	clock clockwork.Clock,
	loc *time.Location,
	lg zerolog.Logger) *LeagueService {
	if loc == nil {
		loc = time.UTC
	}
	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		txManager:  txManager,
		policy:     policy,
		clock:      clock,
		loc:        loc,
		lg:         lg.With().Str("service", "league").Logger(),
	}
}

func (s *LeagueService) CreateLeague(ctx context.Context, req domain.CreateLeagueRequest) (*domain.League, error) {
	name := domain.NormalizeName(req.Name)
	if name == "" {
		return nil, domain.Invalid("League name is required")
	}

	start, ok := domain.ParseDate(req.StartDate)
	if !ok {
		return nil, domain.Invalid("Start date must be a valid date")
	}
	end, ok := domain.ParseDate(req.EndDate)
	if !ok {
		return nil, domain.Invalid("End date must be a valid date")
	}

	league := &domain.League{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		StartDate:   start,
		EndDate:     end,
		Status:      domain.DeriveLeagueStatus(start, end, s.today()),
		Teams:       []domain.LeagueTeam{},
	}
	if err := league.ValidateDates(); err != nil {
		return nil, err
	}

	if err := s.leagueRepo.Create(ctx, league); err != nil {
		return nil, fmt.Errorf("failed to create league: %w", err)
	}

	s.lg.Info().
		Str("league_id", league.ID).
		Str("name", league.Name).
		Str("status", string(league.Status)).
		Msg("league created")
	return league, nil
}

// UpdateLeague merges the provided fields and re-checks the date order on the
// merged result. Without an explicit status, a league that is not completed
// has its status derived again from its dates.
func (s *LeagueService) UpdateLeague(ctx context.Context, leagueID string, req domain.UpdateLeagueRequest) (*domain.League, error) {
	var league *domain.League

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		league, err = s.getLeague(txCtx, leagueID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := domain.NormalizeName(*req.Name)
			if name == "" {
				return domain.Invalid("League name is required")
			}
			league.Name = name
		}
		if req.Description != nil {
			league.Description = strings.TrimSpace(*req.Description)
		}
		if req.StartDate != nil {
			start, ok := domain.ParseDate(*req.StartDate)
			if !ok {
				return domain.Invalid("Start date must be a valid date")
			}
			league.StartDate = start
		}
		if req.EndDate != nil {
			end, ok := domain.ParseDate(*req.EndDate)
			if !ok {
				return domain.Invalid("End date must be a valid date")
			}
			league.EndDate = end
		}
		if err := league.ValidateDates(); err != nil {
			return err
		}

		switch {
		case req.Status != nil:
			league.Status = *req.Status
			if err := league.ValidateStatus(); err != nil {
				return err
			}
		case league.Status != domain.LeagueCompleted:
			league.Status = domain.DeriveLeagueStatus(league.StartDate, league.EndDate, s.today())
		}

		if err := s.leagueRepo.Update(txCtx, league); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrLeagueNotFound
			}
			return fmt.Errorf("failed to update league: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().Str("league_id", league.ID).Str("status", string(league.Status)).Msg("league updated")
	return league, nil
}

// JoinLeague enrols the caller's team into the league and records it as the
// team's current league.
func (s *LeagueService) JoinLeague(ctx context.Context, leagueID, userID string) (*domain.League, error) {
	var (
		league *domain.League
		teamID string
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		league, err = s.getLeague(txCtx, leagueID)
		if err != nil {
			return err
		}

		team, err := s.callerTeam(txCtx, userID)
		if err != nil {
			return err
		}
		teamID = team.ID

		if league.StatusOn(s.today()) == domain.LeagueCompleted {
			return domain.ErrLeagueCompleted
		}
		if league.HasTeam(team.ID) {
			return domain.ErrAlreadyInLeague
		}
		if err := s.checkCurrentLeague(txCtx, team, leagueID); err != nil {
			return err
		}

		if err := s.leagueRepo.AddTeam(txCtx, leagueID, team.ID); err != nil {
			if repository.IsDuplicate(err, repository.ConstraintLeagueRoster) {
				return domain.ErrAlreadyInLeague
			}
			return fmt.Errorf("failed to add team to league: %w", err)
		}
		if err := s.teamRepo.SetCurrentLeague(txCtx, team.ID, &leagueID); err != nil {
			return fmt.Errorf("failed to set current league: %w", err)
		}

		league, err = s.getLeague(txCtx, leagueID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().Str("league_id", leagueID).Str("team_id", teamID).Str("user_id", userID).Msg("team joined league")
	return league, nil
}

func (s *LeagueService) DeleteLeague(ctx context.Context, leagueID string) error {
	var detached int64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getLeague(txCtx, leagueID); err != nil {
			return err
		}

		var err error
		detached, err = s.teamRepo.ClearCurrentLeague(txCtx, leagueID)
		if err != nil {
			return fmt.Errorf("failed to detach teams: %w", err)
		}

		if err := s.leagueRepo.Delete(txCtx, leagueID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrLeagueNotFound
			}
			return fmt.Errorf("failed to delete league: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.lg.Info().Str("league_id", leagueID).Int64("teams_detached", detached).Msg("league deleted")
	return nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (*domain.League, error) {
	return s.getLeague(ctx, leagueID)
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]domain.League, error) {
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	if leagues == nil {
		leagues = []domain.League{}
	}
	return leagues, nil
}

func (s *LeagueService) callerTeam(ctx context.Context, userID string) (*domain.Team, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.TeamID == nil {
		return nil, domain.ErrNoTeam
	}

	team, err := s.teamRepo.GetByID(ctx, *user.TeamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNoTeam
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	if s.policy == domain.JoinCaptainOnly && !team.IsCaptain(userID) {
		return nil, domain.ErrNotCaptain
	}
	return team, nil
}

// checkCurrentLeague rejects teams still playing in another league. A current
// league that has finished or no longer exists does not block the join.
func (s *LeagueService) checkCurrentLeague(ctx context.Context, team *domain.Team, leagueID string) error {
	if team.CurrentLeagueID == nil || *team.CurrentLeagueID == leagueID {
		return nil
	}

	current, err := s.leagueRepo.GetByID(ctx, *team.CurrentLeagueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get current league: %w", err)
	}
	if current.StatusOn(s.today()) != domain.LeagueCompleted {
		return domain.ErrInAnotherLeague
	}
	return nil
}

func (s *LeagueService) getLeague(ctx context.Context, leagueID string) (*domain.League, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	return league, nil
}

func (s *LeagueService) today() time.Time {
	return domain.DateOf(s.clock.Now().In(s.loc))
}
