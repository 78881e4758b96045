package match

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

const defaultMatchType = "friendly"

type MatchRepository interface {
	Create(ctx context.Context, m *domain.Match) error
	GetByID(ctx context.Context, matchID string) (*domain.Match, error)
	GetByIDForUpdate(ctx context.Context, matchID string) (*domain.Match, error)
	List(ctx context.Context, status domain.MatchStatus) ([]domain.Match, error)
	Update(ctx context.Context, m *domain.Match) error
	Delete(ctx context.Context, matchID string) error
	AddPlayer(ctx context.Context, matchID string, p *domain.MatchPlayer) error
	RemovePlayer(ctx context.Context, matchID, userID string) error
}

type MatchService struct {
	matchRepo MatchRepository
	txManager database.TransactionManagerInterface
	clock     clockwork.Clock
	loc       *time.Location
	lg        zerolog.Logger
}

func NewMatchService(matchRepo MatchRepository,
	txManager database.TransactionManagerInterface,
	clock clockwork.Clock,
	loc *time.Location,
	lg zerolog.Logger) *MatchService {
	if loc == nil {
		loc = time.UTC
	}
	return &MatchService{
		matchRepo: matchRepo,
		txManager: txManager,
		clock:     clock,
		loc:       loc,
		lg:        lg.With().Str("service", "match").Logger(),
	}
}

func (s *MatchService) CreateMatch(ctx context.Context, caller domain.Principal, req domain.CreateMatchRequest) (*domain.Match, error) {
	m := &domain.Match{
		ID:            uuid.NewString(),
		Name:          domain.NormalizeName(req.Name),
		Location:      strings.TrimSpace(req.Location),
		MatchType:     strings.TrimSpace(req.MatchType),
		MaxPlayers:    req.MaxPlayers,
		CreatorID:     caller.UserID,
		JoinedPlayers: []domain.MatchPlayer{},
		Status:        domain.MatchUpcoming,
	}

	if m.Name == "" {
		return nil, domain.Invalid("Match name is required")
	}
	if m.Location == "" {
		return nil, domain.Invalid("Location is required")
	}
	if err := s.applySchedule(m, req.Date, req.Time); err != nil {
		return nil, err
	}
	if m.MaxPlayers <= 0 {
		m.MaxPlayers = domain.DefaultMaxPlayers
	}
	if m.MatchType == "" {
		m.MatchType = defaultMatchType
	}

	if err := s.matchRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	s.lg.Info().
		Str("match_id", m.ID).
		Str("creator_id", caller.UserID).
		Time("date", m.Date).
		Str("time", m.Time).
		Int("max_players", m.MaxPlayers).
		Msg("match created")
	return m, nil
}

// JoinMatch adds the caller to the roster. The match row stays locked for the
// whole check-then-insert so two joins cannot both take the last place.
func (s *MatchService) JoinMatch(ctx context.Context, matchID, userID string, req domain.JoinMatchRequest) (*domain.Match, error) {
	player := &domain.MatchPlayer{
		UserID:      userID,
		PlayerName:  domain.NormalizeName(req.PlayerName),
		TeamName:    domain.NormalizeName(req.TeamName),
		ContactInfo: strings.TrimSpace(req.ContactInfo),
	}
	if player.PlayerName == "" {
		return nil, domain.Invalid("Player name is required")
	}
	if player.ContactInfo == "" {
		return nil, domain.Invalid("Contact info is required")
	}

	var m *domain.Match
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		m, err = s.getMatch(txCtx, matchID, true)
		if err != nil {
			return err
		}

		if m.Status != domain.MatchUpcoming {
			return domain.ErrMatchNotUpcoming
		}
		startsAt, err := m.StartsAt(s.loc)
		if err != nil {
			return fmt.Errorf("failed to resolve match start: %w", err)
		}
		if !startsAt.After(s.clock.Now()) {
			return domain.ErrMatchStarted
		}
		if m.HasPlayer(userID) {
			return domain.ErrAlreadyJoined
		}
		if m.IsFull() {
			return domain.ErrMatchFull
		}

		if err := s.matchRepo.AddPlayer(txCtx, matchID, player); err != nil {
			if repository.IsDuplicate(err, repository.ConstraintMatchPlayer) {
				return domain.ErrAlreadyJoined
			}
			return fmt.Errorf("failed to join match: %w", err)
		}
		m.JoinedPlayers = append(m.JoinedPlayers, *player)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().
		Str("match_id", matchID).
		Str("user_id", userID).
		Int("joined", len(m.JoinedPlayers)).
		Int("max_players", m.MaxPlayers).
		Msg("player joined match")
	return m, nil
}

func (s *MatchService) LeaveMatch(ctx context.Context, matchID, userID string) (*domain.Match, error) {
	var m *domain.Match

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		m, err = s.getMatch(txCtx, matchID, true)
		if err != nil {
			return err
		}
		if !m.HasPlayer(userID) {
			return domain.ErrNotJoined
		}

		if err := s.matchRepo.RemovePlayer(txCtx, matchID, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrNotJoined
			}
			return fmt.Errorf("failed to leave match: %w", err)
		}

		players := m.JoinedPlayers[:0]
		for _, p := range m.JoinedPlayers {
			if p.UserID != userID {
				players = append(players, p)
			}
		}
		m.JoinedPlayers = players
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().Str("match_id", matchID).Str("user_id", userID).Msg("player left match")
	return m, nil
}

func (s *MatchService) UpdateMatch(ctx context.Context, caller domain.Principal, matchID string, req domain.UpdateMatchRequest) (*domain.Match, error) {
	var m *domain.Match

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		m, err = s.getMatch(txCtx, matchID, true)
		if err != nil {
			return err
		}
		if err := authorize(caller, m); err != nil {
			return err
		}

		if req.Name != nil {
			name := domain.NormalizeName(*req.Name)
			if name == "" {
				return domain.Invalid("Match name is required")
			}
			m.Name = name
		}
		if req.Location != nil {
			location := strings.TrimSpace(*req.Location)
			if location == "" {
				return domain.Invalid("Location is required")
			}
			m.Location = location
		}
		if req.MatchType != nil {
			m.MatchType = strings.TrimSpace(*req.MatchType)
			if m.MatchType == "" {
				m.MatchType = defaultMatchType
			}
		}
		if req.Date != nil || req.Time != nil {
			date, hhmm := m.Date.Format(domain.DateLayout), m.Time
			if req.Date != nil {
				date = *req.Date
			}
			if req.Time != nil {
				hhmm = *req.Time
			}
			if err := s.applySchedule(m, date, hhmm); err != nil {
				return err
			}
		}
		if req.MaxPlayers != nil {
			if *req.MaxPlayers <= 0 {
				return domain.Invalid("Max players must be positive")
			}
			if *req.MaxPlayers < len(m.JoinedPlayers) {
				return domain.Invalid("Max players cannot be lower than the %d players already joined", len(m.JoinedPlayers))
			}
			m.MaxPlayers = *req.MaxPlayers
		}
		if req.Status != nil {
			if !req.Status.IsValid() {
				return domain.Invalid("invalid match status: %s", *req.Status)
			}
			m.Status = *req.Status
		}

		if err := s.matchRepo.Update(txCtx, m); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrMatchNotFound
			}
			return fmt.Errorf("failed to update match: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info().Str("match_id", matchID).Str("status", string(m.Status)).Msg("match updated")
	return m, nil
}

func (s *MatchService) DeleteMatch(ctx context.Context, caller domain.Principal, matchID string) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		m, err := s.getMatch(txCtx, matchID, false)
		if err != nil {
			return err
		}
		if err := authorize(caller, m); err != nil {
			return err
		}

		if err := s.matchRepo.Delete(txCtx, matchID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrMatchNotFound
			}
			return fmt.Errorf("failed to delete match: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.lg.Info().Str("match_id", matchID).Str("user_id", caller.UserID).Msg("match deleted")
	return nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (*domain.Match, error) {
	return s.getMatch(ctx, matchID, false)
}

func (s *MatchService) ListMatches(ctx context.Context, status domain.MatchStatus) ([]domain.Match, error) {
	if status != "" && !status.IsValid() {
		return nil, domain.Invalid("invalid match status: %s", status)
	}

	matches, err := s.matchRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	return matches, nil
}

// applySchedule validates and sets the match day and kick-off time. The day
// may not lie before today in the configured timezone.
func (s *MatchService) applySchedule(m *domain.Match, rawDate, rawTime string) error {
	day, ok := domain.ParseDate(rawDate)
	if !ok {
		return domain.Invalid("Date must be a valid date")
	}
	hhmm := strings.TrimSpace(rawTime)
	if !domain.ValidTimeOfDay(hhmm) {
		return domain.Invalid("Time must be in HH:MM format")
	}

	today := domain.DateOf(s.clock.Now().In(s.loc))
	if day.Before(today) {
		return domain.ErrMatchInPast
	}

	m.Date = day
	m.Time = hhmm
	return nil
}

func (s *MatchService) getMatch(ctx context.Context, matchID string, lock bool) (*domain.Match, error) {
	get := s.matchRepo.GetByID
	if lock {
		get = s.matchRepo.GetByIDForUpdate
	}

	m, err := get(ctx, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

func authorize(caller domain.Principal, m *domain.Match) error {
	if caller.IsAdmin() || m.CreatorID == caller.UserID {
		return nil
	}
	return domain.ErrNotAllowed
}
