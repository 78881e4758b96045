// Package testutil holds an in-memory stand-in for the PostgreSQL
// repositories. It mirrors their error contract (repository.ErrNotFound and
// *repository.DuplicateError with the same constraint names) and the foreign
// key side effects declared in the migrations.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/repository"
)

type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) del(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

type rosterEntry struct {
	leagueID string
	teamID   string
	joinedAt time.Time
}

type Store struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	users    *table[domain.User]
	teams    *table[domain.Team]
	leagues  *table[domain.League]
	roster   []rosterEntry
	matches  *table[domain.Match]
	grounds  *table[domain.Ground]
	reviews  []domain.Review
	bookings *table[domain.Booking]
}

func NewStore(clock clockwork.Clock) *Store {
	return &Store{
		clock:    clock,
		users:    newTable[domain.User](),
		teams:    newTable[domain.Team](),
		leagues:  newTable[domain.League](),
		matches:  newTable[domain.Match](),
		grounds:  newTable[domain.Ground](),
		bookings: newTable[domain.Booking](),
	}
}

func (s *Store) Users() *Users       { return &Users{s} }
func (s *Store) Teams() *Teams       { return &Teams{s} }
func (s *Store) Leagues() *Leagues   { return &Leagues{s} }
func (s *Store) Matches() *Matches   { return &Matches{s} }
func (s *Store) Grounds() *Grounds   { return &Grounds{s} }
func (s *Store) Reviews() *Reviews   { return &Reviews{s} }
func (s *Store) Bookings() *Bookings { return &Bookings{s} }
func (s *Store) Stats() *Stats       { return &Stats{s} }

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func duplicate(constraint string) error {
	return &repository.DuplicateError{Constraint: constraint}
}

// Users

type Users struct{ s *Store }

func (r *Users) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users.all() {
		if strings.EqualFold(existing.Email, u.Email) {
			return duplicate(repository.ConstraintUserEmail)
		}
	}
	now := r.s.clock.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	row := *u
	row.TeamID = cloneStr(u.TeamID)
	r.s.users.put(u.ID, row)
	return nil
}

func (r *Users) GetByID(_ context.Context, userID string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users.get(userID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.TeamID = cloneStr(u.TeamID)
	return &u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users.all() {
		if strings.EqualFold(u.Email, email) {
			u.TeamID = cloneStr(u.TeamID)
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) AssignTeam(_ context.Context, userID, teamID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users.get(userID)
	if !ok || u.TeamID != nil {
		return false, nil
	}
	u.TeamID = &teamID
	u.UpdatedAt = r.s.clock.Now()
	r.s.users.put(userID, u)
	return true, nil
}

func (r *Users) UnassignTeam(_ context.Context, userID, teamID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users.get(userID)
	if !ok || !u.InTeam(teamID) {
		return false, nil
	}
	u.TeamID = nil
	u.UpdatedAt = r.s.clock.Now()
	r.s.users.put(userID, u)
	return true, nil
}

func (r *Users) ClearTeam(_ context.Context, teamID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.clearTeamLocked(teamID), nil
}

func (s *Store) clearTeamLocked(teamID string) int64 {
	var n int64
	for _, u := range s.users.all() {
		if u.InTeam(teamID) {
			u.TeamID = nil
			s.users.put(u.ID, u)
			n++
		}
	}
	return n
}

// Teams

type Teams struct{ s *Store }

func (r *Teams) Create(_ context.Context, t *domain.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkTeamUniqueLocked(t); err != nil {
		return err
	}
	now := r.s.clock.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	r.s.teams.put(t.ID, storedTeam(t))
	return nil
}

func storedTeam(t *domain.Team) domain.Team {
	row := *t
	row.Players = nil
	row.Email = cloneStr(t.Email)
	row.CaptainID = cloneStr(t.CaptainID)
	row.CurrentLeagueID = cloneStr(t.CurrentLeagueID)
	return row
}

func (s *Store) checkTeamUniqueLocked(t *domain.Team) error {
	for _, existing := range s.teams.all() {
		if existing.ID == t.ID {
			continue
		}
		if existing.NameKey == t.NameKey {
			return duplicate(repository.ConstraintTeamName)
		}
		if t.Email != nil && existing.Email != nil && *existing.Email == *t.Email {
			return duplicate(repository.ConstraintTeamEmail)
		}
	}
	return nil
}

func (s *Store) loadTeamLocked(t domain.Team) *domain.Team {
	t.Email = cloneStr(t.Email)
	t.CaptainID = cloneStr(t.CaptainID)
	t.CurrentLeagueID = cloneStr(t.CurrentLeagueID)
	t.Players = []domain.TeamPlayer{}
	for _, u := range s.users.all() {
		if u.InTeam(t.ID) {
			t.Players = append(t.Players, domain.TeamPlayer{UserID: u.ID, Name: u.Name, Email: u.Email})
		}
	}
	sort.Slice(t.Players, func(i, j int) bool { return t.Players[i].Name < t.Players[j].Name })
	return &t
}

func (r *Teams) GetByID(_ context.Context, teamID string) (*domain.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.teams.get(teamID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.s.loadTeamLocked(t), nil
}

func (r *Teams) List(_ context.Context) ([]domain.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []domain.Team{}
	for _, t := range r.s.teams.all() {
		out = append(out, *r.s.loadTeamLocked(t))
	}
	return out, nil
}

func (r *Teams) ExistsByNameKey(_ context.Context, nameKey, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.teams.all() {
		if t.NameKey == nameKey && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *Teams) ExistsByEmail(_ context.Context, email, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.teams.all() {
		if t.Email != nil && *t.Email == email && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *Teams) Update(_ context.Context, t *domain.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.teams.get(t.ID)
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.s.checkTeamUniqueLocked(t); err != nil {
		return err
	}
	t.UpdatedAt = r.s.clock.Now()
	row := storedTeam(t)
	row.PasswordHash = existing.PasswordHash
	row.CaptainID = existing.CaptainID
	row.CurrentLeagueID = existing.CurrentLeagueID
	r.s.teams.put(t.ID, row)
	return nil
}

// Delete applies the same foreign key actions as the schema: users lose the
// team reference and roster rows are removed.
func (r *Teams) Delete(_ context.Context, teamID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.teams.del(teamID) {
		return repository.ErrNotFound
	}
	r.s.clearTeamLocked(teamID)
	r.s.removeRosterLocked(func(e rosterEntry) bool { return e.teamID == teamID })
	return nil
}

func (r *Teams) SetCurrentLeague(_ context.Context, teamID string, leagueID *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.teams.get(teamID)
	if !ok {
		return nil
	}
	t.CurrentLeagueID = cloneStr(leagueID)
	r.s.teams.put(teamID, t)
	return nil
}

func (r *Teams) ClearCurrentLeague(_ context.Context, leagueID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.clearCurrentLeagueLocked(leagueID), nil
}

func (s *Store) clearCurrentLeagueLocked(leagueID string) int64 {
	var n int64
	for _, t := range s.teams.all() {
		if t.CurrentLeagueID != nil && *t.CurrentLeagueID == leagueID {
			t.CurrentLeagueID = nil
			s.teams.put(t.ID, t)
			n++
		}
	}
	return n
}

// Leagues

type Leagues struct{ s *Store }

func (r *Leagues) Create(_ context.Context, l *domain.League) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.clock.Now()
	l.CreatedAt, l.UpdatedAt = now, now
	row := *l
	row.Teams = nil
	r.s.leagues.put(l.ID, row)
	return nil
}

func (s *Store) loadLeagueLocked(l domain.League) *domain.League {
	l.Teams = []domain.LeagueTeam{}
	for _, e := range s.roster {
		if e.leagueID != l.ID {
			continue
		}
		t, _ := s.teams.get(e.teamID)
		l.Teams = append(l.Teams, domain.LeagueTeam{TeamID: e.teamID, Name: t.Name, JoinedAt: e.joinedAt})
	}
	return &l
}

func (r *Leagues) GetByID(_ context.Context, leagueID string) (*domain.League, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.leagues.get(leagueID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.s.loadLeagueLocked(l), nil
}

func (r *Leagues) List(_ context.Context) ([]domain.League, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []domain.League{}
	for _, l := range r.s.leagues.all() {
		out = append(out, *r.s.loadLeagueLocked(l))
	}
	return out, nil
}

func (r *Leagues) Update(_ context.Context, l *domain.League) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.leagues.get(l.ID); !ok {
		return repository.ErrNotFound
	}
	l.UpdatedAt = r.s.clock.Now()
	row := *l
	row.Teams = nil
	r.s.leagues.put(l.ID, row)
	return nil
}

func (r *Leagues) Delete(_ context.Context, leagueID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.leagues.del(leagueID) {
		return repository.ErrNotFound
	}
	r.s.removeRosterLocked(func(e rosterEntry) bool { return e.leagueID == leagueID })
	r.s.clearCurrentLeagueLocked(leagueID)
	return nil
}

func (r *Leagues) AddTeam(_ context.Context, leagueID, teamID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.roster {
		if e.leagueID == leagueID && e.teamID == teamID {
			return duplicate(repository.ConstraintLeagueRoster)
		}
	}
	r.s.roster = append(r.s.roster, rosterEntry{leagueID: leagueID, teamID: teamID, joinedAt: r.s.clock.Now()})
	return nil
}

func (r *Leagues) RemoveTeamFromAll(_ context.Context, teamID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.removeRosterLocked(func(e rosterEntry) bool { return e.teamID == teamID }), nil
}

func (s *Store) removeRosterLocked(match func(rosterEntry) bool) int64 {
	var (
		n    int64
		kept []rosterEntry
	)
	for _, e := range s.roster {
		if match(e) {
			n++
			continue
		}
		kept = append(kept, e)
	}
	s.roster = kept
	return n
}

// Matches

type Matches struct{ s *Store }

func storedMatch(m *domain.Match) domain.Match {
	row := *m
	row.JoinedPlayers = append([]domain.MatchPlayer{}, m.JoinedPlayers...)
	return row
}

func loadMatch(m domain.Match) *domain.Match {
	m.JoinedPlayers = append([]domain.MatchPlayer{}, m.JoinedPlayers...)
	return &m
}

func (r *Matches) Create(_ context.Context, m *domain.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.clock.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.s.matches.put(m.ID, storedMatch(m))
	return nil
}

func (r *Matches) GetByID(_ context.Context, matchID string) (*domain.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.matches.get(matchID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return loadMatch(m), nil
}

func (r *Matches) GetByIDForUpdate(ctx context.Context, matchID string) (*domain.Match, error) {
	return r.GetByID(ctx, matchID)
}

func (r *Matches) List(_ context.Context, status domain.MatchStatus) ([]domain.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []domain.Match{}
	for _, m := range r.s.matches.all() {
		if status == "" || m.Status == status {
			out = append(out, *loadMatch(m))
		}
	}
	return out, nil
}

func (r *Matches) Update(_ context.Context, m *domain.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.matches.get(m.ID)
	if !ok {
		return repository.ErrNotFound
	}
	m.UpdatedAt = r.s.clock.Now()
	row := storedMatch(m)
	row.JoinedPlayers = existing.JoinedPlayers
	row.CreatorID = existing.CreatorID
	r.s.matches.put(m.ID, row)
	return nil
}

func (r *Matches) Delete(_ context.Context, matchID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.matches.del(matchID) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *Matches) AddPlayer(_ context.Context, matchID string, p *domain.MatchPlayer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.matches.get(matchID)
	if !ok {
		return repository.ErrNotFound
	}
	if m.HasPlayer(p.UserID) {
		return duplicate(repository.ConstraintMatchPlayer)
	}
	p.JoinedAt = r.s.clock.Now()
	m.JoinedPlayers = append(append([]domain.MatchPlayer{}, m.JoinedPlayers...), *p)
	r.s.matches.put(matchID, m)
	return nil
}

func (r *Matches) RemovePlayer(_ context.Context, matchID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.matches.get(matchID)
	if !ok || !m.HasPlayer(userID) {
		return repository.ErrNotFound
	}
	players := make([]domain.MatchPlayer, 0, len(m.JoinedPlayers))
	for _, p := range m.JoinedPlayers {
		if p.UserID != userID {
			players = append(players, p)
		}
	}
	m.JoinedPlayers = players
	r.s.matches.put(matchID, m)
	return nil
}

// Grounds

type Grounds struct{ s *Store }

func loadGround(g domain.Ground) *domain.Ground {
	g.Features = append([]string{}, g.Features...)
	return &g
}

func (r *Grounds) Create(_ context.Context, g *domain.Ground) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.clock.Now()
	g.CreatedAt, g.UpdatedAt = now, now
	r.s.grounds.put(g.ID, *loadGround(*g))
	return nil
}

func (r *Grounds) GetByID(_ context.Context, groundID string) (*domain.Ground, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.grounds.get(groundID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return loadGround(g), nil
}

func (r *Grounds) List(_ context.Context, availableOnly bool) ([]domain.Ground, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []domain.Ground{}
	for _, g := range r.s.grounds.all() {
		if !availableOnly || g.IsAvailable {
			out = append(out, *loadGround(g))
		}
	}
	return out, nil
}

func (r *Grounds) Update(_ context.Context, g *domain.Ground) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.grounds.get(g.ID)
	if !ok {
		return repository.ErrNotFound
	}
	g.UpdatedAt = r.s.clock.Now()
	row := *loadGround(*g)
	row.AverageRating, row.ReviewCount = existing.AverageRating, existing.ReviewCount
	r.s.grounds.put(g.ID, row)
	return nil
}

func (r *Grounds) UpdateRating(_ context.Context, groundID string, summary domain.RatingSummary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.grounds.get(groundID)
	if !ok {
		return nil
	}
	g.AverageRating, g.ReviewCount = summary.Average, summary.Count
	r.s.grounds.put(groundID, g)
	return nil
}

func (r *Grounds) Delete(_ context.Context, groundID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.grounds.del(groundID) {
		return repository.ErrNotFound
	}
	for _, b := range r.s.bookings.all() {
		if b.GroundID == groundID {
			r.s.bookings.del(b.ID)
		}
	}
	kept := r.s.reviews[:0]
	for _, rv := range r.s.reviews {
		if rv.GroundID != groundID {
			kept = append(kept, rv)
		}
	}
	r.s.reviews = kept
	return nil
}

// Reviews

type Reviews struct{ s *Store }

func (r *Reviews) Create(_ context.Context, review *domain.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rv := range r.s.reviews {
		if rv.UserID == review.UserID && rv.GroundID == review.GroundID {
			return duplicate(repository.ConstraintReviewAuthor)
		}
	}
	review.CreatedAt = r.s.clock.Now()
	r.s.reviews = append(r.s.reviews, *review)
	return nil
}

func (r *Reviews) ListByGround(_ context.Context, groundID string) ([]domain.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []domain.Review{}
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		rv := r.s.reviews[i]
		if rv.GroundID != groundID {
			continue
		}
		if u, ok := r.s.users.get(rv.UserID); ok {
			rv.UserName = u.Name
		}
		out = append(out, rv)
	}
	return out, nil
}

func (r *Reviews) Summary(_ context.Context, groundID string) (domain.RatingSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var (
		total   int
		summary domain.RatingSummary
	)
	for _, rv := range r.s.reviews {
		if rv.GroundID == groundID {
			total += rv.Rating
			summary.Count++
		}
	}
	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}
	return summary, nil
}

// Bookings

type Bookings struct{ s *Store }

func (s *Store) loadBookingLocked(b domain.Booking) *domain.Booking {
	if g, ok := s.grounds.get(b.GroundID); ok {
		b.GroundName, b.GroundLocation = g.Name, g.Location
	}
	return &b
}

func (r *Bookings) Create(_ context.Context, b *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.slotTakenLocked(b.GroundID, b.Date, b.Time) {
		return duplicate(repository.ConstraintBookingSlot)
	}
	now := r.s.clock.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	r.s.bookings.put(b.ID, *b)
	return nil
}

func (r *Bookings) GetByID(_ context.Context, bookingID string) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings.get(bookingID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.s.loadBookingLocked(b), nil
}

func (r *Bookings) SlotTaken(_ context.Context, groundID string, day time.Time, hhmm string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.slotTakenLocked(groundID, day, hhmm), nil
}

func (s *Store) slotTakenLocked(groundID string, day time.Time, hhmm string) bool {
	for _, b := range s.bookings.all() {
		if b.GroundID == groundID && b.Date.Equal(day) && b.Time == hhmm && b.Status != domain.BookingCancelled {
			return true
		}
	}
	return false
}

func (r *Bookings) List(_ context.Context) ([]domain.Booking, error) {
	return r.list(func(domain.Booking) bool { return true }), nil
}

func (r *Bookings) ListByUser(_ context.Context, userID string) ([]domain.Booking, error) {
	return r.list(func(b domain.Booking) bool { return b.UserID == userID }), nil
}

func (r *Bookings) list(keep func(domain.Booking) bool) []domain.Booking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []domain.Booking{}
	for _, b := range r.s.bookings.all() {
		if keep(b) {
			out = append(out, *r.s.loadBookingLocked(b))
		}
	}
	return out
}

func (r *Bookings) UpdateStatus(_ context.Context, bookingID string, status domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings.get(bookingID)
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = r.s.clock.Now()
	r.s.bookings.put(bookingID, b)
	return nil
}

// Stats

type Stats struct{ s *Store }

var _ repository.StatsRepository = (*Stats)(nil)

func (r *Stats) GetTotalStats(_ context.Context) (*domain.StatsResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stats := &domain.StatsResponse{
		TotalTeams:   int64(len(r.s.teams.rows)),
		TotalUsers:   int64(len(r.s.users.rows)),
		TotalLeagues: int64(len(r.s.leagues.rows)),
		TotalGrounds: int64(len(r.s.grounds.rows)),
	}
	for _, l := range r.s.leagues.rows {
		if l.Status == domain.LeagueActive {
			stats.ActiveLeagues++
		}
	}
	for _, m := range r.s.matches.rows {
		if m.Status == domain.MatchUpcoming {
			stats.UpcomingMatches++
		}
	}
	for _, b := range r.s.bookings.rows {
		if b.Status == domain.BookingConfirmed {
			stats.ActiveBookings++
		}
	}
	return stats, nil
}

func (r *Stats) GetLeagueTeamCounts(_ context.Context) ([]domain.LeagueTeams, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.LeagueTeams
	for _, l := range r.s.leagues.all() {
		entry := domain.LeagueTeams{LeagueID: l.ID, LeagueName: l.Name, Status: string(l.Status)}
		for _, e := range r.s.roster {
			if e.leagueID == l.ID {
				entry.TeamCount++
			}
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TeamCount > out[j].TeamCount })
	return out, nil
}

func (r *Stats) GetGroundUsage(_ context.Context) ([]domain.GroundUsage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.GroundUsage
	for _, g := range r.s.grounds.all() {
		usage := domain.GroundUsage{GroundID: g.ID, GroundName: g.Name, AverageRating: g.AverageRating}
		for _, b := range r.s.bookings.all() {
			if b.GroundID == g.ID && b.Status == domain.BookingConfirmed {
				usage.Bookings++
				usage.Revenue += b.TotalAmount
			}
		}
		out = append(out, usage)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Bookings > out[j].Bookings })
	return out, nil
}
