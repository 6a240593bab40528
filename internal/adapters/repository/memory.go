package repository

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/okian/scoutdesk/internal/domain/model"
)

// MemoryStore is an in-process Store. Values are copied in and out so
// callers never share slices with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	closed      bool
	players     map[string]model.Player
	scouts      map[string]model.Scout
	assignments map[string]model.Assignment
	pairs       map[[2]string]string // (player, scout) -> assignment id
	reports     map[string]model.Report
	shortlists  map[string]model.Shortlist
	entries     map[string]map[string]model.ShortlistEntry // shortlist -> player -> entry
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players:     make(map[string]model.Player),
		scouts:      make(map[string]model.Scout),
		assignments: make(map[string]model.Assignment),
		pairs:       make(map[[2]string]string),
		reports:     make(map[string]model.Report),
		shortlists:  make(map[string]model.Shortlist),
		entries:     make(map[string]map[string]model.ShortlistEntry),
	}
}

func (s *MemoryStore) rlock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrClosed
	}
	return nil
}

func (s *MemoryStore) lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	return nil
}

func clonePlayer(p model.Player) model.Player {
	p.Positions = slices.Clone(p.Positions)
	if p.Age != nil {
		v := *p.Age
		p.Age = &v
	}
	if p.Rating != nil {
		v := *p.Rating
		p.Rating = &v
	}
	if p.Potential != nil {
		v := *p.Potential
		p.Potential = &v
	}
	return p
}

func cloneAssignment(a model.Assignment) model.Assignment {
	if a.Deadline != nil {
		d := *a.Deadline
		a.Deadline = &d
	}
	return a
}

func cloneReport(r model.Report) model.Report {
	if r.PerformanceRating != nil {
		v := *r.PerformanceRating
		r.PerformanceRating = &v
	}
	return r
}

// byCreated orders rows oldest first, ties by id.
func byCreated[T any](created func(T) time.Time, id func(T) string) func(a, b T) int {
	return func(a, b T) int {
		if c := created(a).Compare(created(b)); c != 0 {
			return c
		}
		return cmp.Compare(id(a), id(b))
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// Players

func (s *MemoryStore) CreatePlayer(ctx context.Context, p model.Player) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()
	if _, ok := s.players[p.ID]; ok {
		return ErrConflict
	}
	s.players[p.ID] = clonePlayer(p)
	return nil
}

func (s *MemoryStore) GetPlayer(ctx context.Context, id string) (model.Player, error) {
	if err := s.rlock(ctx); err != nil {
		return model.Player{}, err
	}
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return model.Player{}, ErrNotFound
	}
	return clonePlayer(p), nil
}

func (s *MemoryStore) ListPlayers(ctx context.Context, q PlayerQuery) ([]model.Player, error) {
	if err := s.rlock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		if needle != "" && !containsFold(p.Name, needle) && !containsFold(p.Club, needle) {
			continue
		}
		out = append(out, clonePlayer(p))
	}
	slices.SortFunc(out, byCreated(
		func(p model.Player) time.Time { return p.CreatedAt },
		func(p model.Player) string { return p.ID }))
	return out, nil
}

// Scouts

func (s *MemoryStore) CreateScout(ctx context.Context, sc model.Scout) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()
	if _, ok := s.scouts[sc.ID]; ok {
		return ErrConflict
	}
	s.scouts[sc.ID] = sc
	return nil
}

func (s *MemoryStore) GetScout(ctx context.Context, id string) (model.Scout, error) {
	if err := s.rlock(ctx); err != nil {
		return model.Scout{}, err
	}
	defer s.mu.RUnlock()
	sc, ok := s.scouts[id]
	if !ok {
		return model.Scout{}, ErrNotFound
	}
	return sc, nil
}

func (s *MemoryStore) ListScouts(ctx context.Context) ([]model.Scout, error) {
	if err := s.rlock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()
	out := make([]model.Scout, 0, len(s.scouts))
	for _, sc := range s.scouts {
		out = append(out, sc)
	}
	slices.SortFunc(out, byCreated(
		func(sc model.Scout) time.Time { return sc.CreatedAt },
		func(sc model.Scout) string { return sc.ID }))
	return out, nil
}

// Assignments

func (s *MemoryStore) CreateAssignment(ctx context.Context, a model.Assignment) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()
	key := [2]string{a.PlayerID, a.ScoutID}
	if _, ok := s.pairs[key]; ok {
		return ErrConflict
	}
	if _, ok := s.assignments[a.ID]; ok {
		return ErrConflict
	}
	s.assignments[a.ID] = cloneAssignment(a)
	s.pairs[key] = a.ID
	return nil
}

func (s *MemoryStore) GetAssignment(ctx context.Context, id string) (model.Assignment, error) {
	if err := s.rlock(ctx); err != nil {
		return model.Assignment{}, err
	}
	defer s.mu.RUnlock()
	a, ok := s.assignments[id]
	if !ok {
		return model.Assignment{}, ErrNotFound
	}
	return cloneAssignment(a), nil
}

func (s *MemoryStore) ListAssignments(ctx context.Context, q AssignmentQuery) ([]model.Assignment, error) {
	if err := s.rlock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()
	out := make([]model.Assignment, 0, len(s.assignments))
	for _, a := range s.assignments {
		if q.ScoutID != "" && a.ScoutID != q.ScoutID {
			continue
		}
		if q.PlayerID != "" && a.PlayerID != q.PlayerID {
			continue
		}
		out = append(out, cloneAssignment(a))
	}
	slices.SortFunc(out, byCreated(
		func(a model.Assignment) time.Time { return a.CreatedAt },
		func(a model.Assignment) string { return a.ID }))
	return out, nil
}

func (s *MemoryStore) UpdateAssignment(ctx context.Context, id string, u AssignmentUpdate) (model.Assignment, error) {
	if err := s.lock(ctx); err != nil {
		return model.Assignment{}, err
	}
	defer s.mu.Unlock()
	a, ok := s.assignments[id]
	if !ok {
		return model.Assignment{}, ErrNotFound
	}
	a = applyUpdate(a, u)
	s.assignments[id] = a
	return cloneAssignment(a), nil
}

func applyUpdate(a model.Assignment, u AssignmentUpdate) model.Assignment {
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.Priority != nil {
		a.Priority = *u.Priority
	}
	switch {
	case u.ClearDeadline:
		a.Deadline = nil
	case u.Deadline != nil:
		d := *u.Deadline
		a.Deadline = &d
	}
	if u.Notes != nil {
		a.Notes = *u.Notes
	}
	if !u.UpdatedAt.IsZero() {
		a.UpdatedAt = u.UpdatedAt
	}
	return a
}

func (s *MemoryStore) DeleteAssignment(ctx context.Context, id string) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()
	a, ok := s.assignments[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.assignments, id)
	delete(s.pairs, [2]string{a.PlayerID, a.ScoutID})
	return nil
}

// Reports

func (s *MemoryStore) CreateReport(ctx context.Context, r model.Report) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()
	if _, ok := s.reports[r.ID]; ok {
		return ErrConflict
	}
	s.reports[r.ID] = cloneReport(r)
	return nil
}

func (s *MemoryStore) ListReports(ctx context.Context, q ReportQuery) ([]model.Report, error) {
	if err := s.rlock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()
	out := make([]model.Report, 0, len(s.reports))
	for _, r := range s.reports {
		if q.ScoutID != "" && r.ScoutID != q.ScoutID {
			continue
		}
		if q.PlayerID != "" && r.PlayerID != q.PlayerID {
			continue
		}
		out = append(out, cloneReport(r))
	}
	slices.SortFunc(out, byCreated(
		func(r model.Report) time.Time { return r.CreatedAt },
		func(r model.Report) string { return r.ID }))
	return out, nil
}

// Shortlists

func (s *MemoryStore) CreateShortlist(ctx context.Context, sl model.Shortlist) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()
	return s.createShortlistLocked(sl)
}

func (s *MemoryStore) createShortlistLocked(sl model.Shortlist) error {
	if _, ok := s.shortlists[sl.ID]; ok {
		return ErrConflict
	}
	if sl.IsScoutingAssignmentList {
		for _, existing := range s.shortlists {
			if existing.IsScoutingAssignmentList {
				return ErrConflict
			}
		}
	}
	s.shortlists[sl.ID] = sl
	s.entries[sl.ID] = make(map[string]model.ShortlistEntry)
	return nil
}

func (s *MemoryStore) GetShortlist(ctx context.Context, id string) (model.Shortlist, error) {
	if err := s.rlock(ctx); err != nil {
		return model.Shortlist{}, err
	}
	defer s.mu.RUnlock()
	sl, ok := s.shortlists[id]
	if !ok {
		return model.Shortlist{}, ErrNotFound
	}
	return sl, nil
}

func (s *MemoryStore) ListShortlists(ctx context.Context) ([]model.Shortlist, error) {
	if err := s.rlock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()
	out := make([]model.Shortlist, 0, len(s.shortlists))
	for _, sl := range s.shortlists {
		out = append(out, sl)
	}
	slices.SortFunc(out, byCreated(
		func(sl model.Shortlist) time.Time { return sl.CreatedAt },
		func(sl model.Shortlist) string { return sl.ID }))
	return out, nil
}

func (s *MemoryStore) EnsureScoutingList(ctx context.Context, candidate model.Shortlist) (model.Shortlist, error) {
	if err := s.lock(ctx); err != nil {
		return model.Shortlist{}, err
	}
	defer s.mu.Unlock()
	for _, sl := range s.shortlists {
		if sl.IsScoutingAssignmentList {
			return sl, nil
		}
	}
	candidate.IsScoutingAssignmentList = true
	if err := s.createShortlistLocked(candidate); err != nil {
		return model.Shortlist{}, err
	}
	return candidate, nil
}

func (s *MemoryStore) AddToShortlist(ctx context.Context, e model.ShortlistEntry) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()
	members, ok := s.entries[e.ShortlistID]
	if !ok {
		return ErrNotFound
	}
	if _, dup := members[e.PlayerID]; dup {
		return ErrConflict
	}
	members[e.PlayerID] = e
	return nil
}

func (s *MemoryStore) RemoveFromShortlist(ctx context.Context, shortlistID, playerID string) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()
	members, ok := s.entries[shortlistID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := members[playerID]; !ok {
		return ErrNotFound
	}
	delete(members, playerID)
	return nil
}

func (s *MemoryStore) ListShortlistEntries(ctx context.Context, shortlistID string) ([]model.ShortlistEntry, error) {
	if err := s.rlock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()
	members, ok := s.entries[shortlistID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]model.ShortlistEntry, 0, len(members))
	for _, e := range members {
		out = append(out, e)
	}
	slices.SortFunc(out, byCreated(
		func(e model.ShortlistEntry) time.Time { return e.AddedAt },
		func(e model.ShortlistEntry) string { return e.PlayerID }))
	return out, nil
}

// Close marks the store closed. Later calls return ErrClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
