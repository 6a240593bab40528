package board

import (
	"time"

	"github.com/okian/scoutdesk/internal/domain/model"
)

// Input holds the raw collections fetched from the persistence layer.
type Input struct {
	Players      []model.Player
	Scouts       []model.Scout
	Assignments  []model.Assignment
	Reports      []model.Report
	ScoutingList []model.ShortlistEntry // entries of the scouting-assignment list
}

// pairKey identifies a (player, scout) pair.
type pairKey struct {
	playerID string
	scoutID  string
}

// Snapshot is the normalized, indexed form of an Input. It is built once
// per data version and is read-only afterwards, so any number of
// goroutines may resolve against it concurrently.
type Snapshot struct {
	// Version is the data version the snapshot was built from.
	Version uint64
	// BuiltAt is when the snapshot was built.
	BuiltAt time.Time

	players         map[string]model.Player
	searchKeys      map[string][]string // lower-cased stored name and club, no placeholders
	scouts          map[string]model.Scout
	scoutOrder      []string
	assignments     []model.Assignment
	reports         []model.Report
	reportByPair    map[pairKey]model.Report
	assignedPlayers map[string]struct{}
	scoutingList    []model.ShortlistEntry
}

// NewSnapshot normalizes in and builds the lookup indexes. The input
// slices are not modified.
func NewSnapshot(in Input) *Snapshot {
	s := &Snapshot{
		BuiltAt:         time.Now(),
		players:         make(map[string]model.Player, len(in.Players)),
		searchKeys:      make(map[string][]string, len(in.Players)),
		scouts:          make(map[string]model.Scout, len(in.Scouts)),
		scoutOrder:      make([]string, 0, len(in.Scouts)),
		assignments:     make([]model.Assignment, 0, len(in.Assignments)),
		reports:         make([]model.Report, 0, len(in.Reports)),
		reportByPair:    make(map[pairKey]model.Report, len(in.Reports)),
		assignedPlayers: make(map[string]struct{}, len(in.Assignments)),
		scoutingList:    make([]model.ShortlistEntry, 0, len(in.ScoutingList)),
	}

	for _, p := range in.Players {
		s.players[p.ID] = normalizePlayer(p)
		s.searchKeys[p.ID] = searchKey(p)
	}
	for _, sc := range in.Scouts {
		if _, dup := s.scouts[sc.ID]; !dup {
			s.scoutOrder = append(s.scoutOrder, sc.ID)
		}
		s.scouts[sc.ID] = normalizeScout(sc)
	}
	for _, a := range in.Assignments {
		a = normalizeAssignment(a)
		s.assignments = append(s.assignments, a)
		s.assignedPlayers[a.PlayerID] = struct{}{}
	}
	for _, r := range in.Reports {
		s.reports = append(s.reports, r)
		key := pairKey{playerID: r.PlayerID, scoutID: r.ScoutID}
		// Keep the earliest report per pair; it marks when the work finished.
		if prev, ok := s.reportByPair[key]; !ok || r.CreatedAt.Before(prev.CreatedAt) {
			s.reportByPair[key] = r
		}
	}
	seen := make(map[string]struct{}, len(in.ScoutingList))
	for _, e := range in.ScoutingList {
		if _, dup := seen[e.PlayerID]; dup {
			continue
		}
		seen[e.PlayerID] = struct{}{}
		s.scoutingList = append(s.scoutingList, e)
	}
	return s
}

// Player returns the normalized player with id.
func (s *Snapshot) Player(id string) (model.Player, bool) {
	p, ok := s.players[id]
	return p, ok
}

// Scout returns the normalized scout with id.
func (s *Snapshot) Scout(id string) (model.Scout, bool) {
	sc, ok := s.scouts[id]
	return sc, ok
}

// Scouts returns the normalized scouts in input order.
func (s *Snapshot) Scouts() []model.Scout {
	out := make([]model.Scout, 0, len(s.scoutOrder))
	for _, id := range s.scoutOrder {
		out = append(out, s.scouts[id])
	}
	return out
}

// Assignments returns the normalized assignments in input order.
func (s *Snapshot) Assignments() []model.Assignment {
	out := make([]model.Assignment, len(s.assignments))
	copy(out, s.assignments)
	return out
}

// Reports returns the reports in input order.
func (s *Snapshot) Reports() []model.Report {
	out := make([]model.Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// Sizes returns how many rows of each kind the snapshot holds.
func (s *Snapshot) Sizes() map[string]int {
	return map[string]int{
		"players":       len(s.players),
		"scouts":        len(s.scouts),
		"assignments":   len(s.assignments),
		"reports":       len(s.reports),
		"scouting_list": len(s.scoutingList),
	}
}

// ReportFor returns the earliest report filed by scoutID on playerID.
func (s *Snapshot) ReportFor(playerID, scoutID string) (model.Report, bool) {
	r, ok := s.reportByPair[pairKey{playerID: playerID, scoutID: scoutID}]
	return r, ok
}

// IsAssigned reports whether any assignment references playerID.
func (s *Snapshot) IsAssigned(playerID string) bool {
	_, ok := s.assignedPlayers[playerID]
	return ok
}

// EffectiveStatus derives the display status of a normalized assignment.
// A report for the same (player, scout) pair overrides the stored status.
func (s *Snapshot) EffectiveStatus(a model.Assignment) (Status, *model.Report) {
	if r, ok := s.ReportFor(a.PlayerID, a.ScoutID); ok {
		return StatusCompleted, &r
	}
	return Status(a.Status), nil
}
