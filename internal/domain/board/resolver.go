package board

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/okian/scoutdesk/internal/domain/model"
)

// Filter restricts which records Resolve emits.
type Filter struct {
	// ScoutID keeps only assignments of this scout. Synthetic shortlist
	// records have no scout and are excluded whenever ScoutID is set.
	ScoutID string
	// Search is a case-insensitive substring matched against player name
	// and club.
	Search string
}

// Record is one card on the board.
type Record struct {
	// AssignmentID is empty for synthetic shortlist records.
	AssignmentID     string                 `json:"assignment_id,omitempty"`
	PlayerID         string                 `json:"player_id"`
	PlayerName       string                 `json:"player_name"`
	Club             string                 `json:"club"`
	Positions        []string               `json:"positions"`
	Age              *int                   `json:"age,omitempty"`
	ScoutID          string                 `json:"scout_id,omitempty"`
	ScoutDisplayName string                 `json:"scout_display_name,omitempty"`
	AssignedTo       string                 `json:"assigned_to"`
	AssignedByID     string                 `json:"assigned_by_id,omitempty"`
	Priority         model.Priority         `json:"priority,omitempty"`
	Deadline         *time.Time             `json:"deadline,omitempty"`
	Notes            string                 `json:"notes,omitempty"`
	StoredStatus     model.AssignmentStatus `json:"stored_status,omitempty"`
	Status           Status                 `json:"status"`
	Label            string                 `json:"label"`
	Variant          Variant                `json:"variant"`
	ReportID         string                 `json:"report_id,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// id is the record's ordering tie-breaker.
func (r *Record) id() string {
	if r.AssignmentID != "" {
		return r.AssignmentID
	}
	return "shortlist:" + r.PlayerID
}

// Board groups records into kanban columns.
type Board struct {
	Shortlisted []Record `json:"shortlisted"`
	Assigned    []Record `json:"assigned"`
	Completed   []Record `json:"completed"`
	// Dropped counts records skipped because their player is unknown.
	Dropped int `json:"dropped"`
	// UnresolvedScouts counts emitted records whose scout is unknown.
	UnresolvedScouts int `json:"unresolved_scouts"`
}

// Counts returns the number of records per bucket.
func (b Board) Counts() map[Bucket]int {
	return map[Bucket]int{
		BucketShortlisted: len(b.Shortlisted),
		BucketAssigned:    len(b.Assigned),
		BucketCompleted:   len(b.Completed),
	}
}

// Resolve derives the effective status of every assignment in snap and
// buckets the results, together with scouting-list players that have no
// assignment yet. It is pure: equal snapshots and filters give equal
// boards, and snap is never modified.
func Resolve(snap *Snapshot, f Filter) Board {
	b := Board{
		Shortlisted: make([]Record, 0),
		Assigned:    make([]Record, 0),
		Completed:   make([]Record, 0),
	}
	if snap == nil {
		return b
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	scoutID := strings.TrimSpace(f.ScoutID)

	for _, a := range snap.assignments {
		if scoutID != "" && a.ScoutID != scoutID {
			continue
		}
		p, ok := snap.players[a.PlayerID]
		if !ok {
			b.Dropped++
			continue
		}
		if !matches(snap, p.ID, term) {
			continue
		}
		if _, ok := snap.scouts[a.ScoutID]; !ok {
			b.UnresolvedScouts++
		}
		b.add(assignmentRecord(snap, a, p))
	}

	if scoutID == "" {
		for _, e := range snap.scoutingList {
			if snap.IsAssigned(e.PlayerID) {
				continue
			}
			p, ok := snap.players[e.PlayerID]
			if !ok {
				b.Dropped++
				continue
			}
			if !matches(snap, p.ID, term) {
				continue
			}
			b.add(shortlistRecord(e, p))
		}
	}

	sortRecords(b.Shortlisted)
	sortRecords(b.Assigned)
	sortRecords(b.Completed)
	return b
}

func (b *Board) add(r Record) {
	switch BucketFor(r.Status) {
	case BucketShortlisted:
		b.Shortlisted = append(b.Shortlisted, r)
	case BucketCompleted:
		b.Completed = append(b.Completed, r)
	default:
		b.Assigned = append(b.Assigned, r)
	}
}

func assignmentRecord(snap *Snapshot, a model.Assignment, p model.Player) Record {
	var scout *model.Scout
	if sc, ok := snap.scouts[a.ScoutID]; ok {
		scout = &sc
	}
	name := ScoutDisplayName(scout)

	status, report := snap.EffectiveStatus(a)
	label := Label(status)
	var reportID string
	if report != nil {
		label = LabelReportSubmitted
		reportID = report.ID
	}

	return Record{
		AssignmentID:     a.ID,
		PlayerID:         p.ID,
		PlayerName:       p.Name,
		Club:             p.Club,
		Positions:        slices.Clone(p.Positions),
		Age:              p.Age,
		ScoutID:          a.ScoutID,
		ScoutDisplayName: name,
		AssignedTo:       name,
		AssignedByID:     a.AssignedByID,
		Priority:         a.Priority,
		Deadline:         a.Deadline,
		Notes:            a.Notes,
		StoredStatus:     a.Status,
		Status:           status,
		Label:            label,
		Variant:          VariantFor(status),
		ReportID:         reportID,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func shortlistRecord(e model.ShortlistEntry, p model.Player) Record {
	return Record{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Club:       p.Club,
		Positions:  slices.Clone(p.Positions),
		Age:        p.Age,
		AssignedTo: AssignedToNobody,
		Status:     StatusMarkedForScouting,
		Label:      Label(StatusMarkedForScouting),
		Variant:    VariantFor(StatusMarkedForScouting),
		CreatedAt:  e.AddedAt,
		UpdatedAt:  e.AddedAt,
	}
}

// matches reports whether the lower-cased term occurs in the player's
// stored name or club. Display placeholders for missing values never
// match. An empty term matches everything.
func matches(snap *Snapshot, playerID, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range snap.searchKeys[playerID] {
		if strings.Contains(field, term) {
			return true
		}
	}
	return false
}

// searchKey keeps the non-empty stored name and club of p, lower-cased.
func searchKey(p model.Player) []string {
	fields := make([]string, 0, 2)
	for _, v := range []string{p.Name, p.Club} {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			fields = append(fields, v)
		}
	}
	return fields
}

// sortRecords orders newest first, ties broken by id.
func sortRecords(rs []Record) {
	sort.SliceStable(rs, func(i, j int) bool {
		if !rs[i].CreatedAt.Equal(rs[j].CreatedAt) {
			return rs[i].CreatedAt.After(rs[j].CreatedAt)
		}
		return rs[i].id() < rs[j].id()
	})
}
