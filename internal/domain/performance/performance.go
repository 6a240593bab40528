// Package performance summarizes how each scout is getting through their
// assignments.
package performance

import (
	"sort"
	"time"

	"github.com/okian/scoutdesk/internal/domain/board"
	"github.com/okian/scoutdesk/internal/domain/model"
)

// ScoutPerformance is one scout's workload summary.
type ScoutPerformance struct {
	ScoutID          string  `json:"scout_id"`
	DisplayName      string  `json:"display_name"`
	Assignments      int     `json:"assignments"`
	Completed        int     `json:"completed"`
	InProgress       int     `json:"in_progress"`
	Pending          int     `json:"pending"`
	ReportsSubmitted int     `json:"reports_submitted"`
	CompletionRate   float64 `json:"completion_rate"` // 0..1
	// AvgCompletionHours is the mean time from assignment to first report,
	// over completed assignments that have a report. Zero when none do.
	AvgCompletionHours float64 `json:"avg_completion_hours"`
	TimedCompletions   int     `json:"timed_completions"`
}

type accumulator struct {
	perf  ScoutPerformance
	total time.Duration
}

// Summarize builds one entry per scout that has at least one assignment or
// report, ordered by display name then id.
func Summarize(snap *board.Snapshot) []ScoutPerformance {
	if snap == nil {
		return []ScoutPerformance{}
	}
	acc := make(map[string]*accumulator)
	get := func(scoutID string) *accumulator {
		a, ok := acc[scoutID]
		if !ok {
			var scout *model.Scout
			if sc, found := snap.Scout(scoutID); found {
				scout = &sc
			}
			a = &accumulator{perf: ScoutPerformance{
				ScoutID:     scoutID,
				DisplayName: board.ScoutDisplayName(scout),
			}}
			acc[scoutID] = a
		}
		return a
	}

	for _, asg := range snap.Assignments() {
		a := get(asg.ScoutID)
		a.perf.Assignments++
		status, report := snap.EffectiveStatus(asg)
		// Counts follow the board columns: only the completed column is
		// completed work. Reviewed rows without a report are still open.
		switch {
		case board.BucketFor(status) == board.BucketCompleted:
			a.perf.Completed++
		case status == board.StatusInProgress, status == board.StatusReviewed:
			a.perf.InProgress++
		default:
			a.perf.Pending++
		}
		if report != nil {
			elapsed := report.CreatedAt.Sub(asg.CreatedAt)
			if elapsed < 0 {
				elapsed = 0
			}
			a.total += elapsed
			a.perf.TimedCompletions++
		}
	}
	for _, r := range snap.Reports() {
		if r.Status == model.ReportDraft {
			continue
		}
		get(r.ScoutID).perf.ReportsSubmitted++
	}

	out := make([]ScoutPerformance, 0, len(acc))
	for _, a := range acc {
		p := a.perf
		if p.Assignments > 0 {
			p.CompletionRate = float64(p.Completed) / float64(p.Assignments)
		}
		if p.TimedCompletions > 0 {
			p.AvgCompletionHours = (a.total / time.Duration(p.TimedCompletions)).Hours()
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayName != out[j].DisplayName {
			return out[i].DisplayName < out[j].DisplayName
		}
		return out[i].ScoutID < out[j].ScoutID
	})
	return out
}
