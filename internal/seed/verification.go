package seed

import (
	"errors"
	"fmt"
	"slices"

	"github.com/okian/scoutdesk/internal/domain/board"
	"github.com/okian/scoutdesk/internal/domain/types"
)

// Verify checks that the board grew by exactly what plan wrote and that
// the records it serves are internally consistent.
func Verify(plan Plan, before, after types.BoardView) error {
	var errs []error

	shortlisted, assigned, completed := plan.Expected()
	want := map[board.Bucket]int{
		board.BucketShortlisted: shortlisted,
		board.BucketAssigned:    assigned,
		board.BucketCompleted:   completed,
	}
	for bucket, n := range want {
		if got := after.Counts[bucket] - before.Counts[bucket]; got != n {
			errs = append(errs, fmt.Errorf("%s grew by %d, want %d", bucket, got, n))
		}
	}

	onList := make(map[string]bool, len(after.Shortlisted))
	for _, r := range after.Shortlisted {
		onList[r.PlayerID] = true
		if r.AssignedTo != board.AssignedToNobody {
			errs = append(errs, fmt.Errorf("shortlisted player %s shows scout %q", r.PlayerID, r.AssignedTo))
		}
	}
	for _, r := range slices.Concat(after.Assigned, after.Completed) {
		if onList[r.PlayerID] {
			errs = append(errs, fmt.Errorf("player %s is both shortlisted and assigned", r.PlayerID))
		}
	}
	for _, r := range after.Completed {
		if r.ReportID != "" && r.Label != board.LabelReportSubmitted {
			errs = append(errs, fmt.Errorf("completed assignment %s has label %q", r.AssignmentID, r.Label))
		}
	}
	if after.Dropped != 0 {
		errs = append(errs, fmt.Errorf("board dropped %d records", after.Dropped))
	}
	return errors.Join(errs...)
}

// VerifyScout checks one scout's filtered board against the plan.
func VerifyScout(plan Plan, scout int, view types.BoardView) error {
	var assigned, completed int
	for _, pl := range plan.Players {
		if pl.Scout != scout {
			continue
		}
		if pl.Report {
			completed++
		} else {
			assigned++
		}
	}
	var errs []error
	if len(view.Shortlisted) != 0 {
		errs = append(errs, fmt.Errorf("scout %d board has %d shortlisted records", scout, len(view.Shortlisted)))
	}
	if len(view.Assigned) != assigned {
		errs = append(errs, fmt.Errorf("scout %d has %d assigned, want %d", scout, len(view.Assigned), assigned))
	}
	if len(view.Completed) != completed {
		errs = append(errs, fmt.Errorf("scout %d has %d completed, want %d", scout, len(view.Completed), completed))
	}
	return errors.Join(errs...)
}
