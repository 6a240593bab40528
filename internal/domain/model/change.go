package model

import "time"

// ChangeKind names the write that produced a ChangeEvent.
type ChangeKind string

// Change kinds emitted by the write path.
const (
	ChangePlayerCreated     ChangeKind = "player.created"
	ChangeScoutCreated      ChangeKind = "scout.created"
	ChangeAssignmentCreated ChangeKind = "assignment.created"
	ChangeAssignmentUpdated ChangeKind = "assignment.updated"
	ChangeAssignmentDeleted ChangeKind = "assignment.deleted"
	ChangeReportCreated     ChangeKind = "report.created"
	ChangeShortlistCreated  ChangeKind = "shortlist.created"
	ChangeShortlistUpdated  ChangeKind = "shortlist.updated"
)

// ChangeEvent announces that persisted data changed and derived views
// need recomputing.
type ChangeEvent struct {
	ID       string     // unique id of the change
	Kind     ChangeKind // what changed
	EntityID string     // id of the changed row
	Version  uint64     // data version after the write
	TS       time.Time
}
