// Package repository persists the scouting desk's players, scouts,
// assignments, reports and shortlists.
package repository

import (
	"context"
	"time"

	"github.com/okian/scoutdesk/internal/domain/model"
)

// PlayerQuery filters ListPlayers. Search matches name or club,
// case-insensitively.
type PlayerQuery struct {
	Search string
}

// AssignmentQuery filters ListAssignments. Empty fields match everything.
type AssignmentQuery struct {
	ScoutID  string
	PlayerID string
}

// ReportQuery filters ListReports. Empty fields match everything.
type ReportQuery struct {
	ScoutID  string
	PlayerID string
}

// AssignmentUpdate carries the mutable assignment fields. Nil fields are
// left unchanged. ClearDeadline removes the deadline.
type AssignmentUpdate struct {
	Status        *model.AssignmentStatus
	Priority      *model.Priority
	Deadline      *time.Time
	ClearDeadline bool
	Notes         *string
	UpdatedAt     time.Time
}

// PlayerStore stores players.
type PlayerStore interface {
	CreatePlayer(ctx context.Context, p model.Player) error
	// GetPlayer returns ErrNotFound for unknown ids.
	GetPlayer(ctx context.Context, id string) (model.Player, error)
	ListPlayers(ctx context.Context, q PlayerQuery) ([]model.Player, error)
}

// ScoutStore stores scout profiles.
type ScoutStore interface {
	CreateScout(ctx context.Context, s model.Scout) error
	GetScout(ctx context.Context, id string) (model.Scout, error)
	ListScouts(ctx context.Context) ([]model.Scout, error)
}

// AssignmentStore stores assignments.
type AssignmentStore interface {
	// CreateAssignment returns ErrConflict if the (player, scout) pair is
	// already assigned.
	CreateAssignment(ctx context.Context, a model.Assignment) error
	GetAssignment(ctx context.Context, id string) (model.Assignment, error)
	ListAssignments(ctx context.Context, q AssignmentQuery) ([]model.Assignment, error)
	UpdateAssignment(ctx context.Context, id string, u AssignmentUpdate) (model.Assignment, error)
	DeleteAssignment(ctx context.Context, id string) error
}

// ReportStore stores scouting reports.
type ReportStore interface {
	CreateReport(ctx context.Context, r model.Report) error
	ListReports(ctx context.Context, q ReportQuery) ([]model.Report, error)
}

// ShortlistStore stores shortlists and their entries.
type ShortlistStore interface {
	CreateShortlist(ctx context.Context, s model.Shortlist) error
	GetShortlist(ctx context.Context, id string) (model.Shortlist, error)
	ListShortlists(ctx context.Context) ([]model.Shortlist, error)
	// EnsureScoutingList returns the list flagged IsScoutingAssignmentList,
	// creating it from candidate if none exists yet.
	EnsureScoutingList(ctx context.Context, candidate model.Shortlist) (model.Shortlist, error)
	// AddToShortlist returns ErrNotFound for an unknown shortlist and
	// ErrConflict if the player is already on it.
	AddToShortlist(ctx context.Context, e model.ShortlistEntry) error
	// RemoveFromShortlist returns ErrNotFound if the player is not on it.
	RemoveFromShortlist(ctx context.Context, shortlistID, playerID string) error
	ListShortlistEntries(ctx context.Context, shortlistID string) ([]model.ShortlistEntry, error)
}

// Store is the full persistence surface.
type Store interface {
	PlayerStore
	ScoutStore
	AssignmentStore
	ReportStore
	ShortlistStore
	Close() error
}
