package model

import (
	"strings"
	"time"
)

// AssignmentStatus is the stored lifecycle status of an assignment row.
type AssignmentStatus string

// Stored assignment statuses.
const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
	AssignmentReviewed   AssignmentStatus = "reviewed"
)

// Valid reports whether s is a known stored status.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentAssigned, AssignmentInProgress, AssignmentCompleted, AssignmentReviewed:
		return true
	}
	return false
}

// Priority of an assignment. The zero value means no priority was set.
type Priority string

// Assignment priorities.
const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority maps free-form input to a canonical priority.
// Unknown values yield PriorityNone and false.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, true
	case "medium":
		return PriorityMedium, true
	case "low":
		return PriorityLow, true
	}
	return PriorityNone, false
}

// Assignment links one scout to one player. At most one row exists per
// (PlayerID, ScoutID) pair.
type Assignment struct {
	ID           string           `json:"id"`
	PlayerID     string           `json:"player_id"`
	ScoutID      string           `json:"assigned_to_scout_id"`
	AssignedByID string           `json:"assigned_by_manager_id"`
	Priority     Priority         `json:"priority,omitempty"`
	Status       AssignmentStatus `json:"status"`
	Deadline     *time.Time       `json:"deadline,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
