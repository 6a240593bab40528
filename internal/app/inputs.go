package service

import "time"

// PlayerInput describes a player to create.
type PlayerInput struct {
	Name        string   `json:"name"`
	Club        string   `json:"club"`
	Positions   []string `json:"positions"`
	Age         *int     `json:"age,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Potential   *float64 `json:"potential,omitempty"`
	Nationality string   `json:"nationality,omitempty"`
}

// ScoutInput describes a scout profile to create.
type ScoutInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// AssignInput assigns a scout to a player.
type AssignInput struct {
	PlayerID     string     `json:"player_id"`
	ScoutID      string     `json:"scout_id"`
	AssignedByID string     `json:"assigned_by_manager_id"`
	Priority     string     `json:"priority"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Notes        string     `json:"notes"`
}

// AssignmentPatch changes an assignment. Nil fields are left alone.
type AssignmentPatch struct {
	Status        *string    `json:"status,omitempty"`
	Priority      *string    `json:"priority,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	ClearDeadline bool       `json:"clear_deadline,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

// ReportInput files a scouting report.
type ReportInput struct {
	PlayerID          string `json:"player_id"`
	ScoutID           string `json:"scout_id"`
	Status            string `json:"status"` // defaults to submitted
	Summary           string `json:"summary"`
	Verdict           string `json:"verdict"`
	PerformanceRating *int   `json:"performance_rating,omitempty"`
}

// ShortlistInput creates a user shortlist.
type ShortlistInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
