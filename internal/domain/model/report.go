package model

import "time"

// ReportStatus is the lifecycle status of a scouting report.
type ReportStatus string

// Report statuses.
const (
	ReportDraft     ReportStatus = "draft"
	ReportSubmitted ReportStatus = "submitted"
	ReportReviewed  ReportStatus = "reviewed"
)

// Valid reports whether s is a known report status.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportDraft, ReportSubmitted, ReportReviewed:
		return true
	}
	return false
}

// Report is a scout's evaluation of a player.
type Report struct {
	ID                string       `json:"id"`
	PlayerID          string       `json:"player_id"`
	ScoutID           string       `json:"scout_id"`
	Status            ReportStatus `json:"status"`
	Summary           string       `json:"summary,omitempty"`
	Verdict           string       `json:"verdict,omitempty"`
	PerformanceRating *int         `json:"performance_rating,omitempty"` // 1..10
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}
