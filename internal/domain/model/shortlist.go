package model

import "time"

// ScoutingListName is the name given to the system-managed scouting list.
const ScoutingListName = "Marked for Scouting"

// Shortlist is a named group of players. The list flagged with
// IsScoutingAssignmentList holds players awaiting a scout.
type Shortlist struct {
	ID                       string    `json:"id"`
	Name                     string    `json:"name"`
	Description              string    `json:"description,omitempty"`
	IsScoutingAssignmentList bool      `json:"is_scouting_assignment_list"`
	CreatedAt                time.Time `json:"created_at"`
}

// ShortlistEntry records a player's membership in a shortlist.
type ShortlistEntry struct {
	ShortlistID string    `json:"shortlist_id"`
	PlayerID    string    `json:"player_id"`
	AddedAt     time.Time `json:"added_at"`
}
