// Package model contains domain models passed between layers.
package model

import "time"

// Player is a footballer tracked by the recruitment department.
type Player struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Club        string    `json:"club"`
	Positions   []string  `json:"positions"` // ordered, primary position first
	Age         *int      `json:"age,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`    // current ability
	Potential   *float64  `json:"potential,omitempty"` // projected ability
	Nationality string    `json:"nationality,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Scout is the profile of a staff member who can be assigned players.
type Scout struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Role is the staff role of a profile.
type Role string

// Known roles.
const (
	RoleScout       Role = "scout"
	RoleRecruitment Role = "recruitment"
	RoleAdmin       Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleScout, RoleRecruitment, RoleAdmin:
		return true
	}
	return false
}
