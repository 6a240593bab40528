package board

import (
	"strings"

	"github.com/okian/scoutdesk/internal/domain/model"
)

// Defaults applied by normalization. Every fallback the board shows lives
// here so the policy can be audited in one place:
//
//	player.Name         trimmed; empty -> UnknownPlayerName
//	player.Club         trimmed; empty -> UnknownClubName
//	player.Positions    nil -> empty; blank entries dropped
//	scout names, email  trimmed
//	assignment.Status   trimmed, lower-cased; unknown -> assigned
//	assignment.Priority canonical High/Medium/Low; anything else -> none
//	assignment.Notes    trimmed
const (
	UnknownPlayerName = "Unknown Player"
	UnknownClubName   = "Unknown Club"
)

func normalizePlayer(p model.Player) model.Player {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = UnknownPlayerName
	}
	p.Club = strings.TrimSpace(p.Club)
	if p.Club == "" {
		p.Club = UnknownClubName
	}
	positions := make([]string, 0, len(p.Positions))
	for _, pos := range p.Positions {
		if pos = strings.TrimSpace(pos); pos != "" {
			positions = append(positions, pos)
		}
	}
	p.Positions = positions
	return p
}

func normalizeScout(s model.Scout) model.Scout {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.Email = strings.TrimSpace(s.Email)
	return s
}

func normalizeAssignment(a model.Assignment) model.Assignment {
	status := model.AssignmentStatus(strings.ToLower(strings.TrimSpace(string(a.Status))))
	if !status.Valid() {
		status = model.AssignmentAssigned
	}
	a.Status = status
	a.Priority, _ = model.ParsePriority(string(a.Priority))
	a.Notes = strings.TrimSpace(a.Notes)
	return a
}

// ScoutDisplayName renders a scout for display: full name, then email,
// then UnknownScout. A nil scout is unresolved.
func ScoutDisplayName(s *model.Scout) string {
	if s == nil {
		return UnknownScout
	}
	if name := strings.TrimSpace(s.FirstName + " " + s.LastName); name != "" {
		return name
	}
	if email := strings.TrimSpace(s.Email); email != "" {
		return email
	}
	return UnknownScout
}
