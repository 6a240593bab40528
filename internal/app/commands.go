package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okian/scoutdesk/internal/adapters/repository"
	"github.com/okian/scoutdesk/internal/domain/model"
	"github.com/okian/scoutdesk/pkg/logger"
)

const (
	minPerformanceRating = 1
	maxPerformanceRating = 10
)

// CreatePlayer stores a new player.
func (s *Service) CreatePlayer(ctx context.Context, in PlayerInput) (model.Player, error) {
	if err := s.running(); err != nil {
		return model.Player{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Player{}, invalidf("player name is required")
	}
	if in.Age != nil && *in.Age < 0 {
		return model.Player{}, invalidf("age must not be negative")
	}
	positions := make([]string, 0, len(in.Positions))
	for _, pos := range in.Positions {
		if pos = strings.TrimSpace(pos); pos != "" {
			positions = append(positions, strings.ToUpper(pos))
		}
	}
	p := model.Player{
		ID:          s.newID(),
		Name:        name,
		Club:        strings.TrimSpace(in.Club),
		Positions:   positions,
		Age:         in.Age,
		Rating:      in.Rating,
		Potential:   in.Potential,
		Nationality: strings.TrimSpace(in.Nationality),
		CreatedAt:   s.now(),
	}
	if err := s.store.CreatePlayer(ctx, p); err != nil {
		return model.Player{}, err
	}
	s.changed(ctx, model.ChangePlayerCreated, p.ID)
	return p, nil
}

// CreateScout stores a new scout profile. Role defaults to scout.
func (s *Service) CreateScout(ctx context.Context, in ScoutInput) (model.Scout, error) {
	if err := s.running(); err != nil {
		return model.Scout{}, err
	}
	sc := model.Scout{
		ID:        s.newID(),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Role:      model.Role(strings.ToLower(strings.TrimSpace(in.Role))),
		CreatedAt: s.now(),
	}
	if sc.FirstName == "" && sc.LastName == "" && sc.Email == "" {
		return model.Scout{}, invalidf("a scout needs a name or an email")
	}
	if sc.Role == "" {
		sc.Role = model.RoleScout
	}
	if !sc.Role.Valid() {
		return model.Scout{}, invalidf("unknown role %q", in.Role)
	}
	if err := s.store.CreateScout(ctx, sc); err != nil {
		return model.Scout{}, err
	}
	s.changed(ctx, model.ChangeScoutCreated, sc.ID)
	return sc, nil
}

// AssignScout creates an assignment for a (player, scout) pair and takes
// the player off the scouting list.
func (s *Service) AssignScout(ctx context.Context, in AssignInput) (model.Assignment, error) {
	if err := s.running(); err != nil {
		return model.Assignment{}, err
	}
	if in.PlayerID == "" || in.ScoutID == "" {
		return model.Assignment{}, invalidf("player_id and scout_id are required")
	}
	priority := model.PriorityNone
	if strings.TrimSpace(in.Priority) != "" {
		var ok bool
		if priority, ok = model.ParsePriority(in.Priority); !ok {
			return model.Assignment{}, invalidf("unknown priority %q", in.Priority)
		}
	}
	if _, err := s.store.GetPlayer(ctx, in.PlayerID); err != nil {
		return model.Assignment{}, fmt.Errorf("player %s: %w", in.PlayerID, err)
	}
	if _, err := s.store.GetScout(ctx, in.ScoutID); err != nil {
		return model.Assignment{}, fmt.Errorf("scout %s: %w", in.ScoutID, err)
	}

	now := s.now()
	a := model.Assignment{
		ID:           s.newID(),
		PlayerID:     in.PlayerID,
		ScoutID:      in.ScoutID,
		AssignedByID: strings.TrimSpace(in.AssignedByID),
		Priority:     priority,
		Status:       model.AssignmentAssigned,
		Deadline:     in.Deadline,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateAssignment(ctx, a); err != nil {
		return model.Assignment{}, err
	}

	// The board hides assigned players from the scouting list anyway, so a
	// failure here is logged rather than returned.
	err := s.store.RemoveFromShortlist(ctx, s.scoutingListID, a.PlayerID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn(ctx, "player left on scouting list",
			logger.String("player_id", a.PlayerID), logger.Error(err))
	}
	s.changed(ctx, model.ChangeAssignmentCreated, a.ID)
	return a, nil
}

// UpdateAssignment changes status, priority, deadline or notes.
func (s *Service) UpdateAssignment(ctx context.Context, id string, in AssignmentPatch) (model.Assignment, error) {
	if err := s.running(); err != nil {
		return model.Assignment{}, err
	}
	u := repository.AssignmentUpdate{
		Deadline:      in.Deadline,
		ClearDeadline: in.ClearDeadline,
		UpdatedAt:     s.now(),
	}
	if in.Status != nil {
		st := model.AssignmentStatus(strings.ToLower(strings.TrimSpace(*in.Status)))
		if !st.Valid() {
			return model.Assignment{}, invalidf("unknown status %q", *in.Status)
		}
		u.Status = &st
	}
	if in.Priority != nil {
		p := model.PriorityNone
		if strings.TrimSpace(*in.Priority) != "" {
			var ok bool
			if p, ok = model.ParsePriority(*in.Priority); !ok {
				return model.Assignment{}, invalidf("unknown priority %q", *in.Priority)
			}
		}
		u.Priority = &p
	}
	if in.Notes != nil {
		notes := strings.TrimSpace(*in.Notes)
		u.Notes = &notes
	}
	a, err := s.store.UpdateAssignment(ctx, id, u)
	if err != nil {
		return model.Assignment{}, err
	}
	s.changed(ctx, model.ChangeAssignmentUpdated, a.ID)
	return a, nil
}

// DeleteAssignment removes an assignment.
func (s *Service) DeleteAssignment(ctx context.Context, id string) error {
	if err := s.running(); err != nil {
		return err
	}
	if err := s.store.DeleteAssignment(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, model.ChangeAssignmentDeleted, id)
	return nil
}

// SubmitReport files a report. Any report on an assigned pair marks that
// assignment completed on the board.
func (s *Service) SubmitReport(ctx context.Context, in ReportInput) (model.Report, error) {
	if err := s.running(); err != nil {
		return model.Report{}, err
	}
	if in.PlayerID == "" || in.ScoutID == "" {
		return model.Report{}, invalidf("player_id and scout_id are required")
	}
	status := model.ReportSubmitted
	if raw := strings.TrimSpace(in.Status); raw != "" {
		status = model.ReportStatus(strings.ToLower(raw))
		if !status.Valid() {
			return model.Report{}, invalidf("unknown report status %q", in.Status)
		}
	}
	if r := in.PerformanceRating; r != nil && (*r < minPerformanceRating || *r > maxPerformanceRating) {
		return model.Report{}, invalidf("performance_rating must be between %d and %d", minPerformanceRating, maxPerformanceRating)
	}
	if _, err := s.store.GetPlayer(ctx, in.PlayerID); err != nil {
		return model.Report{}, fmt.Errorf("player %s: %w", in.PlayerID, err)
	}
	if _, err := s.store.GetScout(ctx, in.ScoutID); err != nil {
		return model.Report{}, fmt.Errorf("scout %s: %w", in.ScoutID, err)
	}
	now := s.now()
	r := model.Report{
		ID:                s.newID(),
		PlayerID:          in.PlayerID,
		ScoutID:           in.ScoutID,
		Status:            status,
		Summary:           strings.TrimSpace(in.Summary),
		Verdict:           strings.TrimSpace(in.Verdict),
		PerformanceRating: in.PerformanceRating,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.CreateReport(ctx, r); err != nil {
		return model.Report{}, err
	}
	s.changed(ctx, model.ChangeReportCreated, r.ID)
	return r, nil
}

// CreateShortlist creates a user shortlist. The scouting list is managed
// by the service and cannot be created this way.
func (s *Service) CreateShortlist(ctx context.Context, in ShortlistInput) (model.Shortlist, error) {
	if err := s.running(); err != nil {
		return model.Shortlist{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Shortlist{}, invalidf("shortlist name is required")
	}
	sl := model.Shortlist{
		ID:          s.newID(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   s.now(),
	}
	if err := s.store.CreateShortlist(ctx, sl); err != nil {
		return model.Shortlist{}, err
	}
	s.changed(ctx, model.ChangeShortlistCreated, sl.ID)
	return sl, nil
}

// AddToShortlist puts a player on a shortlist.
func (s *Service) AddToShortlist(ctx context.Context, shortlistID, playerID string) (model.ShortlistEntry, error) {
	if err := s.running(); err != nil {
		return model.ShortlistEntry{}, err
	}
	if _, err := s.store.GetPlayer(ctx, playerID); err != nil {
		return model.ShortlistEntry{}, fmt.Errorf("player %s: %w", playerID, err)
	}
	e := model.ShortlistEntry{ShortlistID: shortlistID, PlayerID: playerID, AddedAt: s.now()}
	if err := s.store.AddToShortlist(ctx, e); err != nil {
		return model.ShortlistEntry{}, err
	}
	s.changed(ctx, model.ChangeShortlistUpdated, shortlistID)
	return e, nil
}

// RemoveFromShortlist takes a player off a shortlist.
func (s *Service) RemoveFromShortlist(ctx context.Context, shortlistID, playerID string) error {
	if err := s.running(); err != nil {
		return err
	}
	if err := s.store.RemoveFromShortlist(ctx, shortlistID, playerID); err != nil {
		return err
	}
	s.changed(ctx, model.ChangeShortlistUpdated, shortlistID)
	return nil
}

// MarkForScouting puts a player on the scouting list.
func (s *Service) MarkForScouting(ctx context.Context, playerID string) (model.ShortlistEntry, error) {
	if err := s.running(); err != nil {
		return model.ShortlistEntry{}, err
	}
	return s.AddToShortlist(ctx, s.scoutingListID, playerID)
}

// UnmarkForScouting takes a player off the scouting list.
func (s *Service) UnmarkForScouting(ctx context.Context, playerID string) error {
	if err := s.running(); err != nil {
		return err
	}
	return s.RemoveFromShortlist(ctx, s.scoutingListID, playerID)
}
