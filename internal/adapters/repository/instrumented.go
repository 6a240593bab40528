package repository

import (
	"context"
	"time"

	"github.com/okian/scoutdesk/internal/domain/model"
	"github.com/okian/scoutdesk/pkg/metrics"
)

// instrumented records latency and failures of every call on the wrapped
// store.
type instrumented struct {
	next Store
}

// Instrument wraps s so each call is observed by the metrics package.
func Instrument(s Store) Store {
	return &instrumented{next: s}
}

func observe(op string, start time.Time, err error) {
	metrics.RecordStoreOp(op, float64(time.Since(start).Microseconds())/1000, err)
}

func (s *instrumented) CreatePlayer(ctx context.Context, p model.Player) (err error) {
	defer func(t time.Time) { observe("create_player", t, err) }(time.Now())
	return s.next.CreatePlayer(ctx, p)
}

func (s *instrumented) GetPlayer(ctx context.Context, id string) (p model.Player, err error) {
	defer func(t time.Time) { observe("get_player", t, err) }(time.Now())
	return s.next.GetPlayer(ctx, id)
}

func (s *instrumented) ListPlayers(ctx context.Context, q PlayerQuery) (out []model.Player, err error) {
	defer func(t time.Time) { observe("list_players", t, err) }(time.Now())
	return s.next.ListPlayers(ctx, q)
}

func (s *instrumented) CreateScout(ctx context.Context, sc model.Scout) (err error) {
	defer func(t time.Time) { observe("create_scout", t, err) }(time.Now())
	return s.next.CreateScout(ctx, sc)
}

func (s *instrumented) GetScout(ctx context.Context, id string) (sc model.Scout, err error) {
	defer func(t time.Time) { observe("get_scout", t, err) }(time.Now())
	return s.next.GetScout(ctx, id)
}

func (s *instrumented) ListScouts(ctx context.Context) (out []model.Scout, err error) {
	defer func(t time.Time) { observe("list_scouts", t, err) }(time.Now())
	return s.next.ListScouts(ctx)
}

func (s *instrumented) CreateAssignment(ctx context.Context, a model.Assignment) (err error) {
	defer func(t time.Time) { observe("create_assignment", t, err) }(time.Now())
	return s.next.CreateAssignment(ctx, a)
}

func (s *instrumented) GetAssignment(ctx context.Context, id string) (a model.Assignment, err error) {
	defer func(t time.Time) { observe("get_assignment", t, err) }(time.Now())
	return s.next.GetAssignment(ctx, id)
}

func (s *instrumented) ListAssignments(ctx context.Context, q AssignmentQuery) (out []model.Assignment, err error) {
	defer func(t time.Time) { observe("list_assignments", t, err) }(time.Now())
	return s.next.ListAssignments(ctx, q)
}

func (s *instrumented) UpdateAssignment(ctx context.Context, id string, u AssignmentUpdate) (a model.Assignment, err error) {
	defer func(t time.Time) { observe("update_assignment", t, err) }(time.Now())
	return s.next.UpdateAssignment(ctx, id, u)
}

func (s *instrumented) DeleteAssignment(ctx context.Context, id string) (err error) {
	defer func(t time.Time) { observe("delete_assignment", t, err) }(time.Now())
	return s.next.DeleteAssignment(ctx, id)
}

func (s *instrumented) CreateReport(ctx context.Context, r model.Report) (err error) {
	defer func(t time.Time) { observe("create_report", t, err) }(time.Now())
	return s.next.CreateReport(ctx, r)
}

func (s *instrumented) ListReports(ctx context.Context, q ReportQuery) (out []model.Report, err error) {
	defer func(t time.Time) { observe("list_reports", t, err) }(time.Now())
	return s.next.ListReports(ctx, q)
}

func (s *instrumented) CreateShortlist(ctx context.Context, sl model.Shortlist) (err error) {
	defer func(t time.Time) { observe("create_shortlist", t, err) }(time.Now())
	return s.next.CreateShortlist(ctx, sl)
}

func (s *instrumented) GetShortlist(ctx context.Context, id string) (sl model.Shortlist, err error) {
	defer func(t time.Time) { observe("get_shortlist", t, err) }(time.Now())
	return s.next.GetShortlist(ctx, id)
}

func (s *instrumented) ListShortlists(ctx context.Context) (out []model.Shortlist, err error) {
	defer func(t time.Time) { observe("list_shortlists", t, err) }(time.Now())
	return s.next.ListShortlists(ctx)
}

func (s *instrumented) EnsureScoutingList(ctx context.Context, candidate model.Shortlist) (sl model.Shortlist, err error) {
	defer func(t time.Time) { observe("ensure_scouting_list", t, err) }(time.Now())
	return s.next.EnsureScoutingList(ctx, candidate)
}

func (s *instrumented) AddToShortlist(ctx context.Context, e model.ShortlistEntry) (err error) {
	defer func(t time.Time) { observe("add_to_shortlist", t, err) }(time.Now())
	return s.next.AddToShortlist(ctx, e)
}

func (s *instrumented) RemoveFromShortlist(ctx context.Context, shortlistID, playerID string) (err error) {
	defer func(t time.Time) { observe("remove_from_shortlist", t, err) }(time.Now())
	return s.next.RemoveFromShortlist(ctx, shortlistID, playerID)
}

func (s *instrumented) ListShortlistEntries(ctx context.Context, shortlistID string) (out []model.ShortlistEntry, err error) {
	defer func(t time.Time) { observe("list_shortlist_entries", t, err) }(time.Now())
	return s.next.ListShortlistEntries(ctx, shortlistID)
}

func (s *instrumented) Close() error {
	return s.next.Close()
}
