package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/okian/scoutdesk/internal/adapters/repository"
	"github.com/okian/scoutdesk/internal/domain/board"
	"github.com/okian/scoutdesk/internal/domain/model"
	"github.com/okian/scoutdesk/internal/domain/performance"
	"github.com/okian/scoutdesk/internal/domain/types"
	"github.com/okian/scoutdesk/pkg/logger"
	"github.com/okian/scoutdesk/pkg/metrics"
)

// rebuildTimeout bounds a shared snapshot rebuild.
const rebuildTimeout = 30 * time.Second

// currentSnapshot returns a snapshot at least as new as the data version
// at the time of the call. Concurrent callers share a single rebuild.
func (s *Service) currentSnapshot(ctx context.Context) (*board.Snapshot, error) {
	want := s.version.Load()
	if cur := s.snapshot.Load(); cur != nil && cur.Version >= want {
		return cur, nil
	}
	// The shared rebuild outlives any single caller; each caller only stops
	// waiting for it when its own context ends.
	ch := s.rebuilds.DoChan("snapshot", func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rebuildTimeout)
		defer cancel()
		return s.rebuild(rctx)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	snap := res.Val.(*board.Snapshot)
	// A rebuild that started before our write may have been shared with us.
	if snap.Version < want {
		return s.rebuild(ctx)
	}
	return snap, nil
}

// rebuild loads every collection the resolver needs and publishes the
// resulting snapshot unless a newer one was published meanwhile.
func (s *Service) rebuild(ctx context.Context) (*board.Snapshot, error) {
	start := time.Now()
	version := s.version.Load()

	var in board.Input
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Players, err = s.store.ListPlayers(gctx, repository.PlayerQuery{})
		return err
	})
	g.Go(func() (err error) {
		in.Scouts, err = s.store.ListScouts(gctx)
		return err
	})
	g.Go(func() (err error) {
		in.Assignments, err = s.store.ListAssignments(gctx, repository.AssignmentQuery{})
		return err
	})
	g.Go(func() (err error) {
		in.Reports, err = s.store.ListReports(gctx, repository.ReportQuery{})
		return err
	})
	g.Go(func() (err error) {
		in.ScoutingList, err = s.store.ListShortlistEntries(gctx, s.scoutingListID)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.RecordErrorByComponent("service", "snapshot_load")
		return nil, fmt.Errorf("load snapshot inputs: %w", err)
	}

	snap := board.NewSnapshot(in)
	snap.Version = version
	for {
		cur := s.snapshot.Load()
		if cur != nil && cur.Version >= version {
			return cur, nil
		}
		if s.snapshot.CompareAndSwap(cur, snap) {
			break
		}
	}

	elapsed := time.Since(start)
	metrics.ObserveSnapshot(float64(elapsed.Microseconds())/1000, version, snap.Sizes())
	s.logger.Debug(ctx, "snapshot published",
		logger.Uint64("version", version),
		logger.Duration("took", elapsed))
	return snap, nil
}

// Board resolves the assignment board for f.
func (s *Service) Board(ctx context.Context, f board.Filter) (types.BoardView, error) {
	if err := s.running(); err != nil {
		return types.BoardView{}, err
	}
	f.ScoutID = strings.TrimSpace(f.ScoutID)
	if utf8.RuneCountInString(f.Search) > s.maxSearchLength {
		return types.BoardView{}, invalidf("search longer than %d characters", s.maxSearchLength)
	}
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return types.BoardView{}, err
	}

	start := time.Now()
	b := board.Resolve(snap, f)
	latency := float64(time.Since(start).Microseconds()) / 1000

	counts := make(map[string]int, 3)
	for bucket, n := range b.Counts() {
		counts[string(bucket)] = n
	}
	filtered := f.ScoutID != "" || strings.TrimSpace(f.Search) != ""
	metrics.ObserveBoard(latency, counts, b.Dropped, b.UnresolvedScouts, filtered)
	if b.Dropped > 0 {
		s.logger.Debug(ctx, "board skipped rows with missing players", logger.Int("dropped", b.Dropped))
	}
	return types.NewBoardView(b, snap.Version, s.now()), nil
}

// Performance summarizes every scout's workload.
func (s *Service) Performance(ctx context.Context) (types.PerformanceView, error) {
	if err := s.running(); err != nil {
		return types.PerformanceView{}, err
	}
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return types.PerformanceView{}, err
	}
	metrics.RecordPerformanceSummary()
	return types.PerformanceView{
		Scouts:      performance.Summarize(snap),
		Version:     snap.Version,
		GeneratedAt: s.now(),
	}, nil
}

// GetPlayer returns one player.
func (s *Service) GetPlayer(ctx context.Context, id string) (model.Player, error) {
	if err := s.running(); err != nil {
		return model.Player{}, err
	}
	return s.store.GetPlayer(ctx, id)
}

// ListPlayers returns players whose name or club contains search.
func (s *Service) ListPlayers(ctx context.Context, search string) ([]model.Player, error) {
	if err := s.running(); err != nil {
		return nil, err
	}
	return s.store.ListPlayers(ctx, repository.PlayerQuery{Search: search})
}

// ListScouts returns every scout profile.
func (s *Service) ListScouts(ctx context.Context) ([]model.Scout, error) {
	if err := s.running(); err != nil {
		return nil, err
	}
	return s.store.ListScouts(ctx)
}

// ListAssignments returns assignments, optionally for one scout.
func (s *Service) ListAssignments(ctx context.Context, scoutID string) ([]model.Assignment, error) {
	if err := s.running(); err != nil {
		return nil, err
	}
	return s.store.ListAssignments(ctx, repository.AssignmentQuery{ScoutID: scoutID})
}

// ListReports returns reports filtered by scout and player.
func (s *Service) ListReports(ctx context.Context, scoutID, playerID string) ([]model.Report, error) {
	if err := s.running(); err != nil {
		return nil, err
	}
	return s.store.ListReports(ctx, repository.ReportQuery{ScoutID: scoutID, PlayerID: playerID})
}

// ListShortlists returns every shortlist, the scouting list included.
func (s *Service) ListShortlists(ctx context.Context) ([]model.Shortlist, error) {
	if err := s.running(); err != nil {
		return nil, err
	}
	return s.store.ListShortlists(ctx)
}

// ShortlistEntries returns the members of a shortlist.
func (s *Service) ShortlistEntries(ctx context.Context, shortlistID string) ([]model.ShortlistEntry, error) {
	if err := s.running(); err != nil {
		return nil, err
	}
	return s.store.ListShortlistEntries(ctx, shortlistID)
}
