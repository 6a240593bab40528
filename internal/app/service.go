// Package service wires the store, the change queue, the refresh workers
// and the board resolver into the operations served by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/okian/scoutdesk/internal/adapters/mq/queue"
	"github.com/okian/scoutdesk/internal/adapters/mq/worker"
	"github.com/okian/scoutdesk/internal/adapters/repository"
	"github.com/okian/scoutdesk/internal/domain/board"
	"github.com/okian/scoutdesk/internal/domain/dedupe"
	"github.com/okian/scoutdesk/internal/domain/model"
	"github.com/okian/scoutdesk/pkg/logger"
	"github.com/okian/scoutdesk/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

// Service implements the API dependencies for the scouting desk.
type Service struct {
	mu sync.RWMutex

	store      repository.Store
	deduper    dedupe.Deduper
	changes    *queue.InMemoryQueue
	workerPool *worker.Pool

	// scoutingListID is the shortlist holding players awaiting a scout.
	scoutingListID string

	// version counts accepted writes. A snapshot older than version is stale.
	version  atomic.Uint64
	snapshot atomic.Pointer[board.Snapshot]
	rebuilds singleflight.Group

	workerCount     int
	queueSize       int
	idempotencySize int
	idempotencyTTL  time.Duration
	maxSearchLength int

	now   func() time.Time
	newID func() string

	started bool
	logger  logger.Logger
}

// New constructs a Service. Call Start before use.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU(),
		queueSize:       10_000,
		idempotencySize: 50_000,
		maxSearchLength: 100,
		now:             func() time.Time { return time.Now().UTC() },
		newID:           uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start prepares the store, launches the refresh workers and builds the
// first snapshot. Calling Start on a running service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.store == nil {
		s.store = repository.Instrument(repository.NewMemoryStore())
		s.logger.Info(ctx, "using in-memory store")
	}

	list, err := s.store.EnsureScoutingList(ctx, model.Shortlist{
		ID:        s.newID(),
		Name:      model.ScoutingListName,
		CreatedAt: s.now(),
	})
	if err != nil {
		return err
	}
	s.scoutingListID = list.ID

	dedupeOpts := []dedupe.Option{dedupe.WithMaxSize(s.idempotencySize)}
	if s.idempotencyTTL > 0 {
		dedupeOpts = append(dedupeOpts, dedupe.WithTTL(s.idempotencyTTL))
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupeOpts...)
	s.changes = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.workerPool = worker.NewPool(s.workerCount, s.changes, s,
		worker.WithLogger(s.logger.Named("worker")))
	s.workerPool.Start(context.WithoutCancel(ctx))

	// Data may already exist in a persistent store.
	s.version.Store(1)
	if _, err := s.currentSnapshot(ctx); err != nil {
		_ = s.workerPool.Shutdown(ctx)
		return err
	}

	s.started = true
	s.logger.Info(ctx, "scouting desk service started",
		logger.Int("workers", s.workerPool.Size()),
		logger.Int("queue_size", s.queueSize),
		logger.Int("idempotency_size", s.idempotencySize),
		logger.String("scouting_list_id", s.scoutingListID),
	)
	return nil
}

// Stop drains the refresh workers and closes the store.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping scouting desk service")

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.workerPool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not drain", logger.Error(err))
	}
	err := s.store.Close()
	s.started = false
	s.logger.Info(ctx, "scouting desk service stopped")
	return err
}

func (s *Service) running() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// ClaimIdempotencyKey looks up an Idempotency-Key and holds it as pending
// when it is new. Before Start nothing is recorded and the request falls
// through to the handler, which reports ErrNotStarted.
func (s *Service) ClaimIdempotencyKey(ctx context.Context, key string) dedupe.State {
	if s.running() != nil {
		return dedupe.Fresh
	}
	state := s.deduper.Claim(ctx, key)
	if state != dedupe.Fresh {
		metrics.RecordIdempotentDuplicate()
	}
	return state
}

// CompleteIdempotencyKey marks the write guarded by key as applied.
func (s *Service) CompleteIdempotencyKey(ctx context.Context, key string) {
	if s.running() != nil {
		return
	}
	s.deduper.Complete(ctx, key)
}

// ReleaseIdempotencyKey forgets key so a failed write can be retried.
func (s *Service) ReleaseIdempotencyKey(ctx context.Context, key string) {
	if s.running() != nil {
		return
	}
	s.deduper.Unrecord(ctx, key)
}

// changed bumps the data version and announces the write to the workers.
// Readers notice the new version on their own, so a full queue only
// delays the background refresh.
func (s *Service) changed(ctx context.Context, kind model.ChangeKind, entityID string) {
	v := s.version.Add(1)
	metrics.RecordChange(string(kind))
	err := s.changes.Enqueue(ctx, model.ChangeEvent{
		ID:       s.newID(),
		Kind:     kind,
		EntityID: entityID,
		Version:  v,
		TS:       s.now(),
	})
	if err != nil {
		s.logger.Warn(ctx, "change not queued",
			logger.String("kind", string(kind)),
			logger.Uint64("version", v),
			logger.Error(err))
	}
}

// Refresh rebuilds the snapshot when it is older than the change. Workers
// call it for every change event.
func (s *Service) Refresh(ctx context.Context, e model.ChangeEvent) error {
	if cur := s.snapshot.Load(); cur != nil && cur.Version >= e.Version {
		return nil
	}
	_, err := s.currentSnapshot(ctx)
	return err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":          s.started,
		"worker_count":     s.workerCount,
		"queue_capacity":   s.queueSize,
		"idempotency_size": s.idempotencySize,
		"data_version":     s.version.Load(),
	}
	if !s.started {
		return stats
	}
	stats["queue_length"] = s.changes.Len()
	stats["refreshes"] = s.workerPool.Processed()
	stats["idempotency_keys"] = s.deduper.Size()
	stats["scouting_list_id"] = s.scoutingListID
	if snap := s.snapshot.Load(); snap != nil {
		stats["snapshot_version"] = snap.Version
		stats["snapshot_built_at"] = snap.BuiltAt
		for kind, n := range snap.Sizes() {
			stats[kind] = n
		}
	}
	return stats
}
