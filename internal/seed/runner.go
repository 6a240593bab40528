// Package seed fills a running scouting desk with a synthetic squad
// through its HTTP API and checks that the board it serves back agrees
// with what was written.
package seed

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/scoutdesk/pkg/logger"
)

type counters struct {
	players, scouts, marked, assigned, reported, duplicate atomic.Int64
}

func (c *counters) post(ctx context.Context, client *Client, n *atomic.Int64, path string, body any) (string, error) {
	id, dup, err := client.Post(ctx, path, body)
	if err != nil {
		return "", fmt.Errorf("POST %s: %w", path, err)
	}
	if dup {
		c.duplicate.Add(1)
	}
	n.Add(1)
	return id, nil
}

// Run executes a complete seeding run against cfg.BaseURL.
func Run(ctx context.Context, cfg Config) (*Stats, error) {
	log := logger.Get().Named("seed")
	stats := &Stats{StartTime: time.Now()}
	client := NewClient(cfg.BaseURL, cfg.Timeout)
	workers := max(cfg.Workers, 1)

	log.Info(ctx, "starting seed run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("players", cfg.Players),
		logger.Int("scouts", cfg.Scouts),
		logger.Int("workers", workers),
		logger.Uint64("seed", cfg.Seed))

	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}
	before, err := client.Board(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("baseline board: %w", err)
	}

	plan := Generate(cfg)
	var c counters

	scoutIDs := make([]string, len(plan.Scouts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sc := range plan.Scouts {
		g.Go(func() (err error) {
			scoutIDs[i], err = c.post(gctx, client, &c.scouts, "/scouts", map[string]string{
				"first_name": sc.FirstName,
				"last_name":  sc.LastName,
				"email":      sc.Email,
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("create scouts: %w", err)
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, pl := range plan.Players {
		g.Go(func() error {
			id, err := c.post(gctx, client, &c.players, "/players", map[string]any{
				"name":      pl.Name,
				"club":      pl.Club,
				"positions": pl.Positions,
				"age":       pl.Age,
			})
			if err != nil {
				return err
			}
			if _, err := c.post(gctx, client, &c.marked, "/scouting-list/"+id, nil); err != nil {
				return err
			}
			if pl.Scout < 0 {
				return nil
			}
			scoutID := scoutIDs[pl.Scout]
			if _, err := c.post(gctx, client, &c.assigned, "/assignments", map[string]string{
				"player_id": id,
				"scout_id":  scoutID,
				"priority":  pl.Priority,
			}); err != nil {
				return err
			}
			if !pl.Report {
				return nil
			}
			_, err = c.post(gctx, client, &c.reported, "/reports", map[string]any{
				"player_id": id,
				"scout_id":  scoutID,
				"summary":   "Seeded report for " + pl.Name,
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("create players: %w", err)
	}

	stats.ScoutsCreated = int(c.scouts.Load())
	stats.PlayersCreated = int(c.players.Load())
	stats.Marked = int(c.marked.Load())
	stats.Assigned = int(c.assigned.Load())
	stats.Reported = int(c.reported.Load())
	stats.RequestsDuplicate = int(c.duplicate.Load())

	after, err := client.Board(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("board after seeding: %w", err)
	}
	if err := Verify(plan, before, after); err != nil {
		return stats, fmt.Errorf("result verification failed: %w", err)
	}
	for i, id := range scoutIDs {
		view, err := client.Board(ctx, id, "")
		if err != nil {
			return stats, fmt.Errorf("board for scout %d: %w", i, err)
		}
		if err := VerifyScout(plan, i, view); err != nil {
			return stats, fmt.Errorf("result verification failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "seed run completed",
		logger.Int("players", stats.PlayersCreated),
		logger.Int("scouts", stats.ScoutsCreated),
		logger.Int("assigned", stats.Assigned),
		logger.Int("reported", stats.Reported),
		logger.Int("duplicates", stats.RequestsDuplicate),
		logger.String("duration", stats.Duration.String()),
		logger.String("version", strconv.FormatUint(after.Version, 10)))
	return stats, nil
}
