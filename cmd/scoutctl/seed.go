package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/okian/scoutdesk/internal/seed"
)

const workersPerCPU = 2

func newSeedCmd(root *rootOptions) *cobra.Command {
	cfg := seed.Config{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the desk with a synthetic squad and verify the board",
		Long: `seed creates scouts and players, marks every player for scouting, assigns a
share of them and files reports for a share of those. It then reads the board
back and fails if the columns did not grow by exactly what was written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.BaseURL = root.url
			cfg.Timeout = root.timeout
			stats, err := seed.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"scouts %d, players %d, assigned %d, reported %d in %s\n",
				stats.ScoutsCreated, stats.PlayersCreated, stats.Assigned, stats.Reported, stats.Duration.Round(1e6))
			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&cfg.Players, "players", 200, "players to create")
	f.IntVar(&cfg.Scouts, "scouts", 10, "scouts to create")
	f.Float64Var(&cfg.AssignRatio, "assign-ratio", 0.6, "share of players that get a scout")
	f.Float64Var(&cfg.ReportRatio, "report-ratio", 0.4, "share of assigned players that get a report")
	f.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*workersPerCPU, "concurrent requests")
	f.Uint64Var(&cfg.Seed, "seed", 1, "generator seed")
	return cmd
}
