package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/scoutdesk/internal/seed"
	"github.com/okian/scoutdesk/pkg/logger"
)

const (
	defaultURL     = "http://localhost:9080"
	defaultTimeout = 30 * time.Second
)

type rootOptions struct {
	url      string
	timeout  time.Duration
	logLevel string
}

func (o *rootOptions) client() *seed.Client {
	return seed.NewClient(o.url, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "scoutctl",
		Short: "Terminal client for the scouting desk",
		Long: `scoutctl reads the assignment board and scout performance from a running
scouting desk, and can seed it with a synthetic squad for demos and load tests.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return err
			}
			return logger.SetLevelString(opts.logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.url, "url", defaultURL, "base URL of the scouting desk")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "HTTP request timeout")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	cmd.AddCommand(newBoardCmd(opts), newPerformanceCmd(opts), newSeedCmd(opts))
	return cmd
}
