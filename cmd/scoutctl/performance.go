package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPerformanceCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "performance",
		Short: "Show scout performance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := root.client().Performance(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch performance: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), newRenderer(cmd.OutOrStdout()).performance(view))
			return err
		},
	}
}
