package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newBoardCmd(root *rootOptions) *cobra.Command {
	var (
		scoutID string
		search  string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the assignment board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := root.client().Board(cmd.Context(), scoutID, search)
			if err != nil {
				return fmt.Errorf("fetch board: %w", err)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), newRenderer(cmd.OutOrStdout()).board(view))
			return err
		},
	}
	cmd.Flags().StringVar(&scoutID, "scout", "", "only this scout's assignments")
	cmd.Flags().StringVarP(&search, "query", "q", "", "match player name or club")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON view")
	return cmd
}
