package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDecksCommand(opts *rootOptions, d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List your decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := connect(opts, d)
			if err != nil {
				return err
			}

			decks, err := c.ListDecks(cmd.Context())
			if err != nil {
				return fmt.Errorf("list decks: %w", err)
			}

			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), decks)
			}
			return renderDecks(cmd.OutOrStdout(), decks)
		},
	}
}
