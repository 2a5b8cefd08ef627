package main

import (
	"errors"
	"fmt"

	"github.com/phrazzld/flashdeck/internal/client"
	"github.com/spf13/cobra"
)

func newGenerateCommand(opts *rootOptions, d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <deck-id>",
		Short: "Generate cards for a deck with AI",
		Long: `Ask the server to generate flashcards from the deck's title and description.

The deck needs both a title and a description, and your plan must include
AI generation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deckID, err := parseDeckID(args[0])
			if err != nil {
				return err
			}

			c, err := connect(opts, d)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "Generating cards, this can take a minute...")
			resp, err := c.GenerateCards(cmd.Context(), deckID)
			if err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) {
					return errors.New(apiErr.Message)
				}
				return fmt.Errorf("generate cards: %w", err)
			}

			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			renderGenerated(cmd.OutOrStdout(), resp)
			return nil
		},
	}
}
