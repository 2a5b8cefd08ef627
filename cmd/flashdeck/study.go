package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/flashdeck/internal/domain/study"
	"github.com/spf13/cobra"
)

func newStudyCommand(opts *rootOptions, d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "study <deck-id>",
		Short: "Study a deck in a shuffled pass",
		Long: `Study every card of a deck once, in random order.

Type a key and press enter:
  f or space  flip the card
  y / n       mark correct / incorrect and move on
  l or >      next card
  h or <      previous card
  r           restart with a new shuffle
  q           quit`,
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

			cards, err := c.ListCards(cmd.Context(), deckID)
			if err != nil {
				return fmt.Errorf("load cards: %w", err)
			}

			var sessionOpts []study.Option
			if d.rng != nil {
				sessionOpts = append(sessionOpts, study.WithRand(d.rng))
			}
			s := study.New(cards, sessionOpts...)

			opts.logger.Debug("study session started",
				"deck_id", deckID.String(),
				"cards", s.Len())
			return runStudy(cmd.InOrStdin(), cmd.OutOrStdout(), s)
		},
	}
}

// runStudy drives s from line-oriented key input until q or end of input.
func runStudy(in io.Reader, out io.Writer, s *study.Session) error {
	if s.State() == study.StateEmpty {
		fmt.Fprintln(out, "This deck has no cards.")
		return nil
	}

	fmt.Fprintln(out, studyKeys)
	renderCard(out, s)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		ev, quit, ok := parseKey(scanner.Text())
		if quit {
			if s.State() != study.StateFinished {
				renderStopped(out, s.Stats())
			}
			return nil
		}
		if !ok {
			continue
		}

		s.Apply(ev)
		if s.State() == study.StateFinished {
			renderSummary(out, s.Stats())
		} else {
			renderCard(out, s)
		}
	}
	return scanner.Err()
}

// parseKey maps one input line to a session event. A line holding only
// spaces flips the card; blank lines are ignored.
func parseKey(line string) (ev study.Event, quit bool, ok bool) {
	key := strings.ToLower(strings.TrimSpace(line))
	if key == "" {
		if line != "" {
			return study.EventFlip, false, true
		}
		return 0, false, false
	}

	switch key {
	case "f":
		return study.EventFlip, false, true
	case "y":
		return study.EventMarkCorrect, false, true
	case "n":
		return study.EventMarkIncorrect, false, true
	case "l", ">":
		return study.EventNext, false, true
	case "h", "<":
		return study.EventPrevious, false, true
	case "r":
		return study.EventRestart, false, true
	case "q":
		return 0, true, false
	default:
		return 0, false, false
	}
}
