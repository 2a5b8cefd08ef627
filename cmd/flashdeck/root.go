package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"slices"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api"
	"github.com/phrazzld/flashdeck/internal/client"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/study"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/reconcile"
	"github.com/spf13/cobra"
)

// deckAPI is the part of the server API the commands use.
type deckAPI interface {
	reconcile.CardWriter
	ListDecks(ctx context.Context) ([]api.DeckResponse, error)
	ListCards(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error)
	GenerateCards(ctx context.Context, deckID uuid.UUID) (*api.GenerateCardsResponse, error)
}

// rootOptions holds global flags for all commands.
type rootOptions struct {
	Verbose bool
	Format  string // "text" | "json"

	// resolved in PersistentPreRunE
	cfg    *config.ClientConfig
	logger *slog.Logger
}

// validFormats defines the allowed output formats.
var validFormats = []string{"text", "json"}

// deps are the collaborators a command needs. Tests replace them.
type deps struct {
	newAPI     func(cfg config.ClientConfig, log *slog.Logger) (deckAPI, error)
	rng        study.Rand
	openEditor func(ctx context.Context, path string, stdin io.Reader, stdout, stderr io.Writer) error
}

func defaultDeps() deps {
	return deps{
		newAPI: func(cfg config.ClientConfig, log *slog.Logger) (deckAPI, error) {
			c, err := client.New(cfg, log)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		openEditor: runEditor,
	}
}

func newRootCommand() *cobra.Command {
	return newRootCommandWith(defaultDeps())
}

// newRootCommandWith creates the root command with explicit collaborators.
func newRootCommandWith(d deps) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "flashdeck",
		Short:         "Study and edit flashcard decks",
		Long:          "flashdeck talks to a flashdeck server to list decks, run study sessions, bulk edit cards and generate cards with AI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}

			cfg, err := config.LoadClient(cmd.Flags())
			if err != nil {
				return err
			}
			opts.cfg = cfg

			level := slog.LevelWarn
			if opts.Verbose {
				level, _ = logger.ParseLevel("debug")
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			cmd.SetContext(logger.WithLogger(cmd.Context(), opts.logger))
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&opts.Format, "format", "text", "output format (text|json)")
	pf.String("server-url", "http://localhost:8080", "flashdeck server URL")
	pf.String("token", "", "bearer token (or FLASHDECK_CLIENT_TOKEN)")
	pf.Int("timeout", 15, "request timeout in seconds")
	pf.Int("max-concurrency", 8, "maximum concurrent requests when committing edits (0 = unlimited)")

	cmd.AddCommand(newDecksCommand(opts, d))
	cmd.AddCommand(newStudyCommand(opts, d))
	cmd.AddCommand(newEditCommand(opts, d))
	cmd.AddCommand(newGenerateCommand(opts, d))

	return cmd
}

// connect builds the API client from resolved options.
func connect(opts *rootOptions, d deps) (deckAPI, error) {
	return d.newAPI(*opts.cfg, opts.logger)
}

// parseDeckID validates the deck argument.
func parseDeckID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid deck ID %q", arg)
	}
	return id, nil
}

// runEditor opens path in $VISUAL or $EDITOR, falling back to vi.
func runEditor(ctx context.Context, path string, stdin io.Reader, stdout, stderr io.Writer) error {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	c := exec.CommandContext(ctx, "sh", "-c", editor+` "$1"`, "flashdeck-editor", path)
	c.Stdin, c.Stdout, c.Stderr = stdin, stdout, stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", editor, err)
	}
	return nil
}
