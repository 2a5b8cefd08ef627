package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/reconcile"
	"github.com/spf13/cobra"
)

type editOptions struct {
	File   string
	Yes    bool
	DryRun bool
}

func newEditCommand(opts *rootOptions, d deps) *cobra.Command {
	eo := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit <deck-id>",
		Short: "Bulk edit the cards of a deck",
		Long: `Open every card of a deck in your editor as YAML, then send only the
cards you changed or removed.

With --file, the given file is read instead of opening an editor. If the
commit fails your edits are kept and you can retry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deckID, err := parseDeckID(args[0])
			if err != nil {
				return err
			}
			return runEdit(cmd, opts, d, eo, deckID)
		},
	}

	cmd.Flags().StringVarP(&eo.File, "file", "f", "", "read edits from this YAML file instead of opening an editor")
	cmd.Flags().BoolVarP(&eo.Yes, "yes", "y", false, "commit without asking for confirmation")
	cmd.Flags().BoolVar(&eo.DryRun, "dry-run", false, "show the changes without sending them")

	return cmd
}

func runEdit(cmd *cobra.Command, opts *rootOptions, d deps, eo *editOptions, deckID uuid.UUID) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	c, err := connect(opts, d)
	if err != nil {
		return err
	}

	cards, err := c.ListCards(ctx, deckID)
	if err != nil {
		return fmt.Errorf("load cards: %w", err)
	}

	rec, err := reconcile.New(deckID, c, opts.logger, reconcile.WithMaxConcurrency(opts.cfg.MaxConcurrency))
	if err != nil {
		return err
	}
	if err := rec.BeginEdit(cards); err != nil {
		return err
	}

	path := eo.File
	keepDraft := true
	if path == "" {
		path, err = editInTempFile(ctx, cmd, d, deckID, rec)
		if err != nil {
			return err
		}
		keepDraft = false
		defer func() {
			if !keepDraft {
				_ = os.Remove(path)
			}
		}()
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open edit file: %w", err)
	}
	ef, err := readEditFile(f)
	_ = f.Close()
	if errors.Is(err, errEmptyEditFile) {
		fmt.Fprintln(out, "Edit file is empty; nothing was sent.")
		return rec.CancelEdit()
	}
	if err != nil {
		keepDraft = true
		return fmt.Errorf("%w (your edits are in %s)", err, path)
	}

	if err := applyEditFile(rec, deckID, ef); err != nil {
		keepDraft = true
		return fmt.Errorf("%w\nyour edits are in %s", err, path)
	}

	plan := rec.Diff()
	renderPlan(out, deckID, plan, rec.Canonical())
	if plan.IsEmpty() || eo.DryRun {
		return rec.CancelEdit()
	}

	in := bufio.NewReader(cmd.InOrStdin())
	if !eo.Yes && !confirm(in, out, "Commit these changes? [y/N] ") {
		fmt.Fprintln(out, "Aborted; nothing was sent.")
		return rec.CancelEdit()
	}

	if err := commitWithRetry(ctx, rec, in, out); err != nil {
		keepDraft = true
		fmt.Fprintf(out, "Your edits are in %s. Run \"flashdeck edit %s --file %s\" to try again.\n", path, deckID, path)
		return err
	}

	fmt.Fprintf(out, "Saved %d change(s).\n", plan.Requests())
	return nil
}

// editInTempFile writes the working copy to a temporary file and opens it
// in the editor. It returns the file path.
func editInTempFile(
	ctx context.Context,
	cmd *cobra.Command,
	d deps,
	deckID uuid.UUID,
	rec *reconcile.Reconciler,
) (string, error) {
	tmp, err := os.CreateTemp("", "flashdeck-"+deckID.String()[:8]+"-*.yaml")
	if err != nil {
		return "", fmt.Errorf("create edit file: %w", err)
	}
	path := tmp.Name()

	if err := writeEditFile(tmp, deckID, rec.Working()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write edit file: %w", err)
	}

	if err := d.openEditor(ctx, path, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// commitWithRetry commits rec and, while the commit fails, offers to try
// again with the same draft.
func commitWithRetry(ctx context.Context, rec *reconcile.Reconciler, in *bufio.Reader, out io.Writer) error {
	for {
		err := rec.Commit(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, reconcile.ErrCommitFailed) {
			return err
		}

		fmt.Fprintln(out, "Failed to update cards. Some changes may have been saved; your edits are kept.")
		if !confirm(in, out, "Retry? [y/N] ") {
			return err
		}
	}
}

// confirm prints prompt and reports whether the answer starts with y.
// End of input counts as no.
func confirm(in *bufio.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y")
}
