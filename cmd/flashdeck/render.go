package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/study"
	"github.com/phrazzld/flashdeck/internal/reconcile"
)

const studyKeys = "Keys: f/space flip, y correct, n incorrect, l/> next, h/< previous, r restart, q quit"

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderDecks(w io.Writer, decks []api.DeckResponse) error {
	if len(decks) == 0 {
		_, err := fmt.Fprintln(w, "No decks found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDESCRIPTION")
	for _, d := range decks {
		desc := "-"
		if d.Description != nil && *d.Description != "" {
			desc = truncate(*d.Description, 50)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, truncate(d.Title, 40), desc)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d deck(s)\n", len(decks))
	return err
}

// renderCard shows the current card of an active session.
func renderCard(w io.Writer, s *study.Session) {
	pos, ok := s.Position()
	if !ok {
		fmt.Fprintln(w, "This deck has no cards.")
		return
	}
	card, _ := s.Current()
	st := s.Stats()

	fmt.Fprintf(w, "\nCard %d of %d (progress %.0f%%, correct %d, incorrect %d)\n",
		pos+1, st.Total, st.Progress, st.Correct, st.Incorrect)
	fmt.Fprintf(w, "Q: %s\n", card.Front)
	if s.Flipped() {
		fmt.Fprintf(w, "A: %s\n", card.Back)
	} else {
		fmt.Fprintln(w, "A: (press f to reveal)")
	}
	if o := s.Outcome(pos); o != study.Unanswered {
		fmt.Fprintf(w, "Marked %s\n", o)
	}
}

// renderSummary shows the result of a finished pass.
func renderSummary(w io.Writer, st study.Stats) {
	fmt.Fprintln(w, "\nSession complete!")
	fmt.Fprintf(w, "Correct: %d  Incorrect: %d  Accuracy: %d%%\n", st.Correct, st.Incorrect, st.Accuracy)
	fmt.Fprintln(w, "Press r to study again or q to quit.")
}

// renderStopped reports an unfinished pass on quit.
func renderStopped(w io.Writer, st study.Stats) {
	fmt.Fprintf(w, "\nStopped after answering %d of %d cards (correct %d, incorrect %d).\n",
		st.Answered, st.Total, st.Correct, st.Incorrect)
}

// renderPlan describes what a commit will send, using canonical to show
// the previous text of each changed side.
func renderPlan(w io.Writer, deckID uuid.UUID, plan reconcile.Plan, canonical []domain.Card) {
	if plan.IsEmpty() {
		fmt.Fprintln(w, "No changes.")
		return
	}

	byID := make(map[uuid.UUID]domain.Card, len(canonical))
	for _, c := range canonical {
		byID[c.ID] = c
	}

	fmt.Fprintf(w, "Changes to deck %s:\n", deckID)
	for _, u := range plan.Updates {
		orig := byID[u.CardID]
		fmt.Fprintf(w, "  update %s\n", u.CardID)
		if u.Changes.Front != nil {
			fmt.Fprintf(w, "    front: %q -> %q\n", orig.Front, *u.Changes.Front)
		}
		if u.Changes.Back != nil {
			fmt.Fprintf(w, "    back:  %q -> %q\n", orig.Back, *u.Changes.Back)
		}
	}
	for _, id := range plan.Deletes {
		fmt.Fprintf(w, "  delete %s (%q)\n", id, truncate(byID[id].Front, 40))
	}
	fmt.Fprintf(w, "%d update(s), %d delete(s)\n", len(plan.Updates), len(plan.Deletes))
}

func renderGenerated(w io.Writer, resp *api.GenerateCardsResponse) {
	fmt.Fprintf(w, "Generated %d card(s).\n", resp.Count)
	for i, c := range resp.Cards {
		fmt.Fprintf(w, "%3d. %s\n     %s\n", i+1, c.Front, c.Back)
	}
}

func truncate(s string, n int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}
