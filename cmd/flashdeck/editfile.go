package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/reconcile"
	"gopkg.in/yaml.v3"
)

const editFileHeader = `# flashdeck edit file
# Change any front or back. Delete a card by removing its entry or by
# setting "delete: true". Do not change ids; new cards cannot be added here.
`

// editFile is the YAML form of an edit draft.
type editFile struct {
	Deck  string     `yaml:"deck"`
	Cards []editCard `yaml:"cards"`
}

type editCard struct {
	ID     string `yaml:"id"`
	Front  string `yaml:"front"`
	Back   string `yaml:"back"`
	Delete bool   `yaml:"delete,omitempty"`
}

func writeEditFile(w io.Writer, deckID uuid.UUID, cards []domain.Card) error {
	f := editFile{Deck: deckID.String(), Cards: make([]editCard, 0, len(cards))}
	for _, c := range cards {
		f.Cards = append(f.Cards, editCard{ID: c.ID.String(), Front: c.Front, Back: c.Back})
	}

	if _, err := io.WriteString(w, editFileHeader); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode edit file: %w", err)
	}
	return enc.Close()
}

// errEmptyEditFile is returned by readEditFile for a draft with no YAML
// document, such as an editor buffer saved empty or with only comments.
var errEmptyEditFile = errors.New("edit file is empty")

func readEditFile(r io.Reader) (*editFile, error) {
	var f editFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyEditFile
		}
		return nil, fmt.Errorf("parse edit file: %w", err)
	}
	return &f, nil
}

// applyEditFile replays f into rec: cards missing from f or flagged for
// deletion are marked deleted, changed sides are edited. Every changed
// side is validated first so a bad value never reaches the server.
func applyEditFile(rec *reconcile.Reconciler, deckID uuid.UUID, f *editFile) error {
	if f.Deck != "" && f.Deck != deckID.String() {
		return fmt.Errorf("edit file belongs to deck %s, not %s", f.Deck, deckID)
	}

	working := rec.Working()
	known := make(map[uuid.UUID]domain.Card, len(working))
	for _, c := range working {
		known[c.ID] = c
	}

	entries := make(map[uuid.UUID]editCard, len(f.Cards))
	var problems []error
	for i, e := range f.Cards {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			problems = append(problems, fmt.Errorf("card %d: invalid id %q", i+1, e.ID))
			continue
		}
		if _, ok := known[id]; !ok {
			problems = append(problems, fmt.Errorf("card %d: %s is not in this deck", i+1, id))
			continue
		}
		if _, dup := entries[id]; dup {
			problems = append(problems, fmt.Errorf("card %d: %s appears more than once", i+1, id))
			continue
		}
		entries[id] = e

		if e.Delete {
			continue
		}
		orig := known[id]
		if e.Front != orig.Front {
			if err := domain.ValidateFront(e.Front); err != nil {
				problems = append(problems, fmt.Errorf("card %d: %w", i+1, err))
			}
		}
		if e.Back != orig.Back {
			if err := domain.ValidateBack(e.Back); err != nil {
				problems = append(problems, fmt.Errorf("card %d: %w", i+1, err))
			}
		}
	}
	if len(problems) > 0 {
		return errors.Join(problems...)
	}

	for _, c := range working {
		e, ok := entries[c.ID]
		if !ok || e.Delete {
			if err := rec.MarkDeleted(c.ID); err != nil {
				return err
			}
			continue
		}
		if e.Front != c.Front {
			if err := rec.EditField(c.ID, reconcile.FieldFront, e.Front); err != nil {
				return err
			}
		}
		if e.Back != c.Back {
			if err := rec.EditField(c.ID, reconcile.FieldBack, e.Back); err != nil {
				return err
			}
		}
	}
	return nil
}
