package reconcile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// Field names an editable side of a card.
type Field string

const (
	FieldFront Field = "front"
	FieldBack  Field = "back"
)

// ParseField converts a field name into a Field.
func ParseField(name string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(name))) {
	case FieldFront:
		return FieldFront, nil
	case FieldBack:
		return FieldBack, nil
	default:
		return "", invalidField(name)
	}
}

func invalidField(name string) error {
	return domain.NewValidationError("field", fmt.Sprintf("must be front or back, got %q", name), nil)
}

// Update is a partial card change carrying only the modified fields.
type Update struct {
	CardID  uuid.UUID
	Changes domain.CardUpdate
}

// Plan is the set of requests a commit will issue.
type Plan struct {
	Updates []Update
	Deletes []uuid.UUID
}

// IsEmpty reports whether committing the plan would contact storage.
func (p Plan) IsEmpty() bool {
	return len(p.Updates) == 0 && len(p.Deletes) == 0
}

// Requests returns the total number of requests in the plan.
func (p Plan) Requests() int {
	return len(p.Updates) + len(p.Deletes)
}

// buildPlan compares the working copy with the original snapshot.
// Cards in deleted are never updated.
func buildPlan(
	working []domain.Card,
	original map[uuid.UUID]domain.Card,
	deleted map[uuid.UUID]struct{},
) Plan {
	var plan Plan

	for _, card := range working {
		if _, gone := deleted[card.ID]; gone {
			continue
		}
		orig, ok := original[card.ID]
		if !ok {
			continue
		}

		var changes domain.CardUpdate
		if card.Front != orig.Front {
			front := card.Front
			changes.Front = &front
		}
		if card.Back != orig.Back {
			back := card.Back
			changes.Back = &back
		}
		if !changes.IsEmpty() {
			plan.Updates = append(plan.Updates, Update{CardID: card.ID, Changes: changes})
		}
	}

	for id := range deleted {
		plan.Deletes = append(plan.Deletes, id)
	}
	slices.SortFunc(plan.Deletes, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})

	return plan
}
