package reconcile

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/sourcegraph/conc/pool"
)

// CardWriter applies single-card changes to durable storage. Every call
// must re-check that the acting identity owns deckID.
type CardWriter interface {
	UpdateCard(ctx context.Context, deckID, cardID uuid.UUID, upd domain.CardUpdate) error
	DeleteCard(ctx context.Context, deckID, cardID uuid.UUID) error
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithMaxConcurrency caps the number of in-flight requests during a commit.
// Zero or a negative value means no cap.
func WithMaxConcurrency(n int) Option {
	return func(r *Reconciler) {
		r.maxConcurrency = n
	}
}

// Reconciler tracks one edit pass over a deck's cards.
// It is safe for concurrent use; draft mutations are rejected while a
// commit is in flight.
type Reconciler struct {
	deckID         uuid.UUID
	writer         CardWriter
	logger         *slog.Logger
	maxConcurrency int

	mu         sync.Mutex
	canonical  []domain.Card
	original   map[uuid.UUID]domain.Card
	working    []domain.Card
	deleted    map[uuid.UUID]struct{}
	editing    bool
	committing bool
	stale      bool
}

// New creates a Reconciler for deckID that commits through writer.
func New(deckID uuid.UUID, writer CardWriter, log *slog.Logger, opts ...Option) (*Reconciler, error) {
	if writer == nil {
		return nil, ErrNilWriter
	}
	if log == nil {
		log = slog.Default()
	}

	r := &Reconciler{
		deckID: deckID,
		writer: writer,
		logger: log.With(
			slog.String("component", "reconciler"),
			slog.String("deck_id", deckID.String()),
		),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// BeginEdit enters edit mode over cards, which become the canonical
// snapshot. Any previous draft is discarded.
func (r *Reconciler) BeginEdit(cards []domain.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.committing {
		return ErrCommitInProgress
	}

	r.canonical = append([]domain.Card(nil), cards...)
	r.original = make(map[uuid.UUID]domain.Card, len(cards))
	for _, c := range cards {
		r.original[c.ID] = c
	}
	r.working = append([]domain.Card(nil), cards...)
	r.deleted = make(map[uuid.UUID]struct{})
	r.editing = true
	r.stale = false
	return nil
}

// EditField sets one side of a card in the working copy. Values are not
// validated here; storage rejects empty or oversized text on commit.
// Unknown or deleted card IDs are ignored.
func (r *Reconciler) EditField(cardID uuid.UUID, field Field, value string) error {
	if field != FieldFront && field != FieldBack {
		return invalidField(string(field))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.committing {
		return ErrCommitInProgress
	}
	if !r.editing {
		return nil
	}

	for i := range r.working {
		if r.working[i].ID != cardID {
			continue
		}
		if field == FieldFront {
			r.working[i].Front = value
		} else {
			r.working[i].Back = value
		}
		return nil
	}
	return nil
}

// MarkDeleted hides a card from the working copy and queues its deletion.
// Marking the same card again has no further effect.
func (r *Reconciler) MarkDeleted(cardID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.committing {
		return ErrCommitInProgress
	}
	if !r.editing {
		return nil
	}
	if _, known := r.original[cardID]; !known {
		return nil
	}

	r.deleted[cardID] = struct{}{}
	for i := range r.working {
		if r.working[i].ID == cardID {
			r.working = append(r.working[:i], r.working[i+1:]...)
			break
		}
	}
	return nil
}

// CancelEdit discards the draft and returns to the canonical snapshot.
func (r *Reconciler) CancelEdit() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.committing {
		return ErrCommitInProgress
	}
	r.resetLocked()
	return nil
}

// Diff returns the requests the next commit would issue.
func (r *Reconciler) Diff() Plan {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.editing {
		return Plan{}
	}
	return buildPlan(r.working, r.original, r.deleted)
}

// Commit sends every changed card and every deletion to the writer
// concurrently and waits for all of them to settle. Caller cancellation
// does not interrupt requests already in flight.
//
// With nothing to send, Commit leaves edit mode without contacting storage.
// Commit outside edit mode is a no-op.
func (r *Reconciler) Commit(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, r.logger)

	r.mu.Lock()
	if r.committing {
		r.mu.Unlock()
		return ErrCommitInProgress
	}
	if !r.editing {
		r.mu.Unlock()
		return nil
	}

	plan := buildPlan(r.working, r.original, r.deleted)
	if plan.IsEmpty() {
		r.finishLocked()
		r.mu.Unlock()
		log.Debug("nothing to commit")
		return nil
	}
	r.committing = true
	r.mu.Unlock()

	start := time.Now()
	err := r.execute(context.WithoutCancel(ctx), plan)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.committing = false

	if err != nil {
		r.stale = true
		log.Error("bulk commit failed",
			slog.String("error", err.Error()),
			slog.Int("updates", len(plan.Updates)),
			slog.Int("deletes", len(plan.Deletes)),
			slog.Duration("duration", time.Since(start)))
		return &CommitError{Requests: plan.Requests(), Err: err}
	}

	r.finishLocked()
	log.Info("bulk commit succeeded",
		slog.Int("updates", len(plan.Updates)),
		slog.Int("deletes", len(plan.Deletes)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// execute fans the plan out through an error pool. Wait returns only after
// every request has returned.
func (r *Reconciler) execute(ctx context.Context, plan Plan) error {
	p := pool.New().WithErrors()
	if r.maxConcurrency > 0 {
		p = p.WithMaxGoroutines(r.maxConcurrency)
	}

	for _, upd := range plan.Updates {
		p.Go(func() error {
			return r.writer.UpdateCard(ctx, r.deckID, upd.CardID, upd.Changes)
		})
	}
	for _, id := range plan.Deletes {
		p.Go(func() error {
			return r.writer.DeleteCard(ctx, r.deckID, id)
		})
	}

	return p.Wait()
}

func (r *Reconciler) finishLocked() {
	r.canonical = append([]domain.Card(nil), r.working...)
	r.stale = false
	r.resetLocked()
}

func (r *Reconciler) resetLocked() {
	r.working = nil
	r.original = nil
	r.deleted = nil
	r.editing = false
}

// Editing reports whether a draft is open.
func (r *Reconciler) Editing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.editing
}

// Committing reports whether a commit is in flight.
func (r *Reconciler) Committing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.committing
}

// Stale reports whether the last commit failed, meaning storage may be
// ahead of the canonical snapshot until it is re-read.
func (r *Reconciler) Stale() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stale
}

// Working returns a copy of the visible working copy, or the canonical
// snapshot when no draft is open.
func (r *Reconciler) Working() []domain.Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.editing {
		return append([]domain.Card(nil), r.canonical...)
	}
	return append([]domain.Card(nil), r.working...)
}

// Canonical returns a copy of the last committed snapshot.
func (r *Reconciler) Canonical() []domain.Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Card(nil), r.canonical...)
}

// Deleted returns the IDs marked for deletion in commit order.
func (r *Reconciler) Deleted() []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return buildPlan(nil, nil, r.deleted).Deletes
}
