package study

import (
	"github.com/phrazzld/flashdeck/internal/domain"
)

// State is the lifecycle state of a Session.
type State int

const (
	StateEmpty State = iota
	StateActive
	StateFinished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome is the result recorded for one position in the pass.
type Outcome int

const (
	Unanswered Outcome = iota
	Correct
	Incorrect
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Unanswered:
		return "unanswered"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// Session is one study pass over a shuffled copy of a deck's cards.
// A Session is owned by a single controller and is not safe for concurrent use.
type Session struct {
	source   []domain.Card
	cards    []domain.Card
	outcomes []Outcome
	position int
	flipped  bool
	rng      Rand
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used for shuffling.
func WithRand(rng Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// New starts a session over cards. The input is copied and shuffled;
// the caller's slice keeps its order.
func New(cards []domain.Card, opts ...Option) *Session {
	s := &Session{
		source: append([]domain.Card(nil), cards...),
		rng:    defaultRand{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Restart()
	return s
}

// Restart reshuffles the cards and clears every outcome. It is valid in any state.
func (s *Session) Restart() {
	s.cards = append(s.cards[:0], s.source...)
	shuffle(s.cards, s.rng)
	s.outcomes = make([]Outcome, len(s.cards))
	s.position = 0
	s.flipped = false
}

// State derives the current lifecycle state.
func (s *Session) State() State {
	if len(s.cards) == 0 {
		return StateEmpty
	}
	for _, o := range s.outcomes {
		if o == Unanswered {
			return StateActive
		}
	}
	return StateFinished
}

// Flip toggles between the front and back of the current card.
func (s *Session) Flip() {
	if s.State() != StateActive {
		return
	}
	s.flipped = !s.flipped
}

// Reveal shows the back of the current card.
func (s *Session) Reveal() {
	if s.State() != StateActive {
		return
	}
	s.flipped = true
}

// Mark records an outcome at the current position, replacing any earlier
// one, then moves to the next card unless this is the last position.
func (s *Session) Mark(correct bool) {
	if s.State() != StateActive {
		return
	}
	if correct {
		s.outcomes[s.position] = Correct
	} else {
		s.outcomes[s.position] = Incorrect
	}
	if s.position < len(s.cards)-1 {
		s.position++
	}
	s.flipped = false
}

// Next moves forward one card and shows the front. The position is
// unchanged at the last card.
func (s *Session) Next() {
	s.move(1)
}

// Previous moves back one card and shows the front. The position is
// unchanged at the first card.
func (s *Session) Previous() {
	s.move(-1)
}

func (s *Session) move(delta int) {
	if s.State() != StateActive {
		return
	}
	s.flipped = false
	target := s.position + delta
	if target < 0 || target >= len(s.cards) {
		return
	}
	s.position = target
}

// Position returns the current index. ok is false for an empty session.
func (s *Session) Position() (pos int, ok bool) {
	if len(s.cards) == 0 {
		return 0, false
	}
	return s.position, true
}

// Current returns the card at the current position.
func (s *Session) Current() (domain.Card, bool) {
	if len(s.cards) == 0 {
		return domain.Card{}, false
	}
	return s.cards[s.position], true
}

// Flipped reports whether the back of the current card is showing.
func (s *Session) Flipped() bool {
	return s.flipped
}

// Len returns the number of cards in the pass.
func (s *Session) Len() int {
	return len(s.cards)
}

// Outcome returns the outcome at position p, or Unanswered when p is out of range.
func (s *Session) Outcome(p int) Outcome {
	if p < 0 || p >= len(s.outcomes) {
		return Unanswered
	}
	return s.outcomes[p]
}

// Outcomes returns a copy of every outcome in pass order.
func (s *Session) Outcomes() []Outcome {
	return append([]Outcome(nil), s.outcomes...)
}

// Cards returns a copy of the cards in pass order.
func (s *Session) Cards() []domain.Card {
	return append([]domain.Card(nil), s.cards...)
}
