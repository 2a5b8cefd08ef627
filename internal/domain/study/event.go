package study

import "fmt"

// Event is an input that drives a Session. Presentation layers translate
// key presses or button clicks into events and feed them through Apply.
type Event int

const (
	EventFlip Event = iota + 1
	EventReveal
	EventMarkCorrect
	EventMarkIncorrect
	EventNext
	EventPrevious
	EventRestart
)

var eventNames = map[Event]string{
	EventFlip:          "flip",
	EventReveal:        "reveal",
	EventMarkCorrect:   "correct",
	EventMarkIncorrect: "incorrect",
	EventNext:          "next",
	EventPrevious:      "previous",
	EventRestart:       "restart",
}

// String returns the event name.
func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// Apply dispatches e to the matching transition. Unknown events are ignored.
func (s *Session) Apply(e Event) {
	switch e {
	case EventFlip:
		s.Flip()
	case EventReveal:
		s.Reveal()
	case EventMarkCorrect:
		s.Mark(true)
	case EventMarkIncorrect:
		s.Mark(false)
	case EventNext:
		s.Next()
	case EventPrevious:
		s.Previous()
	case EventRestart:
		s.Restart()
	}
}

// Replay applies events in order.
func (s *Session) Replay(events ...Event) {
	for _, e := range events {
		s.Apply(e)
	}
}
