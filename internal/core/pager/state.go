package pager

import (
	"errors"
	"time"
)

// Phase is the fetch state of a Pager.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseLoadingFirst Phase = "loading-first-page"
	PhaseHasPages     Phase = "has-pages"
	PhaseFetchingNext Phase = "fetching-next-page"
)

// ErrInvalidTransition is returned when an invalid phase transition is attempted.
var ErrInvalidTransition = errors.New("invalid phase transition")

// ValidTransitions defines allowed phase transitions.
// Key is the current phase, value is the list of valid next phases.
var ValidTransitions = map[Phase][]Phase{
	PhaseIdle:         {PhaseLoadingFirst},
	PhaseLoadingFirst: {PhaseHasPages, PhaseIdle},
	PhaseHasPages:     {PhaseFetchingNext, PhaseIdle},
	PhaseFetchingNext: {PhaseHasPages, PhaseIdle},
}

// CanTransition checks if a transition from one phase to another is valid.
func CanTransition(from, to Phase) bool {
	for _, target := range ValidTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// Transition represents a phase change with metadata.
type Transition struct {
	Key       QueryKey
	From      Phase
	To        Phase
	Reason    string
	Timestamp time.Time
}

// NewTransition creates a new transition record.
func NewTransition(key QueryKey, from, to Phase, reason string) Transition {
	return Transition{
		Key:       key,
		From:      from,
		To:        to,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// IsValid returns true if this transition is allowed by the state machine.
func (t Transition) IsValid() bool {
	return CanTransition(t.From, t.To)
}

// Describe returns a human-readable description of a phase.
func Describe(p Phase) string {
	switch p {
	case PhaseIdle:
		return "Idle - no page loaded"
	case PhaseLoadingFirst:
		return "Loading - fetching the first page"
	case PhaseHasPages:
		return "Ready - at least one page loaded"
	case PhaseFetchingNext:
		return "Loading more - fetching the next page"
	default:
		return "Unknown phase"
	}
}
