// Package scroll holds the fetch lifecycle of an infinitely scrolling
// gallery as a pure transition function.
package scroll

import "fmt"

// Status gates whether a fetch may be issued.
type Status int

const (
	Idle Status = iota
	Loading
	Error
	Finished
)

func (st Status) String() string {
	switch st {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("status(%d)", int(st))
}

// State is replaced, never mutated, on each event.
type State struct {
	Refs   []string // image locators in load order
	Page   int      // next page to request, starts at 1
	Status Status
}

// New returns the state of a freshly mounted gallery.
func New() State {
	return State{
		Page:   1,
		Status: Idle,
	}
}

// Reduce maps the current state and an event to the next state.
// It panics on a status it does not know.
func Reduce(st State, ev Event) State {

	switch st.Status {

	case Idle, Error:
		if _, ok := ev.(StartFetch); ok {
			st.Status = Loading
		}
		return st

	case Loading:
		switch ev := ev.(type) {
		case FetchError:
			st.Status = Error
		case ReachedEnd:
			st.Status = Finished
		case FetchSuccess:
			refs := make([]string, 0, len(st.Refs)+len(ev.Refs))
			refs = append(refs, st.Refs...)
			st.Refs = append(refs, ev.Refs...)
			st.Page++
			st.Status = Idle
		}
		return st

	case Finished:
		return st

	default:
		panic(fmt.Sprintf("unknown scroll status: %d", int(st.Status)))
	}
}

// Transition records one applied event.
type Transition struct {
	From  State
	To    State
	Event Event
}

// Step applies ev to st.
func Step(st State, ev Event) Transition {
	return Transition{
		From:  st,
		To:    Reduce(st, ev),
		Event: ev,
	}
}

// EnteredLoading is true when the fetch must be started.
func (tr Transition) EnteredLoading() bool {
	return tr.To.Status == Loading && tr.From.Status != Loading
}

// Changed reports whether the status moved.
func (tr Transition) Changed() bool {
	return tr.From.Status != tr.To.Status
}
