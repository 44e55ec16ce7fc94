// Package session holds the state of an interactive rangeset session.
//
// State is a value: each input change produces a new State from the previous one, with a freshly normalized result.
// Nothing is shared or mutated between updates.
package session

import (
	"github.com/johnstarich/rangeset"
	"github.com/johnstarich/rangeset/internal/pipe"
)

// Render parses and normalizes input text. Used by every surface to turn raw input into a canonical set.
var Render = pipe.Then( //nolint:gochecknoglobals // Stateless pipeline of pure functions.
	pipe.Stage[string, []rangeset.Range](rangeset.Parse),
	pipe.Total(rangeset.Normalize),
)

// State is a snapshot of a session: the current input and the last successfully normalized result
type State struct {
	// Input is the raw text most recently entered
	Input string
	// Result is the canonical set from the last input which parsed successfully
	Result rangeset.RangeSet
	// Display is Result formatted for the grid
	Display rangeset.DisplayModel
	// Payload is Result serialized for copying
	Payload string
	// Problem is the parse error for Input, or nil if Input produced Result
	Problem error
}

// New returns the State for the initial input
func New(input string) State {
	return Update(State{}, input)
}

// Update returns the State after input changes to 'input'.
// If input fails to parse, the previous result stays in place and Problem describes the failure.
func Update(prev State, input string) State {
	next := prev
	next.Input = input
	set, err := Render(input)
	if err != nil {
		next.Problem = err
		return next
	}
	next.Problem = nil
	next.Result = set
	next.Display = rangeset.Format(set)
	next.Payload = rangeset.Serialize(set)
	return next
}

// Copy is a request to place Text on the clipboard. It is created by State.Copy and carried out by a clipboard adapter.
type Copy struct {
	Text string
}

// Copy returns the command to copy the current result
func (s State) Copy() Copy {
	return Copy{Text: s.Payload}
}

// Stale returns true if the displayed result does not reflect the current input
func (s State) Stale() bool {
	return s.Problem != nil
}
