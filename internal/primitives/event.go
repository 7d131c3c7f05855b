// StepEvent records one executed machine step.
//
// StepEvents are value types. Once created they should not be mutated; the
// publisher hands the same value to every subscriber.
//
// Example:
//
//	ev := NewStepEvent(1, "scan", '1', '0', MoveLeft, "carry")
package primitives

import "fmt"

type StepEvent struct {
	Step  int    `json:"step" yaml:"step"`
	State string `json:"state" yaml:"state"`
	Read  rune   `json:"read" yaml:"read"`
	Write rune   `json:"write" yaml:"write"`
	Move  Move   `json:"move" yaml:"move"`
	Next  string `json:"next" yaml:"next"`
}

// NewStepEvent creates and returns a new immutable StepEvent.
func NewStepEvent(step int, state string, read, write rune, move Move, next string) StepEvent {
	return StepEvent{
		Step:  step,
		State: state,
		Read:  read,
		Write: write,
		Move:  move,
		Next:  next,
	}
}

// String renders the step as "#n state 'r' -> 'w' M next".
func (e StepEvent) String() string {
	return fmt.Sprintf("#%d %s %q -> %q %s %s", e.Step, e.State, e.Read, e.Write, e.Move, e.Next)
}
