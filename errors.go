package stepper

import (
	"errors"
	"fmt"
)

// ErrStateless is returned by New when the state list is empty.
var ErrStateless = errors.New("stepper: machine cannot be stateless")

// ErrUnknownState is returned when restoring a snapshot whose current state
// is not part of the machine's state list.
type ErrUnknownState struct {
	State State
}

func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("stepper: unknown state %q encountered during unmarshaling", e.State)
}

// ErrUnknownAction is returned when a definition document names an action
// that the registry cannot resolve.
type ErrUnknownAction struct {
	// Name is the action name as written in the document.
	Name string
	// State is the state whose enter, exit or transition referenced the action.
	State State
}

func (e *ErrUnknownAction) Error() string {
	return fmt.Sprintf("stepper: unknown action %q referenced by state %q", e.Name, e.State)
}

// ErrDefinition is returned when a definition document cannot be decoded.
// It wraps the underlying error, allowing it to be inspected using
// errors.Is and errors.As.
type ErrDefinition struct {
	Err error
}

func (e *ErrDefinition) Error() string {
	return fmt.Sprintf("stepper: invalid definition: %v", e.Err)
}

// Unwrap provides compatibility with the standard library's errors package.
func (e *ErrDefinition) Unwrap() error { return e.Err }
