package stateflow

import (
	"errors"
	"fmt"
)

var (
	// ErrNullArgument is returned when a required state, builder or effect is nil.
	ErrNullArgument = errors.New("required argument is missing")

	// ErrUnknownState is wrapped by *UnknownStateError when a transition target
	// has no registration.
	ErrUnknownState = errors.New("unknown state")

	// ErrUninitializedMachine is returned when events arrive before an initial
	// state was registered.
	ErrUninitializedMachine = errors.New("machine has no current state")

	// ErrAlreadyInitialized is returned by a second RegisterInitialState.
	ErrAlreadyInitialized = errors.New("initial state already registered")

	// ErrReservedStateID is returned when Any or None is used where a concrete
	// state id is required.
	ErrReservedStateID = errors.New("state id is reserved")

	// ErrDeferredBuild is returned when a deferred builder yields nil or a state
	// with another id. The builder is kept and retried on the next entry.
	ErrDeferredBuild = errors.New("deferred state build failed")
)

// UnknownStateError reports a transition whose target has neither a concrete
// nor a deferred registration.
type UnknownStateError struct {
	From  StateID
	To    StateID
	Event EventID
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("no state registered for %s (transition from %s on event %s)", e.To, e.From, e.Event)
}

func (e *UnknownStateError) Unwrap() error {
	return ErrUnknownState
}

// IsUnknownStateError reports whether err wraps an *UnknownStateError.
func IsUnknownStateError(err error) bool {
	var e *UnknownStateError
	return errors.As(err, &e)
}
