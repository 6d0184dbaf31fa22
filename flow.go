package stateflow

import "fmt"

// Transition moves the machine to another state when an event is processed
// in its source state. Transitions are built with On and are immutable.
type Transition struct {
	from  StateID
	to    StateID
	event EventID
}

// From returns the source state, possibly Any.
func (t Transition) From() StateID { return t.from }

// To returns the target state.
func (t Transition) To() StateID { return t.to }

// Event returns the triggering event.
func (t Transition) Event() EventID { return t.event }

func (t Transition) String() string {
	return fmt.Sprintf("%s -[%s]-> %s", t.from, t.event, t.to)
}

func (t Transition) source() StateID  { return t.from }
func (t Transition) trigger() EventID { return t.event }

// Execution fires a side effect when an event is processed in its source
// state, without changing state.
type Execution struct {
	from   StateID
	event  EventID
	name   string
	effect func()
}

// From returns the source state, possibly Any.
func (x Execution) From() StateID { return x.from }

// Event returns the triggering event.
func (x Execution) Event() EventID { return x.event }

// Name returns the effect name, empty for anonymous effects.
func (x Execution) Name() string { return x.name }

func (x Execution) String() string {
	name := x.name
	if name == "" {
		name = "effect"
	}
	return fmt.Sprintf("%s -[%s]-> %s()", x.from, x.event, name)
}

func (x Execution) source() StateID  { return x.from }
func (x Execution) trigger() EventID { return x.event }

// FlowBuilder builds a Transition or an Execution in two steps:
//
//	t, err := stateflow.On(LoadingCompleted).From(loading).To(menu)
//	x, err := stateflow.On(CloseApp).From(stateflow.Any).Do(shutdown)
//
// Builders are values. Every step returns a copy, so a builder can be reused
// and finalising it twice yields two equal, independent entries.
type FlowBuilder struct {
	event EventID
	from  StateID
	err   error
}

// On starts a flow reacting to event.
func On(event EventID) FlowBuilder {
	return FlowBuilder{event: event}
}

// From sets the source state. Use Any for a wildcard source.
func (b FlowBuilder) From(id StateID) FlowBuilder {
	b.from = id
	return b
}

// FromState sets the source to the id of state.
func (b FlowBuilder) FromState(state State) FlowBuilder {
	if isNil(state) {
		b.err = fmt.Errorf("source state: %w", ErrNullArgument)
		return b
	}
	return b.From(state.ID())
}

// To finalises a Transition to the target state.
func (b FlowBuilder) To(id StateID) (Transition, error) {
	if err := b.validate(); err != nil {
		return Transition{}, err
	}
	switch {
	case id.IsNone():
		return Transition{}, fmt.Errorf("target state: %w", ErrNullArgument)
	case id.IsAny():
		return Transition{}, fmt.Errorf("target state %s: %w", id, ErrReservedStateID)
	}
	return Transition{from: b.from, to: id, event: b.event}, nil
}

// ToState finalises a Transition to the id of state.
func (b FlowBuilder) ToState(state State) (Transition, error) {
	if isNil(state) {
		return Transition{}, fmt.Errorf("target state: %w", ErrNullArgument)
	}
	return b.To(state.ID())
}

// Do finalises an anonymous Execution.
func (b FlowBuilder) Do(effect func()) (Execution, error) {
	return b.DoNamed("", effect)
}

// DoNamed finalises an Execution whose effect is exported under name.
func (b FlowBuilder) DoNamed(name string, effect func()) (Execution, error) {
	if err := b.validate(); err != nil {
		return Execution{}, err
	}
	if effect == nil {
		return Execution{}, fmt.Errorf("side effect: %w", ErrNullArgument)
	}
	return Execution{from: b.from, event: b.event, name: name, effect: effect}, nil
}

func (b FlowBuilder) validate() error {
	if b.err != nil {
		return b.err
	}
	if b.from.IsNone() {
		return fmt.Errorf("source state: %w", ErrNullArgument)
	}
	return nil
}

// Must returns e or panics if err is not nil. It is meant for static tables:
//
//	m.RegisterTransition(stateflow.Must(stateflow.On(Quit).From(stateflow.Any).To(exit)))
func Must[E any](e E, err error) E {
	if err != nil {
		panic(err)
	}
	return e
}
