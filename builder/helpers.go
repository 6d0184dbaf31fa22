// Package builder provides callback backed states for callers that do not
// want a struct per state.
package builder

import (
	"sync/atomic"

	"github.com/comalice/stateflow"
)

// ID shortcut
type ID = stateflow.StateID

// FuncState is a State whose lifecycle calls run optional callbacks.
type FuncState struct {
	id           ID
	name         string
	onActivate   func()
	onDeactivate func()
	active       atomic.Bool
}

// Option pattern for configuring states
type Option func(*FuncState)

// New creates a state with the given id.
func New(id ID, opts ...Option) *FuncState {
	s := &FuncState{id: id}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Named creates a concrete state from an integer id and a display name.
func Named(id int, name string, opts ...Option) *FuncState {
	return New(stateflow.ID(id), append([]Option{WithName(name)}, opts...)...)
}

// OnActivate runs fn every time the state becomes current.
func OnActivate(fn func()) Option {
	return func(s *FuncState) { s.onActivate = fn }
}

// OnDeactivate runs fn on registration and every time the state is left.
func OnDeactivate(fn func()) Option {
	return func(s *FuncState) { s.onDeactivate = fn }
}

// WithName sets the name exported by Manager.Describe.
func WithName(name string) Option {
	return func(s *FuncState) { s.name = name }
}

func (s *FuncState) ID() ID { return s.id }

// Name returns the configured name, or the id.
func (s *FuncState) Name() string {
	if s.name == "" {
		return s.id.String()
	}
	return s.name
}

func (s *FuncState) Activate() {
	s.active.Store(true)
	if s.onActivate != nil {
		s.onActivate()
	}
}

func (s *FuncState) Deactivate() {
	s.active.Store(false)
	if s.onDeactivate != nil {
		s.onDeactivate()
	}
}

// Active reports whether the state is the current one.
func (s *FuncState) Active() bool {
	return s.active.Load()
}

// Deferred wraps a constructor for Manager.RegisterDeferredState.
func Deferred(id int, name string, opts ...Option) (ID, func() *FuncState) {
	return stateflow.ID(id), func() *FuncState {
		return Named(id, name, opts...)
	}
}
