package stateflow

import "fmt"

// registry holds concrete and deferred states. An id is held by at most one of
// the two maps; a deferred builder is replaced by its result exactly once.
type registry[T State] struct {
	states   map[StateID]T
	deferred map[StateID]func() T
	order    []StateID
}

func newRegistry[T State]() *registry[T] {
	return &registry[T]{
		states:   make(map[StateID]T),
		deferred: make(map[StateID]func() T),
	}
}

func (r *registry[T]) contains(id StateID) bool {
	_, concrete := r.states[id]
	_, deferred := r.deferred[id]
	return concrete || deferred
}

// registerConcrete adds state unless its id is already known.
// First registration wins.
func (r *registry[T]) registerConcrete(state T) bool {
	id := state.ID()
	if r.contains(id) {
		return false
	}
	r.states[id] = state
	r.order = append(r.order, id)
	return true
}

// registerDeferred records build for id unless id is already known.
func (r *registry[T]) registerDeferred(id StateID, build func() T) bool {
	if r.contains(id) {
		return false
	}
	r.deferred[id] = build
	r.order = append(r.order, id)
	return true
}

func (r *registry[T]) resolve(id StateID) (T, bool) {
	s, ok := r.states[id]
	return s, ok
}

func (r *registry[T]) isDeferred(id StateID) bool {
	_, ok := r.deferred[id]
	return ok
}

// build runs the deferred builder for id and installs its result.
// A failed build leaves the deferred entry in place.
func (r *registry[T]) build(id StateID) (T, error) {
	var zero T
	fn, ok := r.deferred[id]
	if !ok {
		return zero, fmt.Errorf("state %s: %w", id, ErrUnknownState)
	}
	s := fn()
	if isNil(s) {
		return zero, fmt.Errorf("state %s: builder returned nil: %w", id, ErrDeferredBuild)
	}
	if got := s.ID(); got != id {
		return zero, fmt.Errorf("state %s: builder returned state %s: %w", id, got, ErrDeferredBuild)
	}
	delete(r.deferred, id)
	r.states[id] = s
	return s, nil
}

// ids returns every known id in registration order.
func (r *registry[T]) ids() []StateID {
	out := make([]StateID, len(r.order))
	copy(out, r.order)
	return out
}
