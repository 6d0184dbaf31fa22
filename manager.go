package stateflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager drives a set of caller supplied states through registered
// transitions and fires registered executions.
type Manager[T State] struct {
	id          string
	current     StateID
	initial     StateID
	registry    *registry[T]
	transitions *flowTable[Transition]
	executions  *flowTable[Execution]

	logger    *slog.Logger
	publisher Publisher
	persister Persister
	mu        *sync.Mutex // nil unless WithLocking
}

// NewManager creates a Manager without a current state. Call
// RegisterInitialState before processing events.
func NewManager[T State](opts ...Option) *Manager[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Manager[T]{
		id:          o.machineID,
		registry:    newRegistry[T](),
		transitions: newFlowTable[Transition](),
		executions:  newFlowTable[Execution](),
		logger:      o.logger.With(slog.String("machine", o.machineID)),
		publisher:   o.publisher,
		persister:   o.persister,
	}
	if o.locking {
		m.mu = &sync.Mutex{}
	}
	return m
}

// New creates a Manager whose current state is initial, already activated.
func New[T State](initial T, opts ...Option) (*Manager[T], error) {
	m := NewManager[T](opts...)
	if err := m.RegisterInitialState(initial); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager[T]) lock() {
	if m.mu != nil {
		m.mu.Lock()
	}
}

func (m *Manager[T]) unlock() {
	if m.mu != nil {
		m.mu.Unlock()
	}
}

// MachineID returns the name given WithMachineID.
func (m *Manager[T]) MachineID() string {
	return m.id
}

// RegisterInitialState registers state, activates it and makes it current.
// It may succeed only once per Manager. When the id is already registered the
// first registration wins and that instance is activated instead.
func (m *Manager[T]) RegisterInitialState(state T) error {
	m.lock()
	defer m.unlock()

	if isNil(state) {
		return fmt.Errorf("initial state: %w", ErrNullArgument)
	}
	if !m.current.IsNone() {
		return fmt.Errorf("initial state %s: %w", m.current, ErrAlreadyInitialized)
	}
	id := state.ID()
	if !id.IsConcrete() {
		return fmt.Errorf("initial state %s: %w", id, ErrReservedStateID)
	}

	m.registry.registerConcrete(state)
	target, err := m.resolveTarget(id)
	if err != nil {
		return err
	}
	target.Activate()
	m.current = id
	m.initial = id

	m.logger.Debug("initial state registered", slog.String("state", id.String()))
	return nil
}

// RegisterState adds state and deactivates it. Registering an id that is
// already known, concretely or deferred, is silently ignored.
func (m *Manager[T]) RegisterState(state T) error {
	m.lock()
	defer m.unlock()

	if isNil(state) {
		return fmt.Errorf("state: %w", ErrNullArgument)
	}
	id := state.ID()
	if !id.IsConcrete() {
		return fmt.Errorf("state %s: %w", id, ErrReservedStateID)
	}
	if !m.registry.registerConcrete(state) {
		m.logger.Debug("duplicate state ignored", slog.String("state", id.String()))
		return nil
	}
	state.Deactivate()

	m.logger.Debug("state registered", slog.String("state", id.String()))
	return nil
}

// RegisterDeferredState records build as the constructor of id. It runs on the
// first transition into id; its result must report id. Ignored when id is
// already known.
func (m *Manager[T]) RegisterDeferredState(id StateID, build func() T) error {
	m.lock()
	defer m.unlock()

	switch {
	case build == nil:
		return fmt.Errorf("deferred state %s builder: %w", id, ErrNullArgument)
	case id.IsNone():
		return fmt.Errorf("deferred state id: %w", ErrNullArgument)
	case id.IsAny():
		return fmt.Errorf("deferred state %s: %w", id, ErrReservedStateID)
	}
	if !m.registry.registerDeferred(id, build) {
		m.logger.Debug("duplicate deferred state ignored", slog.String("state", id.String()))
		return nil
	}

	m.logger.Debug("deferred state registered", slog.String("state", id.String()))
	return nil
}

// RegisterTransition appends t to the transition table. Entries take effect
// on the next ProcessEvent.
func (m *Manager[T]) RegisterTransition(t Transition) error {
	m.lock()
	defer m.unlock()

	if t.from.IsNone() || t.to.IsNone() {
		return fmt.Errorf("transition: %w", ErrNullArgument)
	}
	if !t.to.IsConcrete() {
		return fmt.Errorf("transition target %s: %w", t.to, ErrReservedStateID)
	}
	m.transitions.add(t)

	m.logger.Debug("transition registered", slog.String("flow", t.String()))
	return nil
}

// RegisterExecution appends x to the execution table. Entries take effect on
// the next ProcessEvent.
func (m *Manager[T]) RegisterExecution(x Execution) error {
	m.lock()
	defer m.unlock()

	if x.from.IsNone() || x.effect == nil {
		return fmt.Errorf("execution: %w", ErrNullArgument)
	}
	m.executions.add(x)

	m.logger.Debug("execution registered", slog.String("flow", x.String()))
	return nil
}

// AddTransition is shorthand for RegisterTransition(On(event).From(from).To(to)).
func (m *Manager[T]) AddTransition(from StateID, event EventID, to StateID) error {
	t, err := On(event).From(from).To(to)
	if err != nil {
		return err
	}
	return m.RegisterTransition(t)
}

// AddExecution is shorthand for RegisterExecution(On(event).From(from).Do(effect)).
func (m *Manager[T]) AddExecution(from StateID, event EventID, effect func()) error {
	x, err := On(event).From(from).Do(effect)
	if err != nil {
		return err
	}
	return m.RegisterExecution(x)
}

// ProcessEvent dispatches event against the transition table and then the
// execution table, both resolved for the state current on entry. Unmatched
// events are no-ops. A failed transition leaves the previous state current
// and active; the matching execution, if any, still fires.
func (m *Manager[T]) ProcessEvent(ctx context.Context, event EventID) error {
	m.lock()
	defer m.unlock()

	source := m.current
	if source.IsNone() {
		return ErrUninitializedMachine
	}

	var err error
	if t, ok := m.transitions.resolve(source, event); ok {
		err = m.transition(ctx, t, source, event)
	}
	if x, ok := m.executions.resolve(source, event); ok {
		m.logger.DebugContext(ctx, "execution fired",
			slog.String("flow", x.String()),
			slog.String("state", source.String()),
		)
		x.effect()
	}
	return err
}

// transition moves from source to t.To. The target is resolved before the
// source is deactivated.
func (m *Manager[T]) transition(ctx context.Context, t Transition, source StateID, event EventID) error {
	target, err := m.resolveTarget(t.to)
	if err != nil {
		var unknown *UnknownStateError
		if errors.As(err, &unknown) {
			unknown.From = source
			unknown.Event = event
		}
		m.logger.WarnContext(ctx, "transition aborted",
			slog.String("flow", t.String()),
			slog.String("state", source.String()),
			slog.Any("error", err),
		)
		return err
	}

	if prev, ok := m.registry.resolve(source); ok {
		prev.Deactivate()
	}
	target.Activate()
	m.current = t.to

	m.logger.InfoContext(ctx, "state changed",
		slog.String("from", source.String()),
		slog.String("to", t.to.String()),
		slog.String("event", event.String()),
	)
	m.notify(ctx, source, t.to, event)
	return nil
}

// resolveTarget returns the concrete state for id, building it when deferred.
func (m *Manager[T]) resolveTarget(id StateID) (T, error) {
	if s, ok := m.registry.resolve(id); ok {
		return s, nil
	}
	if m.registry.isDeferred(id) {
		s, err := m.registry.build(id)
		if err != nil {
			var zero T
			return zero, err
		}
		m.logger.Debug("deferred state built", slog.String("state", id.String()))
		return s, nil
	}
	var zero T
	return zero, &UnknownStateError{To: id}
}

func (m *Manager[T]) notify(ctx context.Context, from, to StateID, event EventID) {
	if m.publisher != nil {
		rec := TransitionRecord{
			ID:        uuid.New(),
			MachineID: m.id,
			From:      from,
			To:        to,
			Event:     event,
			Timestamp: time.Now(),
		}
		if err := m.publisher.Publish(ctx, rec); err != nil {
			m.logger.WarnContext(ctx, "publish transition failed", slog.Any("error", err))
		}
	}
	if m.persister != nil {
		if err := m.persister.Save(ctx, m.snapshot()); err != nil {
			m.logger.WarnContext(ctx, "save snapshot failed", slog.Any("error", err))
		}
	}
}

// CurrentState returns the active state.
func (m *Manager[T]) CurrentState() (T, error) {
	m.lock()
	defer m.unlock()

	var zero T
	if m.current.IsNone() {
		return zero, ErrUninitializedMachine
	}
	s, ok := m.registry.resolve(m.current)
	if !ok {
		return zero, &UnknownStateError{To: m.current}
	}
	return s, nil
}

// CurrentID returns the id of the active state, or None.
func (m *Manager[T]) CurrentID() StateID {
	m.lock()
	defer m.unlock()
	return m.current
}

// Lookup returns the concrete state registered for id. Deferred states that
// have not been built yet are not returned.
func (m *Manager[T]) Lookup(id StateID) (T, bool) {
	m.lock()
	defer m.unlock()
	return m.registry.resolve(id)
}

// IsDeferred reports whether id has a builder that has not run yet.
func (m *Manager[T]) IsDeferred(id StateID) bool {
	m.lock()
	defer m.unlock()
	return m.registry.isDeferred(id)
}
