package stateflow

import (
	"fmt"
	"time"

	"github.com/comalice/stateflow/internal/primitives"
)

// Apply registers the transitions and executions of def. Execution effects
// are looked up by name in effects. States are not created: concrete states
// and deferred builders stay the caller's responsibility.
//
// def is validated and every effect resolved before anything is registered.
func (m *Manager[T]) Apply(def Definition, effects map[string]func()) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("definition %q: %w", def.ID, err)
	}

	transitions := make([]Transition, 0, len(def.Transitions))
	for i, td := range def.Transitions {
		t, err := On(td.Event).From(td.From).To(td.To)
		if err != nil {
			return fmt.Errorf("definition %q transition %d: %w", def.ID, i, err)
		}
		transitions = append(transitions, t)
	}

	executions := make([]Execution, 0, len(def.Executions))
	for i, xd := range def.Executions {
		x, err := On(xd.Event).From(xd.From).DoNamed(xd.Effect, effects[xd.Effect])
		if err != nil {
			return fmt.Errorf("definition %q execution %d effect %q: %w", def.ID, i, xd.Effect, err)
		}
		executions = append(executions, x)
	}

	for _, t := range transitions {
		if err := m.RegisterTransition(t); err != nil {
			return err
		}
	}
	for _, x := range executions {
		if err := m.RegisterExecution(x); err != nil {
			return err
		}
	}
	return nil
}

// Describe exports the registered states and flows as a Definition.
func (m *Manager[T]) Describe() Definition {
	m.lock()
	defer m.unlock()
	return m.describe()
}

func (m *Manager[T]) describe() Definition {
	def := Definition{
		ID:      m.id,
		Initial: m.initial,
	}

	for _, id := range m.registry.ids() {
		sd := StateDef{ID: id, Deferred: m.registry.isDeferred(id)}
		if s, ok := m.registry.resolve(id); ok {
			if n, ok := any(s).(Named); ok {
				sd.Name = n.Name()
			}
		}
		def.States = append(def.States, sd)
	}
	for _, t := range m.transitions.entries() {
		def.Transitions = append(def.Transitions, TransitionDef{From: t.from, Event: t.event, To: t.to})
	}
	for _, x := range m.executions.entries() {
		def.Executions = append(def.Executions, ExecutionDef{From: x.from, Event: x.event, Effect: x.name})
	}
	return def
}

// Snapshot captures the current state and the registered tables.
func (m *Manager[T]) Snapshot() Snapshot {
	m.lock()
	defer m.unlock()
	return m.snapshot()
}

func (m *Manager[T]) snapshot() Snapshot {
	def := m.describe()
	return Snapshot{
		MachineID:  m.id,
		Current:    m.current,
		Definition: def,
		Version:    primitives.Fingerprint(&def),
		Timestamp:  time.Now(),
	}
}
