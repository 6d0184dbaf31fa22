// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"github.com/comalice/stateflow"
)

// nopState is the cheapest possible State.
type nopState struct{ id stateflow.StateID }

func (s *nopState) ID() stateflow.StateID { return s.id }
func (s *nopState) Activate()             {}
func (s *nopState) Deactivate()           {}

const tick stateflow.EventID = 1

// GenRingDefinition creates a machine with n states cycling via tick events.
func GenRingDefinition(n int) stateflow.Definition {
	if n < 1 {
		n = 1
	}
	def := stateflow.Definition{
		ID:      fmt.Sprintf("ring_%d", n),
		Initial: stateflow.ID(0),
	}
	for i := 0; i < n; i++ {
		def.States = append(def.States, stateflow.StateDef{ID: stateflow.ID(i), Name: fmt.Sprintf("s%d", i)})
		def.Transitions = append(def.Transitions, stateflow.TransitionDef{
			From:  stateflow.ID(i),
			Event: tick,
			To:    stateflow.ID((i + 1) % n),
		})
	}
	return def
}

// GenWildcardDefinition creates n states reachable only through Any entries.
// Every event k moves to state k, so each lookup misses the exact bucket.
func GenWildcardDefinition(n int) stateflow.Definition {
	if n < 1 {
		n = 1
	}
	def := stateflow.Definition{
		ID:      fmt.Sprintf("wildcard_%d", n),
		Initial: stateflow.ID(0),
	}
	for i := 0; i < n; i++ {
		def.States = append(def.States, stateflow.StateDef{ID: stateflow.ID(i)})
		def.Transitions = append(def.Transitions, stateflow.TransitionDef{
			From:  stateflow.Any,
			Event: stateflow.EventID(i),
			To:    stateflow.ID(i),
		})
	}
	return def
}

// NewMachine builds a Manager with one nopState per declared state and the
// flows of def applied.
func NewMachine(def stateflow.Definition, opts ...stateflow.Option) (*stateflow.Manager[*nopState], error) {
	m := stateflow.NewManager[*nopState](opts...)
	if err := m.RegisterInitialState(&nopState{id: def.Initial}); err != nil {
		return nil, err
	}
	for _, sd := range def.States {
		if err := m.RegisterState(&nopState{id: sd.ID}); err != nil {
			return nil, err
		}
	}
	if err := m.Apply(def, nil); err != nil {
		return nil, err
	}
	return m, nil
}
