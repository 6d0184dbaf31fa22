package stateflow

import "github.com/comalice/stateflow/internal/primitives"

// Re-export identifier and definition types from internal/primitives.
type (
	// StateID identifies a state. The zero value is None.
	StateID = primitives.StateID
	// EventID identifies an event.
	EventID = primitives.EventID

	// Definition is the declarative form of a flow table.
	Definition = primitives.Definition
	// StateDef names a state of a Definition.
	StateDef = primitives.StateDef
	// EventDef names an event of a Definition.
	EventDef = primitives.EventDef
	// TransitionDef is the declarative form of a Transition.
	TransitionDef = primitives.TransitionDef
	// ExecutionDef is the declarative form of an Execution.
	ExecutionDef = primitives.ExecutionDef
)

var (
	// None is the current state of a machine that has not been initialised.
	None = primitives.None
	// Any is the wildcard source of transitions and executions.
	Any = primitives.Any
)

// ID returns the concrete state identifier for v.
func ID(v int) StateID {
	return primitives.ID(v)
}

// ParseStateID parses "any", "none" or an integer.
func ParseStateID(text string) (StateID, error) {
	return primitives.ParseStateID(text)
}

// ParseDefinition decodes and validates a YAML or JSON flow definition.
func ParseDefinition(data []byte) (Definition, error) {
	return primitives.ParseDefinition(data)
}

// LoadDefinition reads and validates the flow definition stored at path.
func LoadDefinition(path string) (Definition, error) {
	return primitives.LoadDefinition(path)
}
