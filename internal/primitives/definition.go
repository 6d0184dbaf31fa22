package primitives

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StateDef names a state of a flow definition. Deferred states are built on
// first entry by a builder the caller registers.
type StateDef struct {
	ID       StateID `json:"id" yaml:"id"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Deferred bool    `json:"deferred,omitempty" yaml:"deferred,omitempty"`
}

// EventDef names an event of a flow definition.
type EventDef struct {
	ID   EventID `json:"id" yaml:"id"`
	Name string  `json:"name,omitempty" yaml:"name,omitempty"`
}

// TransitionDef moves the machine from From to To on Event. From may be Any.
type TransitionDef struct {
	From  StateID `json:"from" yaml:"from"`
	Event EventID `json:"event" yaml:"event"`
	To    StateID `json:"to" yaml:"to"`
}

// ExecutionDef fires the named effect on Event while in From. From may be Any.
type ExecutionDef struct {
	From   StateID `json:"from" yaml:"from"`
	Event  EventID `json:"event" yaml:"event"`
	Effect string  `json:"effect,omitempty" yaml:"effect,omitempty"`
}

// Definition is the declarative form of a flow table.
// Entry order is significant: the first matching entry wins.
type Definition struct {
	Version     string          `json:"version,omitempty" yaml:"version,omitempty"`
	ID          string          `json:"id" yaml:"id"`
	Initial     StateID         `json:"initial" yaml:"initial"`
	States      []StateDef      `json:"states,omitempty" yaml:"states,omitempty"`
	Events      []EventDef      `json:"events,omitempty" yaml:"events,omitempty"`
	Transitions []TransitionDef `json:"transitions,omitempty" yaml:"transitions,omitempty"`
	Executions  []ExecutionDef  `json:"executions,omitempty" yaml:"executions,omitempty"`
}

// Validate checks the definition:
// - Non-empty ID
// - Initial is None or a declared concrete state
// - State ids are concrete and unique, event ids unique
// - Transition sources are concrete or Any, targets concrete
// - Execution sources are concrete or Any
func (d *Definition) Validate() error {
	if d.ID == "" {
		return errors.New("definition ID is required")
	}

	states := make(map[StateID]bool, len(d.States))
	for i, s := range d.States {
		if !s.ID.IsConcrete() {
			return fmt.Errorf("state %d: id %s is reserved", i, s.ID)
		}
		if states[s.ID] {
			return fmt.Errorf("state %d: duplicate id %s", i, s.ID)
		}
		states[s.ID] = true
	}

	switch {
	case d.Initial.IsAny():
		return errors.New("initial state cannot be any")
	case d.Initial.IsConcrete() && len(d.States) > 0 && !states[d.Initial]:
		return fmt.Errorf("initial state %s not declared", d.Initial)
	}

	events := make(map[EventID]bool, len(d.Events))
	for i, e := range d.Events {
		if events[e.ID] {
			return fmt.Errorf("event %d: duplicate id %s", i, e.ID)
		}
		events[e.ID] = true
	}

	for i, t := range d.Transitions {
		if t.From.IsNone() {
			return fmt.Errorf("transition %d: source is required", i)
		}
		if !t.To.IsConcrete() {
			return fmt.Errorf("transition %d: invalid target %s", i, t.To)
		}
	}

	for i, x := range d.Executions {
		if x.From.IsNone() {
			return fmt.Errorf("execution %d: source is required", i)
		}
	}

	return nil
}

// StateName returns the declared name of id, or its textual id.
func (d *Definition) StateName(id StateID) string {
	for _, s := range d.States {
		if s.ID == id && s.Name != "" {
			return s.Name
		}
	}
	return id.String()
}

// EventName returns the declared name of id, or its textual id.
func (d *Definition) EventName(id EventID) string {
	for _, e := range d.Events {
		if e.ID == id && e.Name != "" {
			return e.Name
		}
	}
	return id.String()
}

// ParseDefinition decodes a YAML (or JSON) document and validates it.
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, fmt.Errorf("definition %q: %w", def.ID, err)
	}
	return def, nil
}

// LoadDefinition reads and parses the definition stored at path.
func LoadDefinition(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseDefinition(data)
}
