package primitives

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type idKind uint8

const (
	kindNone idKind = iota
	kindAny
	kindConcrete
)

// StateID identifies a state. The zero value is None.
type StateID struct {
	kind  idKind
	value int
}

var (
	// None marks a machine that has no current state yet.
	None = StateID{kind: kindNone}
	// Any is the wildcard transition source. It is never a registered state.
	Any = StateID{kind: kindAny}
)

// ID returns the concrete state identifier for v.
func ID(v int) StateID {
	return StateID{kind: kindConcrete, value: v}
}

func (s StateID) IsNone() bool     { return s.kind == kindNone }
func (s StateID) IsAny() bool      { return s.kind == kindAny }
func (s StateID) IsConcrete() bool { return s.kind == kindConcrete }

// Value returns the integer behind a concrete id.
func (s StateID) Value() (int, bool) {
	if s.kind != kindConcrete {
		return 0, false
	}
	return s.value, true
}

func (s StateID) String() string {
	switch s.kind {
	case kindAny:
		return "any"
	case kindConcrete:
		return strconv.Itoa(s.value)
	default:
		return "none"
	}
}

// ParseStateID parses the textual form produced by String. "*" is accepted as
// an alias for "any" and the empty string for "none".
func ParseStateID(text string) (StateID, error) {
	switch t := strings.TrimSpace(strings.ToLower(text)); t {
	case "any", "*":
		return Any, nil
	case "none", "", "null":
		return None, nil
	default:
		v, err := strconv.Atoi(t)
		if err != nil {
			return None, fmt.Errorf("invalid state id %q: %w", text, err)
		}
		return ID(v), nil
	}
}

// MarshalJSON encodes concrete ids as numbers and sentinels as strings.
func (s StateID) MarshalJSON() ([]byte, error) {
	if s.kind == kindConcrete {
		return []byte(strconv.Itoa(s.value)), nil
	}
	return json.Marshal(s.String())
}

func (s *StateID) UnmarshalJSON(data []byte) error {
	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}
	id, err := ParseStateID(text)
	if err != nil {
		return err
	}
	*s = id
	return nil
}

func (s StateID) MarshalYAML() (any, error) {
	if s.kind == kindConcrete {
		return s.value, nil
	}
	return s.String(), nil
}

func (s *StateID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: state id must be a scalar", node.Line)
	}
	id, err := ParseStateID(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = id
	return nil
}
