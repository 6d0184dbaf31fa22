package stateflow

import "reflect"

// State is what the Manager needs from a controlled state.
// Implementations are owned by the caller.
type State interface {
	ID() StateID
	Activate()
	Deactivate()
}

// Named is implemented by states that carry a human readable name.
// Describe uses it to label exported definitions.
type Named interface {
	Name() string
}

// isNil reports whether v is a nil interface or a typed nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
