package stateflow

type flowEntry interface {
	source() StateID
	trigger() EventID
}

// flowTable keeps entries per source state plus a wildcard bucket for Any.
// Lookups return the earliest registered match.
type flowTable[E flowEntry] struct {
	bySource map[StateID][]E
	wildcard []E
	all      []E // registration order, for export
}

func newFlowTable[E flowEntry]() *flowTable[E] {
	return &flowTable[E]{
		bySource: make(map[StateID][]E),
	}
}

func (t *flowTable[E]) add(e E) {
	if src := e.source(); src.IsAny() {
		t.wildcard = append(t.wildcard, e)
	} else {
		t.bySource[src] = append(t.bySource[src], e)
	}
	t.all = append(t.all, e)
}

// resolve finds the entry for (current, event), falling back to Any.
func (t *flowTable[E]) resolve(current StateID, event EventID) (E, bool) {
	if e, ok := firstFor(t.bySource[current], event); ok {
		return e, true
	}
	return firstFor(t.wildcard, event)
}

func (t *flowTable[E]) entries() []E {
	out := make([]E, len(t.all))
	copy(out, t.all)
	return out
}

func (t *flowTable[E]) len() int {
	return len(t.all)
}

func firstFor[E flowEntry](list []E, event EventID) (E, bool) {
	for _, e := range list {
		if e.trigger() == event {
			return e, true
		}
	}
	var zero E
	return zero, false
}
