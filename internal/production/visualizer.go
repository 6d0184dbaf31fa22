package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/stateflow"
)

// wildcardNode is the DOT node standing for transitions registered for Any.
const wildcardNode = "*"

// DefaultVisualizer renders flow definitions.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for def. The current state, when
// not None, is highlighted. Transitions registered for Any leave a single
// wildcard node; executions are drawn as dashed loops.
func (v *DefaultVisualizer) ExportDOT(def stateflow.Definition, current stateflow.StateID) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", def.ID)
	buf.WriteString(`  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	for _, id := range collectNodes(def) {
		renderState(&buf, def, id, current)
	}
	if usesWildcard(def) {
		fmt.Fprintf(&buf, "  %q [label=\"any\" shape=circle style=dashed];\n", wildcardNode)
	}
	if def.Initial.IsConcrete() {
		buf.WriteString("  \"__start\" [shape=point];\n")
		fmt.Fprintf(&buf, "  \"__start\" -> %q;\n", nodeName(def.Initial))
	}

	for _, edge := range collectEdges(def) {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q%s];\n", edge.From, edge.To, edge.Label, edge.Style)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes def to JSON.
func (v *DefaultVisualizer) ExportJSON(def stateflow.Definition) ([]byte, error) {
	return json.MarshalIndent(def, "", "  ")
}

// Edge represents a transition or execution edge.
type Edge struct {
	From  string
	To    string
	Label string
	Style string
}

func nodeName(id stateflow.StateID) string {
	if id.IsAny() {
		return wildcardNode
	}
	return id.String()
}

// collectNodes returns declared states in order followed by concrete states
// only referenced by flows.
func collectNodes(def stateflow.Definition) []stateflow.StateID {
	seen := make(map[stateflow.StateID]bool)
	var out []stateflow.StateID
	add := func(id stateflow.StateID) {
		if id.IsConcrete() && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, s := range def.States {
		add(s.ID)
	}
	add(def.Initial)
	for _, t := range def.Transitions {
		add(t.From)
		add(t.To)
	}
	for _, x := range def.Executions {
		add(x.From)
	}
	return out
}

func usesWildcard(def stateflow.Definition) bool {
	for _, t := range def.Transitions {
		if t.From.IsAny() {
			return true
		}
	}
	for _, x := range def.Executions {
		if x.From.IsAny() {
			return true
		}
	}
	return false
}

// collectEdges collects transitions then executions in table order.
func collectEdges(def stateflow.Definition) []Edge {
	edges := make([]Edge, 0, len(def.Transitions)+len(def.Executions))
	for _, t := range def.Transitions {
		edges = append(edges, Edge{
			From:  nodeName(t.From),
			To:    nodeName(t.To),
			Label: def.EventName(t.Event),
		})
	}
	for _, x := range def.Executions {
		effect := x.Effect
		if effect == "" {
			effect = "effect"
		}
		from := nodeName(x.From)
		edges = append(edges, Edge{
			From:  from,
			To:    from,
			Label: fmt.Sprintf("%s / %s()", def.EventName(x.Event), effect),
			Style: " style=dashed",
		})
	}
	return edges
}

func renderState(buf *bytes.Buffer, def stateflow.Definition, id, current stateflow.StateID) {
	label := def.StateName(id)
	style := ""
	for _, s := range def.States {
		if s.ID == id && s.Deferred {
			style = ` style="rounded,dashed"`
		}
	}
	if id == current {
		style = ` style="rounded,filled" fillcolor=lightgreen`
	}
	fmt.Fprintf(buf, "  %q [label=%q%s];\n", nodeName(id), label, style)
}
