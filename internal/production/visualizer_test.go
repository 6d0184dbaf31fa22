package production

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/stateflow"
)

func namedDefinition() stateflow.Definition {
	def := sampleSnapshot().Definition
	def.Events = []stateflow.EventDef{{ID: 1, Name: "AUTH_OK"}, {ID: 5, Name: "OPEN_CONFIG"}}
	return def
}

func TestDefaultVisualizer_ExportDOT(t *testing.T) {
	v := &DefaultVisualizer{}
	dot := v.ExportDOT(namedDefinition(), stateflow.ID(3))

	assert.True(t, strings.HasPrefix(dot, `digraph "client" {`))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, `"1" [label="login"];`)
	assert.Contains(t, dot, `"3" [label="menu" style="rounded,filled" fillcolor=lightgreen];`)
	assert.Contains(t, dot, `"4" [label="4" style="rounded,dashed"];`)
	assert.Contains(t, dot, `"*" [label="any" shape=circle style=dashed];`)
	assert.Contains(t, dot, `"__start" -> "1";`)
	assert.Contains(t, dot, `"1" -> "3" [label="AUTH_OK"];`)
	assert.Contains(t, dot, `"*" -> "4" [label="OPEN_CONFIG"];`)
	assert.Contains(t, dot, `"*" -> "*" [label="OPEN_CONFIG / click()" style=dashed];`)
}

func TestDefaultVisualizer_UndeclaredStates(t *testing.T) {
	def := stateflow.Definition{
		ID:          "bare",
		Transitions: []stateflow.TransitionDef{{From: stateflow.ID(1), Event: 2, To: stateflow.ID(9)}},
	}
	dot := (&DefaultVisualizer{}).ExportDOT(def, stateflow.None)

	assert.Contains(t, dot, `"1" [label="1"];`)
	assert.Contains(t, dot, `"9" [label="9"];`)
	assert.Contains(t, dot, `"1" -> "9" [label="2"];`)
	assert.NotContains(t, dot, `"*"`)
	assert.NotContains(t, dot, "__start")
	assert.NotContains(t, dot, "fillcolor")
}

func TestDefaultVisualizer_ExportJSON(t *testing.T) {
	data, err := (&DefaultVisualizer{}).ExportJSON(namedDefinition())
	require.NoError(t, err)

	var got stateflow.Definition
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, namedDefinition(), got)
	assert.Contains(t, string(data), `"from": "any"`)
}
