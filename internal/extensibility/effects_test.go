package extensibility

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/stateflow"
	"github.com/comalice/stateflow/testutil"
)

func TestLogEffect(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	called := 0
	LogEffect(logger, "beep", func() { called++ })()

	assert.Equal(t, 1, called)
	out := buf.String()
	assert.Contains(t, out, `msg="executing effect" effect=beep`)
	assert.Contains(t, out, `msg="effect completed" effect=beep elapsed=`)
}

func TestEffectRegistry(t *testing.T) {
	r := NewEffectRegistry()
	require.NoError(t, r.Register("click", func() {}))
	require.NoError(t, r.Register("beep", func() {}))

	assert.ErrorIs(t, r.Register("", func() {}), stateflow.ErrNullArgument)
	assert.ErrorIs(t, r.Register("nil", nil), stateflow.ErrNullArgument)
	assert.EqualError(t, r.Register("click", func() {}), `effect "click" already registered`)

	_, err := r.Lookup("click")
	assert.NoError(t, err)
	_, err = r.Lookup("unknown")
	assert.EqualError(t, err, `effect 'unknown' not registered`)

	assert.Equal(t, []string{"beep", "click"}, r.Names())
}

func TestEffectRegistry_Check(t *testing.T) {
	r := NewEffectRegistry()
	require.NoError(t, r.Register("click", func() {}))

	def := stateflow.Definition{
		ID:         "d",
		Executions: []stateflow.ExecutionDef{{From: stateflow.Any, Event: 1, Effect: "click"}},
	}
	assert.NoError(t, r.Check(def))

	def.Executions = append(def.Executions, stateflow.ExecutionDef{From: stateflow.ID(1), Event: 2, Effect: "quit"})
	assert.EqualError(t, r.Check(def), `execution 1: effect 'quit' not registered`)
}

func TestEffectRegistry_MapAppliesToManager(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	clicks := 0
	r := NewEffectRegistry()
	require.NoError(t, r.Register("click", func() { clicks++ }))

	m, err := stateflow.New(testutil.NewState(1, nil))
	require.NoError(t, err)
	def := stateflow.Definition{
		ID:         "d",
		Executions: []stateflow.ExecutionDef{{From: stateflow.Any, Event: 1, Effect: "click"}},
	}
	require.NoError(t, m.Apply(def, r.Map(logger)))

	require.NoError(t, m.ProcessEvent(context.Background(), 1))
	assert.Equal(t, 1, clicks)
	assert.Contains(t, buf.String(), `"effect":"click"`)

	plain := r.Map(nil)
	plain["click"]()
	assert.Equal(t, 2, clicks)
}
