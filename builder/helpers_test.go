package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/stateflow"
)

func TestFuncState_Callbacks(t *testing.T) {
	var calls []string
	s := New(stateflow.ID(3),
		OnActivate(func() { calls = append(calls, "in") }),
		OnDeactivate(func() { calls = append(calls, "out") }),
	)

	assert.Equal(t, stateflow.ID(3), s.ID())
	assert.Equal(t, "3", s.Name())
	assert.False(t, s.Active())

	s.Activate()
	assert.True(t, s.Active())
	s.Deactivate()
	assert.False(t, s.Active())
	assert.Equal(t, []string{"in", "out"}, calls)
}

func TestFuncState_NoCallbacks(t *testing.T) {
	s := Named(1, "login")
	assert.Equal(t, "login", s.Name())
	assert.NotPanics(t, func() {
		s.Activate()
		s.Deactivate()
	})
}

func TestFuncState_WithManager(t *testing.T) {
	var log []string
	trace := func(name string) []Option {
		return []Option{
			OnActivate(func() { log = append(log, "enter "+name) }),
			OnDeactivate(func() { log = append(log, "leave "+name) }),
		}
	}

	login := Named(1, "login", trace("login")...)
	menu := Named(2, "menu", trace("menu")...)
	m, err := stateflow.New(login)
	require.NoError(t, err)
	require.NoError(t, m.RegisterState(menu))

	configID, build := Deferred(3, "configuration", trace("configuration")...)
	require.NoError(t, m.RegisterDeferredState(configID, build))
	require.NoError(t, m.AddTransition(login.ID(), 1, menu.ID()))
	require.NoError(t, m.AddTransition(stateflow.Any, 2, configID))

	ctx := context.Background()
	require.NoError(t, m.ProcessEvent(ctx, 1))
	require.NoError(t, m.ProcessEvent(ctx, 2))

	assert.Equal(t, []string{
		"enter login",
		"leave menu",
		"leave login",
		"enter menu",
		"leave menu",
		"enter configuration",
	}, log)

	cur, err := m.CurrentState()
	require.NoError(t, err)
	assert.Equal(t, "configuration", cur.Name())
	assert.True(t, cur.Active())
	assert.False(t, login.Active())
	assert.Equal(t, "configuration", m.Describe().States[2].Name)
}
