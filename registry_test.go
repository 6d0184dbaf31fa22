package stateflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_FirstRegistrationWins(t *testing.T) {
	r := newRegistry[*stubState]()
	first := &stubState{id: ID(1)}

	assert.True(t, r.registerConcrete(first))
	assert.False(t, r.registerConcrete(&stubState{id: ID(1)}))
	assert.False(t, r.registerDeferred(ID(1), func() *stubState { return &stubState{id: ID(1)} }))

	got, ok := r.resolve(ID(1))
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.False(t, r.isDeferred(ID(1)))
}

func TestRegistry_DeferredBuildOnce(t *testing.T) {
	r := newRegistry[*stubState]()
	calls := 0
	require.True(t, r.registerDeferred(ID(4), func() *stubState {
		calls++
		return &stubState{id: ID(4)}
	}))
	assert.False(t, r.registerConcrete(&stubState{id: ID(4)}), "deferred registration blocks concrete")

	_, ok := r.resolve(ID(4))
	assert.False(t, ok, "deferred states resolve as absent until built")
	assert.True(t, r.isDeferred(ID(4)))

	built, err := r.build(ID(4))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.False(t, r.isDeferred(ID(4)))

	got, ok := r.resolve(ID(4))
	require.True(t, ok)
	assert.Same(t, built, got)

	_, err = r.build(ID(4))
	assert.ErrorIs(t, err, ErrUnknownState)
	assert.Equal(t, 1, calls)
}

func TestRegistry_FailedBuildKeepsDeferred(t *testing.T) {
	r := newRegistry[*stubState]()
	r.registerDeferred(ID(2), func() *stubState { return nil })
	r.registerDeferred(ID(3), func() *stubState { return &stubState{id: ID(30)} })

	_, err := r.build(ID(2))
	assert.ErrorIs(t, err, ErrDeferredBuild)
	assert.True(t, r.isDeferred(ID(2)))

	_, err = r.build(ID(3))
	assert.ErrorIs(t, err, ErrDeferredBuild)
	assert.Contains(t, err.Error(), "returned state 30")
	_, ok := r.resolve(ID(3))
	assert.False(t, ok)
}

func TestRegistry_IDsInRegistrationOrder(t *testing.T) {
	r := newRegistry[*stubState]()
	r.registerConcrete(&stubState{id: ID(3)})
	r.registerDeferred(ID(1), func() *stubState { return &stubState{id: ID(1)} })
	r.registerConcrete(&stubState{id: ID(2)})
	r.registerConcrete(&stubState{id: ID(3)})

	assert.Equal(t, []StateID{ID(3), ID(1), ID(2)}, r.ids())
}

func TestIsNil(t *testing.T) {
	var typed *stubState
	var iface State
	assert.True(t, isNil(nil))
	assert.True(t, isNil(typed))
	assert.True(t, isNil(iface))
	assert.False(t, isNil(&stubState{}))
	assert.False(t, isNil(stubState{}))
}
