package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comalice/stateflow"
)

func TestRecordingState(t *testing.T) {
	var j Journal
	s := NewState(3, &j).Named("menu")

	assert.Equal(t, stateflow.ID(3), s.ID())
	assert.Equal(t, "menu", s.Name())
	assert.False(t, s.Active())

	s.Activate()
	s.Deactivate()
	s.Activate()

	assert.True(t, s.Active())
	assert.Equal(t, 2, s.Activations())
	assert.Equal(t, []Call{Activated(s.ID()), Deactivated(s.ID()), Activated(s.ID())}, j.Calls())
	assert.Equal(t, "activate(3)", j.Calls()[0].String())

	j.Reset()
	assert.Empty(t, j.Calls())
}

func TestRecordingState_NilJournal(t *testing.T) {
	s := NewState(1, nil)
	assert.NotPanics(t, func() {
		s.Activate()
		s.Deactivate()
	})
}
