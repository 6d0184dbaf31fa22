// Package testutil provides states that record their lifecycle calls so the
// same assertions can run against the Manager and the realtime runtime.
package testutil

import (
	"fmt"
	"sync"

	"github.com/comalice/stateflow"
)

// Call is one lifecycle call seen by a Journal.
type Call struct {
	State  stateflow.StateID
	Action string // "activate" or "deactivate"
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%s)", c.Action, c.State)
}

// Activated and Deactivated build expected calls.
func Activated(id stateflow.StateID) Call   { return Call{State: id, Action: "activate"} }
func Deactivated(id stateflow.StateID) Call { return Call{State: id, Action: "deactivate"} }

// Journal collects lifecycle calls from several states in order.
type Journal struct {
	mu    sync.Mutex
	calls []Call
}

func (j *Journal) record(c Call) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, c)
}

// Calls returns a copy of the recorded calls.
func (j *Journal) Calls() []Call {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Call, len(j.calls))
	copy(out, j.calls)
	return out
}

// Reset forgets recorded calls.
func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = nil
}

// RecordingState is a State that writes each lifecycle call to a Journal.
type RecordingState struct {
	id      stateflow.StateID
	name    string
	journal *Journal

	mu          sync.Mutex
	active      bool
	activations int
}

// NewState creates a RecordingState for id writing to j. j may be nil.
func NewState(id int, j *Journal) *RecordingState {
	return &RecordingState{id: stateflow.ID(id), name: fmt.Sprintf("state-%d", id), journal: j}
}

// Named sets the name reported to Describe.
func (s *RecordingState) Named(name string) *RecordingState {
	s.name = name
	return s
}

func (s *RecordingState) ID() stateflow.StateID { return s.id }
func (s *RecordingState) Name() string          { return s.name }

func (s *RecordingState) Activate() {
	s.mu.Lock()
	s.active = true
	s.activations++
	s.mu.Unlock()
	if s.journal != nil {
		s.journal.record(Activated(s.id))
	}
}

func (s *RecordingState) Deactivate() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
	if s.journal != nil {
		s.journal.record(Deactivated(s.id))
	}
}

// Active reports whether the last lifecycle call was Activate.
func (s *RecordingState) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Activations counts Activate calls.
func (s *RecordingState) Activations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activations
}
