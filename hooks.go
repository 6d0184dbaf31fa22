package stateflow

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TransitionRecord describes one completed transition.
type TransitionRecord struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	MachineID string    `json:"machineID" yaml:"machineID"`
	From      StateID   `json:"from" yaml:"from"`
	To        StateID   `json:"to" yaml:"to"`
	Event     EventID   `json:"event" yaml:"event"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Snapshot is the serialisable view of a Manager: its current state and its
// registered states and flows.
type Snapshot struct {
	MachineID  string     `json:"machineID" yaml:"machineID"`
	Current    StateID    `json:"current" yaml:"current"`
	Definition Definition `json:"definition" yaml:"definition"`
	Version    string     `json:"version" yaml:"version"`
	Timestamp  time.Time  `json:"timestamp" yaml:"timestamp"`
}

// Publisher receives transition records. Errors are logged, never returned
// from ProcessEvent.
type Publisher interface {
	Publish(ctx context.Context, record TransitionRecord) error
}

// Persister stores snapshots. Save errors are logged, never returned from
// ProcessEvent.
type Persister interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context, machineID string) (Snapshot, error)
}
