package stateflow

import (
	"log/slog"

	"github.com/google/uuid"
)

// Option configures a Manager via the functional options pattern.
type Option func(*options)

type options struct {
	machineID string
	logger    *slog.Logger
	publisher Publisher
	persister Persister
	locking   bool
}

func defaultOptions() *options {
	return &options{
		machineID: uuid.NewString(),
		logger:    slog.New(slog.DiscardHandler),
	}
}

// WithMachineID names the Manager in logs, records and snapshots.
// Defaults to a random UUID.
func WithMachineID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.machineID = id
		}
	}
}

// WithLogger configures structured logging. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPublisher emits a TransitionRecord after every successful transition.
func WithPublisher(p Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

// WithPersister saves a Snapshot after every successful transition.
func WithPersister(p Persister) Option {
	return func(o *options) {
		o.persister = p
	}
}

// WithLocking serialises registration and dispatch behind one mutex.
func WithLocking() Option {
	return func(o *options) {
		o.locking = true
	}
}
