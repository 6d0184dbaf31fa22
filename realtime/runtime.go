package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/comalice/stateflow"
)

// ErrQueueFull is returned by SendEvent when the batch for the next tick is at
// capacity.
var ErrQueueFull = errors.New("event queue full")

// ErrAlreadyStarted is returned by Start when the tick loop is running.
var ErrAlreadyStarted = errors.New("runtime already started")

// ErrEventPanic wraps a panic recovered while the Processor handled an event.
var ErrEventPanic = errors.New("panic processing event")

// Processor applies one event. *stateflow.Manager satisfies it.
type Processor interface {
	ProcessEvent(ctx context.Context, event stateflow.EventID) error
}

// ErrorHandler receives errors returned by the Processor during a tick.
type ErrorHandler func(event stateflow.EventID, err error)

// Runtime serialises events from any goroutine onto a single tick goroutine.
//
// A panic raised while an event is processed is recovered and reported as an
// error wrapping ErrEventPanic; the tick goes on with its remaining events. The
// machine is not rolled back: when the panic comes from a state's Activate, the
// previous state has already been deactivated while the current id still names
// it. Handlers that cannot tolerate this should Stop the runtime on
// ErrEventPanic.
type Runtime struct {
	proc      Processor
	logger    *slog.Logger
	onError   ErrorHandler
	tickRate  time.Duration
	maxEvents int

	tickMu  sync.Mutex // held for a whole tick
	tickNum uint64

	batchMu     sync.Mutex
	eventBatch  []QueuedEvent
	sequenceNum uint64

	tickCancel context.CancelFunc
	stopped    chan struct{}
}

// Config configures the runtime.
type Config struct {
	TickRate         time.Duration // Fixed tick rate (e.g., 16.67ms for 60 FPS)
	MaxEventsPerTick int           // Event queue capacity (default: 1000)
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for tick errors and recovered panics.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// WithErrorHandler registers fn to receive event processing errors.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(rt *Runtime) {
		rt.onError = fn
	}
}

// NewRuntime creates a tick-based runtime driving proc.
func NewRuntime(proc Processor, cfg Config, opts ...Option) *Runtime {
	if cfg.MaxEventsPerTick <= 0 {
		cfg.MaxEventsPerTick = 1000
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 16667 * time.Microsecond // Default 60 FPS
	}

	rt := &Runtime{
		proc:       proc,
		logger:     slog.New(slog.DiscardHandler),
		tickRate:   cfg.TickRate,
		maxEvents:  cfg.MaxEventsPerTick,
		eventBatch: make([]QueuedEvent, 0, cfg.MaxEventsPerTick),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Start begins tick-based execution on a new goroutine. The loop ends when
// ctx is cancelled or Stop is called.
func (rt *Runtime) Start(ctx context.Context) error {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	if rt.stopped != nil {
		return ErrAlreadyStarted
	}
	tickCtx, cancel := context.WithCancel(ctx)
	rt.tickCancel = cancel
	rt.stopped = make(chan struct{})

	go rt.tickLoop(tickCtx, rt.stopped)
	return nil
}

// Stop ends the tick loop and waits for the current tick to finish. Events
// still queued stay queued.
func (rt *Runtime) Stop() {
	rt.batchMu.Lock()
	cancel, stopped := rt.tickCancel, rt.stopped
	rt.tickCancel, rt.stopped = nil, nil
	rt.batchMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}

func (rt *Runtime) tickLoop(ctx context.Context, stopped chan struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(rt.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rt.Tick(ctx)
		}
	}
}

// SendEvent queues an event for the next tick. Safe for concurrent use.
func (rt *Runtime) SendEvent(event stateflow.EventID) error {
	return rt.SendEventWithPriority(event, 0)
}

// SendEventWithPriority queues an event with priority. Higher priorities are
// processed first within a tick.
func (rt *Runtime) SendEventWithPriority(event stateflow.EventID, priority int) error {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	if len(rt.eventBatch) >= rt.maxEvents {
		return ErrQueueFull
	}

	rt.eventBatch = append(rt.eventBatch, QueuedEvent{
		Event:       event,
		SequenceNum: rt.sequenceNum,
		Priority:    priority,
	})
	rt.sequenceNum++
	return nil
}

// Pending returns the number of events waiting for the next tick.
func (rt *Runtime) Pending() int {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()
	return len(rt.eventBatch)
}

// GetTickNumber returns the number of completed ticks.
func (rt *Runtime) GetTickNumber() uint64 {
	rt.tickMu.Lock()
	defer rt.tickMu.Unlock()
	return rt.tickNum
}
