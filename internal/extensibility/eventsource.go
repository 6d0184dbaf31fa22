package extensibility

import (
	"context"
	"sync"
	"time"

	"github.com/comalice/stateflow"
)

// EventSource produces events until its channel is closed.
type EventSource interface {
	Events() <-chan stateflow.EventID
}

// Processor applies one event. *stateflow.Manager satisfies it.
type Processor interface {
	ProcessEvent(ctx context.Context, event stateflow.EventID) error
}

// ProcessorFunc adapts a function to Processor, e.g. a realtime runtime's
// SendEvent.
type ProcessorFunc func(ctx context.Context, event stateflow.EventID) error

func (f ProcessorFunc) ProcessEvent(ctx context.Context, event stateflow.EventID) error {
	return f(ctx, event)
}

// ChannelEventSource is an EventSource backed by a Go channel.
// Provides a simple way to feed external events into a Manager via Pump.
type ChannelEventSource struct {
	ch        chan stateflow.EventID
	closeOnce sync.Once
}

// NewChannelEventSource creates a new ChannelEventSource with the given channel.
// The channel should be buffered if backpressure handling is needed.
func NewChannelEventSource(ch chan stateflow.EventID) *ChannelEventSource {
	return &ChannelEventSource{ch: ch}
}

// Events returns the receive-only channel for events.
func (s *ChannelEventSource) Events() <-chan stateflow.EventID {
	return s.ch
}

// Send queues event, blocking until there is room or ctx is done.
func (s *ChannelEventSource) Send(ctx context.Context, event stateflow.EventID) error {
	select {
	case s.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close ends the source. Pump returns once the buffered events are drained.
// Extra calls are no-ops; Send must not be called after Close.
func (s *ChannelEventSource) Close() {
	s.closeOnce.Do(func() { close(s.ch) })
}

// TimerEventSource emits the same event periodically using time.Ticker.
// Useful for splash screens, timeouts and heartbeats.
type TimerEventSource struct {
	ch     chan stateflow.EventID
	event  stateflow.EventID
	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

// NewTimerEventSource creates a TimerEventSource that emits event every d.
func NewTimerEventSource(event stateflow.EventID, d time.Duration) *TimerEventSource {
	t := &TimerEventSource{
		ch:     make(chan stateflow.EventID, 10),
		event:  event,
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TimerEventSource) run() {
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- t.event:
			default:
				// drop if full
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

// Events returns the event channel.
func (t *TimerEventSource) Events() <-chan stateflow.EventID {
	return t.ch
}

// Stop stops the ticker and closes the channel. It is safe to call more than
// once.
func (t *TimerEventSource) Stop() {
	t.once.Do(func() { close(t.stop) })
}

// Pump feeds events from src into proc one at a time until src is closed or
// ctx is done. Processing errors are passed to onError, which may be nil.
// It returns ctx.Err() when cancelled and nil when src was closed.
func Pump(ctx context.Context, src EventSource, proc Processor, onError func(stateflow.EventID, error)) error {
	events := src.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				return nil
			}
			if err := proc.ProcessEvent(ctx, e); err != nil && onError != nil {
				onError(e, err)
			}
		}
	}
}
