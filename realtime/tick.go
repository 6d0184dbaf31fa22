package realtime

import (
	"context"
	"fmt"
	"log/slog"
)

// Tick processes one batch of queued events and returns how many were
// applied. It is called by the tick loop and may be called directly when the
// loop is not running.
func (rt *Runtime) Tick(ctx context.Context) int {
	rt.tickMu.Lock()
	defer rt.tickMu.Unlock()

	// Phase 1: Collect events atomically
	events := rt.collectEvents()

	// Phase 2: Sort for deterministic order
	sortEvents(events)

	// Phase 3: Apply in order
	n := rt.processEvents(ctx, events)

	rt.tickNum++
	return n
}

// collectEvents atomically retrieves and clears the event batch.
func (rt *Runtime) collectEvents() []QueuedEvent {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	events := rt.eventBatch
	rt.eventBatch = make([]QueuedEvent, 0, rt.maxEvents)
	return events
}

func (rt *Runtime) processEvents(ctx context.Context, events []QueuedEvent) int {
	n := 0
	for _, qe := range events {
		if err := rt.processEvent(ctx, qe); err != nil {
			rt.logger.WarnContext(ctx, "event failed",
				slog.Uint64("tick", rt.tickNum),
				slog.String("event", qe.Event.String()),
				slog.Any("error", err),
			)
			if rt.onError != nil {
				rt.onError(qe.Event, err)
			}
		}
		n++
	}
	return n
}

// processEvent applies one event, turning a panic in a state callback into an
// error so the remaining events of the tick still run.
func (rt *Runtime) processEvent(ctx context.Context, qe QueuedEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w %s: %v", ErrEventPanic, qe.Event, r)
		}
	}()
	return rt.proc.ProcessEvent(ctx, qe.Event)
}
