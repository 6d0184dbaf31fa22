package realtime

import (
	"sort"

	"github.com/comalice/stateflow"
)

// QueuedEvent adds sequencing metadata for deterministic ordering.
type QueuedEvent struct {
	Event       stateflow.EventID
	SequenceNum uint64
	Priority    int
}

// sortEvents orders events by priority, then by sequence number.
func sortEvents(events []QueuedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Priority != events[j].Priority {
			return events[i].Priority > events[j].Priority
		}
		return events[i].SequenceNum < events[j].SequenceNum
	})
}
