package primitives

import "strconv"

// EventID identifies an event. The engine compares event ids structurally and
// never interprets them.
type EventID int

func (e EventID) String() string {
	return strconv.Itoa(int(e))
}
