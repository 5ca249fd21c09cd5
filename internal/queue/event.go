// Package queue defines the message payloads exchanged over the broker
// and the background consumer that drains them.
package queue

// SeatMapSubmittedEvent is published after a successful event-layout
// submission. Downstream consumers (notification glue, analytics) get
// enough to act without querying the primary database.
type SeatMapSubmittedEvent struct {
	EventID     uint64 `json:"event_id"`
	EventKey    string `json:"event_key"`
	LayoutID    uint64 `json:"layout_id"`
	Applied     int    `json:"applied"`
	Skipped     int    `json:"skipped"`
	SubmittedAt string `json:"submitted_at"`
}
