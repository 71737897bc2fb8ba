package storage

import "time"

type EventKind string

const (
	EventSelection     EventKind = "selection"
	EventApproved      EventKind = "approved"
	EventRejected      EventKind = "rejected"
	EventSessionClosed EventKind = "session_closed"
)

// Event is one audit record of the lunch workflow.
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	Kind       EventKind `json:"kind"`
	Restaurant string    `json:"restaurant,omitempty"`
	SelectedBy string    `json:"selected_by,omitempty"`
	Note       string    `json:"note,omitempty"`
	SessionID  string    `json:"session_id,omitempty"`
	Orders     int       `json:"orders,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	Actor      string    `json:"actor,omitempty"`
}

// Recorder persists audit events. The log is write-mostly: nothing in the
// selection or order workflow reads it back.
// Implementations must be safe for concurrent use.
type Recorder interface {
	AppendEvent(event Event) error
	LoadEvents() ([]Event, error)
}
