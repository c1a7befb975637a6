package domain

import "time"

type EventType string

const (
	EventProgress EventType = "progress"
	EventLog      EventType = "log"
	EventError    EventType = "error"
	EventComplete EventType = "complete"
)

type LogLevel string

const (
	LevelInfo    LogLevel = "info"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
	LevelSuccess LogLevel = "success"
)

// Event is a progress notification about one job. Delivery is best effort.
type Event struct {
	Type         EventType `json:"type"`
	JobID        string    `json:"job_id"`
	Percent      int       `json:"percent,omitempty"`
	Step         string    `json:"step,omitempty"`
	Message      string    `json:"message,omitempty"`
	Level        LogLevel  `json:"level,omitempty"`
	ClipsCreated int       `json:"clips_created,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// IsTerminal reports whether no further events follow for the job.
func (e Event) IsTerminal() bool {
	return e.Type == EventComplete || e.Type == EventError
}

// Payload returns the wire body for the event type.
func (e Event) Payload() map[string]any {
	p := map[string]any{
		"type":      string(e.Type),
		"job_id":    e.JobID,
		"timestamp": e.Timestamp.UTC().Format(time.RFC3339),
	}
	switch e.Type {
	case EventProgress:
		p["percent"] = e.Percent
		p["step"] = e.Step
	case EventLog:
		p["message"] = e.Message
		p["level"] = string(e.Level)
	case EventError:
		p["message"] = e.Message
	case EventComplete:
		p["clips_created"] = e.ClipsCreated
	}
	return p
}
