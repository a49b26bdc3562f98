package events

import (
	"time"

	"github.com/spec-kit/checkin-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAttendeesFetched EventType = "attendees_fetched"
	EventUpstreamFailed   EventType = "upstream_failed"
)

// Event is an in-process notification. ID identifies the notification itself;
// EventID is the registration event it concerns.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EventID   string      `json:"event_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AttendeesFetchedPayload payload.
type AttendeesFetchedPayload struct {
	Summary domain.CheckinSummary `json:"summary"`
}

// UpstreamFailedPayload payload.
type UpstreamFailedPayload struct {
	StatusCode  int    `json:"status_code,omitempty"`
	Retryable   bool   `json:"retryable"`
	ServedStale bool   `json:"served_stale"`
	Error       string `json:"error"`
}
