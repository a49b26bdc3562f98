package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CheckinStatus enumerates the attendee filters.
type CheckinStatus string

const (
	CheckinStatusAll       CheckinStatus = "all"
	CheckinStatusCheckedIn CheckinStatus = "checkedin"
	CheckinStatusNoShow    CheckinStatus = "noshow"
)

// ErrInvalidFilter is matched by every InvalidFilterError.
var ErrInvalidFilter = errors.New("invalid check-in filter")

// InvalidFilterError reports a status token outside the recognized set.
type InvalidFilterError struct {
	Token string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("unrecognized status %q: expected one of all, checkedin, noshow", e.Token)
}

func (e *InvalidFilterError) Is(target error) bool {
	return target == ErrInvalidFilter
}

// ParseCheckinStatus maps a query token to a CheckinStatus. Empty and "all" select
// every attendee. Unknown tokens fall back to all unless strict is set.
func ParseCheckinStatus(token string, strict bool) (CheckinStatus, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", string(CheckinStatusAll):
		return CheckinStatusAll, nil
	case string(CheckinStatusCheckedIn):
		return CheckinStatusCheckedIn, nil
	case string(CheckinStatusNoShow):
		return CheckinStatusNoShow, nil
	}
	if strict {
		return "", &InvalidFilterError{Token: token}
	}
	return CheckinStatusAll, nil
}

// CheckinSummary tallies an attendee set.
type CheckinSummary struct {
	EventID   string `json:"event_id"`
	Total     int    `json:"total"`
	CheckedIn int    `json:"checked_in"`
	NoShow    int    `json:"no_show"`
	Cancelled int    `json:"cancelled"`
	Refunded  int    `json:"refunded"`
}

// CheckinSnapshot is a persisted summary taken after a successful fetch.
type CheckinSnapshot struct {
	ID        string
	EventID   string
	Total     int
	CheckedIn int
	NoShow    int
	Cancelled int
	Refunded  int
	FetchedAt time.Time
}
