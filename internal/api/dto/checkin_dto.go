package dto

import (
	"time"

	"github.com/spec-kit/checkin-service/internal/domain"
)

// SummaryResponse reports attendee tallies for one event.
type SummaryResponse struct {
	EventID   string `json:"event_id"`
	Total     int    `json:"total"`
	CheckedIn int    `json:"checked_in"`
	NoShow    int    `json:"no_show"`
	Cancelled int    `json:"cancelled"`
	Refunded  int    `json:"refunded"`
	Stale     bool   `json:"stale"`
}

// SnapshotResponse is one recorded tally.
type SnapshotResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Total     int       `json:"total"`
	CheckedIn int       `json:"checked_in"`
	NoShow    int       `json:"no_show"`
	Cancelled int       `json:"cancelled"`
	Refunded  int       `json:"refunded"`
	FetchedAt time.Time `json:"fetched_at"`
}

// NewSummaryResponse maps a summary.
func NewSummaryResponse(summary domain.CheckinSummary, stale bool) SummaryResponse {
	return SummaryResponse{
		EventID:   summary.EventID,
		Total:     summary.Total,
		CheckedIn: summary.CheckedIn,
		NoShow:    summary.NoShow,
		Cancelled: summary.Cancelled,
		Refunded:  summary.Refunded,
		Stale:     stale,
	}
}

// NewSnapshotResponses maps recorded snapshots.
func NewSnapshotResponses(snapshots []domain.CheckinSnapshot) []SnapshotResponse {
	resp := make([]SnapshotResponse, 0, len(snapshots))
	for _, s := range snapshots {
		resp = append(resp, SnapshotResponse{
			ID:        s.ID,
			EventID:   s.EventID,
			Total:     s.Total,
			CheckedIn: s.CheckedIn,
			NoShow:    s.NoShow,
			Cancelled: s.Cancelled,
			Refunded:  s.Refunded,
			FetchedAt: s.FetchedAt,
		})
	}
	return resp
}
