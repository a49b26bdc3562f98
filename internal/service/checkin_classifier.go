package service

import "github.com/spec-kit/checkin-service/internal/domain"

// Classify returns the attendees matching status, preserving input order.
// CheckedIn is the only discriminator: cancelled and refunded attendees are
// kept. Any status other than CheckedIn or NoShow selects everyone. The result
// is always a fresh, non-nil slice.
func Classify(attendees []domain.Attendee, status domain.CheckinStatus) []domain.Attendee {
	result := make([]domain.Attendee, 0, len(attendees))
	for _, attendee := range attendees {
		switch status {
		case domain.CheckinStatusCheckedIn:
			if !attendee.CheckedIn {
				continue
			}
		case domain.CheckinStatusNoShow:
			if attendee.CheckedIn {
				continue
			}
		}
		result = append(result, attendee)
	}
	return result
}

// Summarize tallies attendees by check-in and ticket lifecycle state.
func Summarize(eventID string, attendees []domain.Attendee) domain.CheckinSummary {
	summary := domain.CheckinSummary{EventID: eventID, Total: len(attendees)}
	for _, attendee := range attendees {
		if attendee.CheckedIn {
			summary.CheckedIn++
		} else {
			summary.NoShow++
		}
		if attendee.Cancelled {
			summary.Cancelled++
		}
		if attendee.Refunded {
			summary.Refunded++
		}
	}
	return summary
}
