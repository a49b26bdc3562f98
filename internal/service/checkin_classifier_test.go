package service

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/checkin-service/internal/domain"
)

func sampleAttendees() []domain.Attendee {
	return []domain.Attendee{
		{ID: "1", CheckedIn: true},
		{ID: "2", CheckedIn: true},
		{ID: "3", CheckedIn: false},
	}
}

func ids(attendees []domain.Attendee) []string {
	out := make([]string, 0, len(attendees))
	for _, a := range attendees {
		out = append(out, a.ID)
	}
	return out
}

func randomAttendees(r *rand.Rand, n int) []domain.Attendee {
	out := make([]domain.Attendee, n)
	for i := range out {
		out[i] = domain.Attendee{
			ID:        fmt.Sprintf("a-%d", i),
			CheckedIn: r.Intn(2) == 0,
			Cancelled: r.Intn(5) == 0,
			Refunded:  r.Intn(7) == 0,
		}
	}
	return out
}

func TestClassifyScenario(t *testing.T) {
	attendees := sampleAttendees()

	assert.Equal(t, []string{"1", "2"}, ids(Classify(attendees, domain.CheckinStatusCheckedIn)))
	assert.Equal(t, []string{"3"}, ids(Classify(attendees, domain.CheckinStatusNoShow)))
	assert.Equal(t, attendees, Classify(attendees, domain.CheckinStatusAll))

	for _, token := range []string{"all", "", "bogus"} {
		status, err := domain.ParseCheckinStatus(token, false)
		require.NoError(t, err)
		assert.Equal(t, attendees, Classify(attendees, status), "token %q", token)
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	for _, status := range []domain.CheckinStatus{domain.CheckinStatusAll, domain.CheckinStatusCheckedIn, domain.CheckinStatusNoShow} {
		got := Classify(nil, status)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Empty(t, Classify([]domain.Attendee{}, status))
	}
}

func TestClassifyKeepsCancelledAndRefunded(t *testing.T) {
	attendees := []domain.Attendee{
		{ID: "c", CheckedIn: true, Cancelled: true},
		{ID: "r", CheckedIn: false, Refunded: true},
	}
	assert.Equal(t, []string{"c"}, ids(Classify(attendees, domain.CheckinStatusCheckedIn)))
	assert.Equal(t, []string{"r"}, ids(Classify(attendees, domain.CheckinStatusNoShow)))
}

func TestClassifyPartitionsAttendees(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 0; n < 50; n++ {
		attendees := randomAttendees(r, n)

		checkedIn := Classify(attendees, domain.CheckinStatusCheckedIn)
		noShow := Classify(attendees, domain.CheckinStatusNoShow)

		want := 0
		for _, a := range attendees {
			if a.CheckedIn {
				want++
			}
		}
		require.Len(t, checkedIn, want)
		require.Len(t, noShow, len(attendees)-want)
		for _, a := range checkedIn {
			assert.True(t, a.CheckedIn)
		}
		for _, a := range noShow {
			assert.False(t, a.CheckedIn)
		}

		// Merging both results by original position rebuilds the input.
		merged := make([]domain.Attendee, 0, len(attendees))
		ci, ni := 0, 0
		for _, a := range attendees {
			if ci < len(checkedIn) && checkedIn[ci].ID == a.ID {
				merged = append(merged, checkedIn[ci])
				ci++
				continue
			}
			require.Less(t, ni, len(noShow))
			require.Equal(t, a.ID, noShow[ni].ID)
			merged = append(merged, noShow[ni])
			ni++
		}
		assert.Equal(t, attendees, merged)
	}
}

func TestClassifyIsPure(t *testing.T) {
	attendees := sampleAttendees()
	before := append([]domain.Attendee(nil), attendees...)

	first := Classify(attendees, domain.CheckinStatusNoShow)
	second := Classify(attendees, domain.CheckinStatusNoShow)
	assert.Equal(t, first, second)
	assert.Equal(t, before, attendees)

	all := Classify(attendees, domain.CheckinStatusAll)
	all[0].ID = "changed"
	assert.Equal(t, "1", attendees[0].ID)
}

func TestSummarize(t *testing.T) {
	attendees := []domain.Attendee{
		{ID: "1", CheckedIn: true},
		{ID: "2", CheckedIn: true, Refunded: true},
		{ID: "3", Cancelled: true},
		{ID: "4"},
	}
	got := Summarize("evt-1", attendees)
	assert.Equal(t, domain.CheckinSummary{
		EventID:   "evt-1",
		Total:     4,
		CheckedIn: 2,
		NoShow:    2,
		Cancelled: 1,
		Refunded:  1,
	}, got)
}
