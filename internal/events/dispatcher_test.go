package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishRunsHandlersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var calls []string
	d.Subscribe(EventAttendeesFetched, func(ctx context.Context, e Event) error {
		calls = append(calls, "first:"+e.EventID)
		return errors.New("ignored")
	})
	d.Subscribe(EventAttendeesFetched, func(ctx context.Context, e Event) error {
		calls = append(calls, "second:"+e.EventID)
		return nil
	})
	d.Subscribe(EventUpstreamFailed, func(ctx context.Context, e Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventAttendeesFetched, EventID: "evt-1"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"first:evt-1", "second:evt-1"}, calls)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventUpstreamFailed}))
}
