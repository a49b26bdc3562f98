package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/checkin-service/internal/domain"
)

const keyPrefix = "checkin:attendees:"

// AttendeeCache keeps the last successfully fetched attendee list per event.
type AttendeeCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewAttendeeCache wraps client. A zero ttl keeps entries until evicted.
func NewAttendeeCache(client redis.Cmdable, ttl time.Duration) *AttendeeCache {
	return &AttendeeCache{client: client, ttl: ttl}
}

// Put replaces the cached list for eventID.
func (c *AttendeeCache) Put(ctx context.Context, eventID string, attendees []domain.Attendee) error {
	payload, err := json.Marshal(attendees)
	if err != nil {
		return fmt.Errorf("encode attendees: %w", err)
	}
	if err := c.client.Set(ctx, Key(eventID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache attendees for %s: %w", eventID, err)
	}
	return nil
}

// Get returns the cached list for eventID and whether one was present.
func (c *AttendeeCache) Get(ctx context.Context, eventID string) ([]domain.Attendee, bool, error) {
	payload, err := c.client.Get(ctx, Key(eventID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached attendees for %s: %w", eventID, err)
	}

	var attendees []domain.Attendee
	if err := json.Unmarshal(payload, &attendees); err != nil {
		return nil, false, fmt.Errorf("decode cached attendees for %s: %w", eventID, err)
	}
	if attendees == nil {
		attendees = []domain.Attendee{}
	}
	return attendees, true, nil
}

// Key is the redis key holding eventID's attendee list.
func Key(eventID string) string {
	return keyPrefix + eventID
}
