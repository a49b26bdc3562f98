package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/checkin-service/internal/domain"
)

// newTestClient connects to REDIS_TEST_ADDR; the tests skip without it.
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}
	return client
}

func TestAttendeeCacheRoundTrip(t *testing.T) {
	client := newTestClient(t)
	c := NewAttendeeCache(client, time.Minute)
	ctx := context.Background()
	eventID := "evt-" + uuid.NewString()
	t.Cleanup(func() { client.Del(context.Background(), Key(eventID)) })

	in := []domain.Attendee{
		{ID: "1", EventID: eventID, CheckedIn: true},
		{ID: "2", EventID: eventID, Refunded: true},
	}
	require.NoError(t, c.Put(ctx, eventID, in))

	out, ok, err := c.Get(ctx, eventID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)

	ttl := client.TTL(ctx, Key(eventID)).Val()
	assert.True(t, ttl > 0 && ttl <= time.Minute)
}

func TestAttendeeCacheMiss(t *testing.T) {
	c := NewAttendeeCache(newTestClient(t), time.Minute)

	out, ok, err := c.Get(context.Background(), "evt-"+uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, out)
}

func TestAttendeeCacheEmptyListIsAHit(t *testing.T) {
	client := newTestClient(t)
	c := NewAttendeeCache(client, time.Minute)
	ctx := context.Background()
	eventID := "evt-" + uuid.NewString()
	t.Cleanup(func() { client.Del(context.Background(), Key(eventID)) })

	require.NoError(t, c.Put(ctx, eventID, []domain.Attendee{}))
	out, ok, err := c.Get(ctx, eventID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "checkin:attendees:abc", Key("abc"))
}
