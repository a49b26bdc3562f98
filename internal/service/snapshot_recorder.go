package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/checkin-service/internal/domain"
	"github.com/spec-kit/checkin-service/internal/events"
	"github.com/spec-kit/checkin-service/internal/repository"
)

// SnapshotRecorder persists a check-in tally for every successful fetch and
// logs provider failures.
type SnapshotRecorder struct {
	dispatcher events.Dispatcher
	snapshots  repository.SnapshotRepository
	logger     *zap.Logger
}

// NewSnapshotRecorder creates the recorder. snapshots may be nil, in which case
// only failures are logged.
func NewSnapshotRecorder(dispatcher events.Dispatcher, snapshots repository.SnapshotRepository, logger *zap.Logger) *SnapshotRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotRecorder{
		dispatcher: dispatcher,
		snapshots:  snapshots,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (r *SnapshotRecorder) RegisterHandlers() {
	if r.dispatcher == nil {
		return
	}
	if r.snapshots != nil {
		r.dispatcher.Subscribe(events.EventAttendeesFetched, r.handleAttendeesFetched)
	}
	r.dispatcher.Subscribe(events.EventUpstreamFailed, r.handleUpstreamFailed)
}

func (r *SnapshotRecorder) handleAttendeesFetched(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AttendeesFetchedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	snapshot := &domain.CheckinSnapshot{
		ID:        uuid.NewString(),
		EventID:   event.EventID,
		Total:     payload.Summary.Total,
		CheckedIn: payload.Summary.CheckedIn,
		NoShow:    payload.Summary.NoShow,
		Cancelled: payload.Summary.Cancelled,
		Refunded:  payload.Summary.Refunded,
		FetchedAt: event.Timestamp,
	}
	if err := r.snapshots.Create(ctx, snapshot); err != nil {
		return fmt.Errorf("record snapshot for %s: %w", event.EventID, err)
	}
	r.logger.Debug("AttendeesFetched",
		zap.String("event_id", event.EventID),
		zap.Int("total", snapshot.Total),
		zap.Int("checked_in", snapshot.CheckedIn))
	return nil
}

func (r *SnapshotRecorder) handleUpstreamFailed(ctx context.Context, event events.Event) error {
	r.logger.Warn("UpstreamFailed", zap.String("event_id", event.EventID), zap.Any("payload", event.Payload))
	return nil
}
