package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/checkin-service/internal/domain"
	"github.com/spec-kit/checkin-service/internal/events"
	"github.com/spec-kit/checkin-service/internal/observability"
	"github.com/spec-kit/checkin-service/internal/repository"
	"github.com/spec-kit/checkin-service/internal/upstream"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// ErrHistoryUnavailable is returned when no snapshot store is configured.
var ErrHistoryUnavailable = errors.New("check-in history requires postgres")

// AttendeeSource fetches the attendee list of one event from the provider.
type AttendeeSource interface {
	FetchAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error)
}

// AttendeeCache stores the last successful attendee list per event.
type AttendeeCache interface {
	Put(ctx context.Context, eventID string, attendees []domain.Attendee) error
	Get(ctx context.Context, eventID string) ([]domain.Attendee, bool, error)
}

// CheckinDependencies bundles collaborators for the check-in service.
type CheckinDependencies struct {
	Source     AttendeeSource
	Cache      AttendeeCache
	Snapshots  repository.SnapshotRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	// StrictFilter rejects unrecognized status tokens instead of returning everyone.
	StrictFilter bool
	// StaleFallback serves the cached list when the provider fails transiently.
	StaleFallback bool
}

// AttendeeResult is a filtered attendee list.
type AttendeeResult struct {
	EventID   string
	Status    domain.CheckinStatus
	Attendees []domain.Attendee
	Stale     bool
}

// SummaryResult is a tally of one event's attendees.
type SummaryResult struct {
	Summary domain.CheckinSummary
	Stale   bool
}

// CheckinService coordinates fetching and classifying attendees.
type CheckinService struct {
	source        AttendeeSource
	cache         AttendeeCache
	snapshots     repository.SnapshotRepository
	dispatcher    events.Dispatcher
	metrics       *observability.Metrics
	logger        *zap.Logger
	strict        bool
	staleFallback bool
	now           func() time.Time
}

// NewCheckinService constructs the service.
func NewCheckinService(deps CheckinDependencies) *CheckinService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckinService{
		source:        deps.Source,
		cache:         deps.Cache,
		snapshots:     deps.Snapshots,
		dispatcher:    deps.Dispatcher,
		metrics:       deps.Metrics,
		logger:        logger,
		strict:        deps.StrictFilter,
		staleFallback: deps.StaleFallback,
		now:           time.Now,
	}
}

// ListAttendees fetches eventID's attendees and filters them by the status token.
// The token is validated before any upstream call.
func (s *CheckinService) ListAttendees(ctx context.Context, eventID, token string) (*AttendeeResult, error) {
	status, err := domain.ParseCheckinStatus(token, s.strict)
	if err != nil {
		return nil, err
	}

	attendees, stale, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}

	filtered := Classify(attendees, status)
	s.metrics.RecordClassified(string(status), len(filtered))
	return &AttendeeResult{
		EventID:   eventID,
		Status:    status,
		Attendees: filtered,
		Stale:     stale,
	}, nil
}

// Summary tallies eventID's attendees.
func (s *CheckinService) Summary(ctx context.Context, eventID string) (*SummaryResult, error) {
	attendees, stale, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &SummaryResult{Summary: Summarize(eventID, attendees), Stale: stale}, nil
}

// History returns recorded snapshots for eventID, newest first.
func (s *CheckinService) History(ctx context.Context, eventID string, limit int) ([]domain.CheckinSnapshot, error) {
	if s.snapshots == nil {
		return nil, ErrHistoryUnavailable
	}
	if eventID == "" {
		return nil, upstream.ErrMissingEventID
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.snapshots.ListByEvent(ctx, eventID, limit)
}

func (s *CheckinService) load(ctx context.Context, eventID string) ([]domain.Attendee, bool, error) {
	attendees, err := s.source.FetchAttendees(ctx, eventID)
	if err == nil {
		s.remember(ctx, eventID, attendees)
		s.publish(ctx, eventID, events.EventAttendeesFetched, events.AttendeesFetchedPayload{
			Summary: Summarize(eventID, attendees),
		})
		return attendees, false, nil
	}

	if cached, ok := s.fallback(ctx, eventID, err); ok {
		s.metrics.RecordStale()
		s.publish(ctx, eventID, events.EventUpstreamFailed, failurePayload(err, true))
		return cached, true, nil
	}
	s.publish(ctx, eventID, events.EventUpstreamFailed, failurePayload(err, false))
	return nil, false, err
}

// fallback only answers for transient provider failures: a 4xx such as an
// unknown event must reach the caller. A request that ran out of time still
// gets the cached copy; a cancelled one does not.
func (s *CheckinService) fallback(ctx context.Context, eventID string, cause error) ([]domain.Attendee, bool) {
	if !s.staleFallback || s.cache == nil || !upstream.IsRetryable(cause) || errors.Is(ctx.Err(), context.Canceled) {
		return nil, false
	}
	cached, ok, err := s.cache.Get(context.WithoutCancel(ctx), eventID)
	if err != nil {
		s.logger.Warn("attendee cache read failed", zap.String("event_id", eventID), zap.Error(err))
		return nil, false
	}
	if ok {
		s.logger.Warn("serving cached attendees after upstream failure",
			zap.String("event_id", eventID),
			zap.Error(cause))
	}
	return cached, ok
}

func (s *CheckinService) remember(ctx context.Context, eventID string, attendees []domain.Attendee) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, eventID, attendees); err != nil {
		s.logger.Warn("attendee cache write failed", zap.String("event_id", eventID), zap.Error(err))
	}
}

func (s *CheckinService) publish(ctx context.Context, eventID string, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil || eventID == "" {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EventID:   eventID,
		Timestamp: s.now().UTC(),
		Payload:   payload,
	})
}

func failurePayload(err error, servedStale bool) events.UpstreamFailedPayload {
	payload := events.UpstreamFailedPayload{
		Retryable:   upstream.IsRetryable(err),
		ServedStale: servedStale,
		Error:       err.Error(),
	}
	var reqErr *upstream.RequestError
	if errors.As(err, &reqErr) {
		payload.StatusCode = reqErr.StatusCode
	}
	return payload
}
