package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/checkin-service/internal/api/dto"
	"github.com/spec-kit/checkin-service/internal/domain"
	"github.com/spec-kit/checkin-service/internal/service"
	"github.com/spec-kit/checkin-service/internal/upstream"
	apperrors "github.com/spec-kit/checkin-service/pkg/util/errorutil"
)

const (
	staleHeader  = "X-Attendees-Stale"
	statusHeader = "X-Checkin-Status"
)

// CheckinsHandler serves attendee check-in endpoints.
type CheckinsHandler struct {
	service *service.CheckinService
}

// NewCheckinsHandler constructs handler.
func NewCheckinsHandler(checkinService *service.CheckinService) *CheckinsHandler {
	return &CheckinsHandler{service: checkinService}
}

// ListAttendees GET /events/:eventId/attendees?status=.
func (h *CheckinsHandler) ListAttendees(c *fiber.Ctx) error {
	eventID := utils.CopyString(c.Params("eventId"))
	token := utils.CopyString(c.Query("status"))

	result, err := h.service.ListAttendees(c.UserContext(), eventID, token)
	if err != nil {
		return mapServiceError(err, eventID)
	}
	c.Set(statusHeader, string(result.Status))
	if result.Stale {
		c.Set(staleHeader, "true")
	}
	return c.JSON(result.Attendees)
}

// Summary GET /events/:eventId/attendees/summary.
func (h *CheckinsHandler) Summary(c *fiber.Ctx) error {
	eventID := utils.CopyString(c.Params("eventId"))

	result, err := h.service.Summary(c.UserContext(), eventID)
	if err != nil {
		return mapServiceError(err, eventID)
	}
	if result.Stale {
		c.Set(staleHeader, "true")
	}
	return c.JSON(fiber.Map{"data": dto.NewSummaryResponse(result.Summary, result.Stale)})
}

// History GET /events/:eventId/attendees/history?limit=.
func (h *CheckinsHandler) History(c *fiber.Ctx) error {
	eventID := utils.CopyString(c.Params("eventId"))
	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		return err
	}

	snapshots, err := h.service.History(c.UserContext(), eventID, limit)
	if err != nil {
		return mapServiceError(err, eventID)
	}
	return c.JSON(fiber.Map{"data": dto.NewSnapshotResponses(snapshots)})
}

func parseLimit(val string) (int, error) {
	if val == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return 0, apperrors.NewValidationError("limit must be a positive integer", map[string]any{"limit": val})
	}
	return parsed, nil
}

func mapServiceError(err error, eventID string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidFilter):
		var filterErr *domain.InvalidFilterError
		details := map[string]any{"allowed": []string{
			string(domain.CheckinStatusAll),
			string(domain.CheckinStatusCheckedIn),
			string(domain.CheckinStatusNoShow),
		}}
		if errors.As(err, &filterErr) {
			details["status"] = filterErr.Token
		}
		return apperrors.NewInvalidFilter(err, details)
	case errors.Is(err, upstream.ErrMissingEventID):
		return apperrors.NewValidationError("event id required", nil)
	case upstream.IsNotFound(err):
		return apperrors.NewEventNotFound(eventID, err)
	case errors.Is(err, upstream.ErrUpstreamRequest):
		details := map[string]any{"event_id": eventID, "retryable": upstream.IsRetryable(err)}
		var reqErr *upstream.RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode != 0 {
			details["upstream_status"] = reqErr.StatusCode
		}
		return apperrors.NewBadGateway("attendee provider request failed", details, err)
	case errors.Is(err, service.ErrHistoryUnavailable):
		return apperrors.NewUnavailable("check-in history is not available", err)
	default:
		return apperrors.NewInternalError(err)
	}
}
