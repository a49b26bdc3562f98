package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/spec-kit/checkin-service/internal/config"
	"github.com/spec-kit/checkin-service/internal/domain"
	"github.com/spec-kit/checkin-service/internal/observability"
)

const (
	outcomeSuccess   = "success"
	outcomeRetryable = "retryable_error"
	outcomePermanent = "permanent_error"

	errorBodyLimit = 512
)

// ClientConfig is fixed at construction; the client never mutates it.
type ClientConfig struct {
	BaseURL          string
	Token            string
	Timeout          time.Duration
	MaxRetries       int
	BackoffBase      time.Duration
	BackoffMax       time.Duration
	FollowPagination bool
	MaxPages         int
}

// ConfigFrom builds a ClientConfig from the environment-backed settings.
func ConfigFrom(cfg config.UpstreamConfig) ClientConfig {
	return ClientConfig{
		BaseURL:          cfg.BaseURL,
		Token:            cfg.Token,
		Timeout:          cfg.Timeout(),
		MaxRetries:       cfg.MaxRetries,
		BackoffBase:      cfg.BackoffBase(),
		BackoffMax:       cfg.BackoffMax(),
		FollowPagination: cfg.FollowPagination,
		MaxPages:         cfg.MaxPages,
	}
}

// Client fetches attendee listings from the Eventbrite v3 API.
type Client struct {
	cfg     ClientConfig
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewClient validates cfg and constructs a client.
func NewClient(cfg ClientConfig, logger *zap.Logger, metrics *observability.Metrics) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse upstream base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("upstream base url %q must be absolute", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BackoffBase < 0 {
		cfg.BackoffBase = 0
	}
	if cfg.BackoffMax < cfg.BackoffBase {
		cfg.BackoffMax = cfg.BackoffBase
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:     cfg,
		baseURL: base,
		http:    &http.Client{},
		logger:  logger,
		metrics: metrics,
	}, nil
}

// FetchAttendees returns every attendee registered for eventID. When pagination
// is followed, pages are concatenated in provider order.
func (c *Client) FetchAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, ErrMissingEventID
	}

	attendees := make([]domain.Attendee, 0)
	continuation := ""
	for page := 1; ; page++ {
		result, err := c.fetchPageWithRetry(ctx, eventID, continuation)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, result.Attendees...)

		if !c.cfg.FollowPagination || !result.Pagination.HasMoreItems {
			return attendees, nil
		}
		if result.Pagination.Continuation == "" {
			return nil, &RequestError{EventID: eventID, Err: errors.New("has_more_items set without a continuation token")}
		}
		if page >= c.cfg.MaxPages {
			return nil, &RequestError{EventID: eventID, Err: fmt.Errorf("attendee listing exceeds %d pages", c.cfg.MaxPages)}
		}
		continuation = result.Pagination.Continuation
	}
}

func (c *Client) fetchPageWithRetry(ctx context.Context, eventID, continuation string) (*domain.AttendeePage, error) {
	var lastErr error
	attempt := 0
	operation := func() (*domain.AttendeePage, error) {
		attempt++
		page, err := c.fetchPage(ctx, eventID, continuation)
		if err == nil {
			c.metrics.RecordUpstream(outcomeSuccess)
			return page, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			c.metrics.RecordUpstream(outcomePermanent)
			return nil, backoff.Permanent(err)
		}
		c.metrics.RecordUpstream(outcomeRetryable)
		return nil, err
	}
	notify := func(err error, delay time.Duration) {
		c.logger.Warn("upstream request failed; retrying",
			zap.String("event_id", eventID),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err))
	}

	page, err := backoff.RetryNotifyWithData(operation, c.retryPolicy(ctx), notify)
	if err == nil {
		return page, nil
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return nil, err
	}
	// The caller's context ended the loop. A deadline keeps the last provider
	// failure so a timeout stays retryable; a cancellation is final.
	if errors.Is(err, context.DeadlineExceeded) && lastErr != nil {
		return nil, lastErr
	}
	return nil, &RequestError{EventID: eventID, Err: err}
}

// retryPolicy is capped exponential backoff, bounded by MaxRetries and by the
// time left on ctx.
func (c *Client) retryPolicy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.cfg.BackoffBase
	exp.MaxInterval = c.cfg.BackoffMax
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0
	exp.Reset()

	budget := &deadlineBackOff{BackOff: exp, ctx: ctx, attempt: c.cfg.Timeout}
	return backoff.WithContext(backoff.WithMaxRetries(budget, uint64(c.cfg.MaxRetries)), ctx)
}

// deadlineBackOff stops retrying once the caller's deadline cannot hold the
// next delay plus one more full attempt.
type deadlineBackOff struct {
	backoff.BackOff
	ctx     context.Context
	attempt time.Duration
}

func (d *deadlineBackOff) NextBackOff() time.Duration {
	next := d.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if deadline, ok := d.ctx.Deadline(); ok && time.Until(deadline) < next+d.attempt {
		return backoff.Stop
	}
	return next
}

func (c *Client) fetchPage(ctx context.Context, eventID, continuation string) (*domain.AttendeePage, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.attendeesURL(eventID, continuation), nil)
	if err != nil {
		return nil, &RequestError{EventID: eventID, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// A cancelled caller is final; timeouts and transport failures are not.
		return nil, &RequestError{EventID: eventID, Retryable: !callerCancelled(ctx), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &RequestError{
			EventID:    eventID,
			StatusCode: resp.StatusCode,
			Retryable:  retryableStatus(resp.StatusCode),
			Err:        fmt.Errorf("%s: %s", http.StatusText(resp.StatusCode), strings.TrimSpace(string(snippet))),
		}
	}

	var page domain.AttendeePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		retryable := !callerCancelled(ctx) && errors.Is(err, context.DeadlineExceeded)
		return nil, &RequestError{EventID: eventID, StatusCode: resp.StatusCode, Retryable: retryable, Err: fmt.Errorf("decode attendees: %w", err)}
	}
	return &page, nil
}

func callerCancelled(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}

func (c *Client) attendeesURL(eventID, continuation string) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/v3/events/" + eventID + "/attendees/"
	u.RawPath = c.baseURL.EscapedPath() + "/v3/events/" + url.PathEscape(eventID) + "/attendees/"
	q := url.Values{}
	q.Set("token", c.cfg.Token)
	if continuation != "" {
		q.Set("continuation", continuation)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
