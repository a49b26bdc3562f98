package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorUnwrapsWrapped(t *testing.T) {
	base := NewEventNotFound("evt-1", errors.New("404"))
	wrapped := fmt.Errorf("list attendees: %w", base)

	de := ToDomainError(wrapped)
	assert.Equal(t, "EVENT_NOT_FOUND", de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.Equal(t, "evt-1", de.Details["event_id"])
}

func TestToDomainErrorFallsBackToInternal(t *testing.T) {
	de := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorMessageIncludesCause(t *testing.T) {
	err := NewBadGateway("upstream failed", nil, errors.New("status 503"))
	assert.Equal(t, "upstream failed: status 503", err.Error())
	assert.True(t, errors.Is(err, errors.Unwrap(err)))
}
