package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCheckinStatus(t *testing.T) {
	cases := []struct {
		token string
		want  CheckinStatus
	}{
		{"checkedin", CheckinStatusCheckedIn},
		{"CheckedIn", CheckinStatusCheckedIn},
		{" noshow ", CheckinStatusNoShow},
		{"NOSHOW", CheckinStatusNoShow},
		{"all", CheckinStatusAll},
		{"", CheckinStatusAll},
	}
	for _, tc := range cases {
		for _, strict := range []bool{false, true} {
			got, err := ParseCheckinStatus(tc.token, strict)
			require.NoError(t, err, "token %q strict %v", tc.token, strict)
			assert.Equal(t, tc.want, got, "token %q strict %v", tc.token, strict)
		}
	}
}

func TestParseCheckinStatusUnknownTokenPermissive(t *testing.T) {
	for _, token := range []string{"checked-in", "present", "1"} {
		got, err := ParseCheckinStatus(token, false)
		require.NoError(t, err)
		assert.Equal(t, CheckinStatusAll, got)
	}
}

func TestParseCheckinStatusUnknownTokenStrict(t *testing.T) {
	for _, token := range []string{"checked-in", "present", "1"} {
		_, err := ParseCheckinStatus(token, true)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidFilter))

		var filterErr *InvalidFilterError
		require.True(t, errors.As(err, &filterErr))
		assert.Equal(t, token, filterErr.Token)
	}
}
