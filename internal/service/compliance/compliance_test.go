package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	svc, err := NewService()
	require.NoError(t, err)

	eastern := mustLoc(t, "America/New_York")
	pacific := mustLoc(t, "America/Los_Angeles")
	central := mustLoc(t, "America/Chicago")

	testCases := []struct {
		name          string
		state         string
		at            time.Time
		wantCompliant bool
		wantReason    string
		wantNext      time.Time
	}{
		{
			name:       "missing state fails closed",
			state:      "",
			at:         time.Date(2025, 6, 10, 12, 0, 0, 0, eastern),
			wantReason: "State required for TCPA timezone validation",
		},
		{
			name:       "unknown state fails closed",
			state:      "ZZ",
			at:         time.Date(2025, 6, 10, 12, 0, 0, 0, eastern),
			wantReason: "Invalid state code: ZZ",
		},
		{
			name:          "weekday midday compliant",
			state:         "NY",
			at:            time.Date(2025, 6, 10, 10, 0, 0, 0, eastern),
			wantCompliant: true,
		},
		{
			name:          "lowercase state accepted",
			state:         "ca",
			at:            time.Date(2025, 6, 11, 14, 0, 0, 0, pacific),
			wantCompliant: true,
		},
		{
			// 11 PM Eastern is 8 PM Pacific: local window still open, but
			// the absolute Eastern curfew wins.
			name:       "eastern curfew blocks even inside local window",
			state:      "CA",
			at:         time.Date(2025, 6, 10, 23, 0, 0, 0, eastern),
			wantReason: "Outside business hours (9 PM - 8 AM EST blocked)",
			wantNext:   time.Date(2025, 6, 11, 8, 0, 0, 0, eastern),
		},
		{
			name:       "eastern early morning retries same day",
			state:      "NY",
			at:         time.Date(2025, 6, 10, 6, 30, 0, 0, eastern),
			wantReason: "Outside business hours (9 PM - 8 AM EST blocked)",
			wantNext:   time.Date(2025, 6, 10, 8, 0, 0, 0, eastern),
		},
		{
			// 7 AM Pacific is 10 AM Eastern: passes the curfew, blocked by
			// the recipient's local open.
			name:       "local pre-open retries same local day",
			state:      "CA",
			at:         time.Date(2025, 6, 10, 7, 0, 0, 0, pacific),
			wantReason: "Outside business hours (8 AM - 9 PM, Mon-Fri in recipient timezone)",
			wantNext:   time.Date(2025, 6, 10, 8, 0, 0, 0, pacific),
		},
		{
			// 2025-06-14 is a Saturday.
			name:       "saturday defers to monday open",
			state:      "TX",
			at:         time.Date(2025, 6, 14, 12, 0, 0, 0, central),
			wantReason: "Outside business hours (8 AM - 9 PM, Mon-Fri in recipient timezone)",
			wantNext:   time.Date(2025, 6, 16, 8, 0, 0, 0, central),
		},
		{
			name:       "sunday defers to monday open",
			state:      "TX",
			at:         time.Date(2025, 6, 15, 9, 0, 0, 0, central),
			wantReason: "Outside business hours (8 AM - 9 PM, Mon-Fri in recipient timezone)",
			wantNext:   time.Date(2025, 6, 16, 8, 0, 0, 0, central),
		},
		{
			name:          "arizona no-dst zone compliant midday",
			state:         "AZ",
			at:            time.Date(2025, 1, 15, 12, 0, 0, 0, mustLoc(t, "America/Phoenix")),
			wantCompliant: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			decision := svc.Evaluate("+15551234567", tc.state, tc.at)
			assert.Equal(t, tc.wantCompliant, decision.Compliant)
			assert.Equal(t, tc.wantReason, decision.Reason)
			if tc.wantNext.IsZero() {
				assert.True(t, decision.NextEligibleAt.IsZero())
			} else {
				assert.True(t, tc.wantNext.Equal(decision.NextEligibleAt),
					"want %s, got %s", tc.wantNext, decision.NextEligibleAt)
				assert.True(t, decision.Recoverable())
			}
		})
	}
}

func TestEvaluate_DataFailuresNotRecoverable(t *testing.T) {
	t.Parallel()

	svc, err := NewService()
	require.NoError(t, err)

	at := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	for _, state := range []string{"", "XX", "Texas"} {
		decision := svc.Evaluate("+15551234567", state, at)
		assert.False(t, decision.Compliant)
		assert.False(t, decision.Recoverable())
	}
}

func TestNextBusinessOpen_FridayNightSkipsWeekend(t *testing.T) {
	t.Parallel()

	pacific := mustLoc(t, "America/Los_Angeles")
	// Friday 2025-06-13, 22:00 local.
	got := nextBusinessOpen(time.Date(2025, 6, 13, 22, 0, 0, 0, pacific))
	want := time.Date(2025, 6, 16, 8, 0, 0, 0, pacific)
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}
