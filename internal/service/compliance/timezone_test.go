package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		state    string
		wantZone string
		wantDST  bool
		wantOK   bool
	}{
		{name: "eastern state", state: "NY", wantZone: "America/New_York", wantDST: true, wantOK: true},
		{name: "central state", state: "TX", wantZone: "America/Chicago", wantDST: true, wantOK: true},
		{name: "mountain state", state: "CO", wantZone: "America/Denver", wantDST: true, wantOK: true},
		{name: "pacific state", state: "CA", wantZone: "America/Los_Angeles", wantDST: true, wantOK: true},
		{name: "arizona skips dst", state: "AZ", wantZone: "America/Phoenix", wantDST: false, wantOK: true},
		{name: "hawaii skips dst", state: "HI", wantZone: "Pacific/Honolulu", wantDST: false, wantOK: true},
		{name: "alaska", state: "AK", wantZone: "America/Anchorage", wantDST: true, wantOK: true},
		{name: "district of columbia", state: "DC", wantZone: "America/New_York", wantDST: true, wantOK: true},
		{name: "lowercase", state: "fl", wantZone: "America/New_York", wantDST: true, wantOK: true},
		{name: "surrounding whitespace", state: " oh ", wantZone: "America/New_York", wantDST: true, wantOK: true},
		{name: "unknown code", state: "XX", wantOK: false},
		{name: "empty", state: "", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			info, ok := Resolve(tc.state)
			require.Equal(t, tc.wantOK, ok)
			if !tc.wantOK {
				return
			}
			assert.Equal(t, tc.wantZone, info.Name)
			assert.Equal(t, tc.wantDST, info.ObservesDST)
		})
	}
}

func TestStateTimezones_CompleteAndLoadable(t *testing.T) {
	t.Parallel()

	// 50 states plus DC.
	require.Len(t, stateTimezones, 51)
	for code, info := range stateTimezones {
		loc, err := info.Location()
		require.NoError(t, err, "state %s", code)
		require.NotNil(t, loc)
	}
}
