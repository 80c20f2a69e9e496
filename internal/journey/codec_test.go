package journey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rheo/rheo/internal/session"
)

func TestProgressRoundTripPreservesStatusAndStars(t *testing.T) {
	path := DefaultPath()
	p, _, err := Complete(Seed(path), path, 1, session.Result{Completed: true, Stars: 2})
	require.NoError(t, err)

	b, err := EncodeProgress(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"version":"v1"`)

	back, err := DecodeProgress(b)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestDecodeProgress_Legacy(t *testing.T) {
	raw := `[{"id":1,"status":"completed","stars":3},{"id":2,"status":"active","stars":0}]`
	p, err := DecodeProgress([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, NodeState{Status: StatusCompleted, Stars: 3}, p[1])
	assert.Equal(t, StatusActive, p[2].Status)
}

func TestDecodeProgress_Versions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"minor bump", `{"version":"v1.2.0","nodes":{"1":{"status":"active","stars":0}}}`, nil},
		{"major bump", `{"version":"v2","nodes":{}}`, ErrUnsupportedVersion},
		{"garbage version", `{"version":"latest","nodes":{}}`, ErrUnsupportedVersion},
		{"missing version", `{"nodes":{}}`, ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProgress([]byte(tt.raw))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestDecodeProgress_Malformed(t *testing.T) {
	_, err := DecodeProgress([]byte(`{not json`))
	assert.Error(t, err)
}

func TestStatsRoundTrip(t *testing.T) {
	s := Stats{Streak: 12, Gems: 985, Energy: 20, DailyXP: 45, StreakShield: true}
	b, err := EncodeStats(s)
	require.NoError(t, err)

	back, err := DecodeStats(b)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestDecodeStats_Legacy(t *testing.T) {
	raw := `{"streak":3,"gems":10,"energy":5,"xpToday":40,"streakShield":false}`
	s, err := DecodeStats([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, Stats{Streak: 3, Gems: 10, Energy: 5, DailyXP: 40}, s)
}

func TestDecodeStats_MissingFieldsKeepDefaults(t *testing.T) {
	s, err := DecodeStats([]byte(`{"version":"v1","streak":2}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultEnergy, s.Energy)
	assert.Equal(t, 2, s.Streak)
}
