package journey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 20, 0, 0, 0, time.Local)
}

func TestExtendStreak(t *testing.T) {
	tests := []struct {
		name       string
		st         Stats
		now        time.Time
		wantStreak int
		wantShield bool
	}{
		{"first lesson", Stats{}, day(5), 1, false},
		{"legacy streak kept", Stats{Streak: 4}, day(5), 4, false},
		{"same day", Stats{Streak: 2, LastActive: "2026-03-05"}, day(5), 2, false},
		{"next day", Stats{Streak: 2, LastActive: "2026-03-04"}, day(5), 3, false},
		{"gap resets", Stats{Streak: 6, LastActive: "2026-03-02"}, day(5), 1, false},
		{"shield spent on gap", Stats{Streak: 6, LastActive: "2026-03-02", StreakShield: true}, day(5), 7, false},
		{"shield kept next day", Stats{Streak: 6, LastActive: "2026-03-04", StreakShield: true}, day(5), 7, true},
		{"clock went back", Stats{Streak: 3, LastActive: "2026-03-09"}, day(5), 1, false},
		{"unreadable day", Stats{Streak: 3, LastActive: "yesterday"}, day(5), 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.st.extendStreak(tt.now)
			assert.Equal(t, tt.wantStreak, got.Streak)
			assert.Equal(t, tt.wantShield, got.StreakShield)
			assert.Equal(t, "2026-03-05", got.LastActive)
		})
	}
}

func TestCreditXP_NewDayStartsFresh(t *testing.T) {
	st := Stats{DailyXP: 120, XPDay: "2026-03-04"}

	st = st.creditXP(day(4), 30)
	assert.Equal(t, 150, st.DailyXP)

	st = st.creditXP(day(5), 40)
	assert.Equal(t, 40, st.DailyXP)
	assert.Equal(t, "2026-03-05", st.XPDay)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, daysBetween("2026-03-05", "2026-03-05"))
	assert.Equal(t, 1, daysBetween("2026-02-28", "2026-03-01"))
	assert.Equal(t, 31, daysBetween("2026-03-01", "2026-04-01"))
	assert.Equal(t, -1, daysBetween("", "2026-03-01"))
}
