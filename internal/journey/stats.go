package journey

import "time"

// DefaultEnergy is a new learner's starting energy.
const DefaultEnergy = 25

// DailyRewardXP is credited by the once-a-day reward.
const DailyRewardXP = 50

const dayLayout = "2006-01-02"

// Stats are the learner's aggregate counters.
type Stats struct {
	Streak       int  `json:"streak"`
	Gems         int  `json:"gems"`
	Energy       int  `json:"energy"`
	DailyXP      int  `json:"dailyXp"`
	StreakShield bool `json:"streakShield"`

	// LastActive is the local day of the last completed lesson.
	LastActive string `json:"lastActive,omitempty"`
	// XPDay is the local day DailyXP counts toward.
	XPDay string `json:"xpDay,omitempty"`
	// LastDaily is the local day the daily reward was last claimed.
	LastDaily string `json:"lastDaily,omitempty"`
}

// DefaultStats returns the stats of a new learner.
func DefaultStats() Stats {
	return Stats{Energy: DefaultEnergy}
}

// Multiplier is an XP multiplier earned by keeping a daily streak.
type Multiplier struct {
	Factor int
	Label  string // empty for 1x
}

// StreakMultiplier returns the multiplier for a day streak.
func StreakMultiplier(streak int) Multiplier {
	switch {
	case streak >= 7:
		return Multiplier{Factor: 3, Label: "3x XP"}
	case streak >= 3:
		return Multiplier{Factor: 2, Label: "2x XP"}
	}
	return Multiplier{Factor: 1}
}

// creditXP adds xp to the total for now's day, starting a fresh total
// when the day has changed.
func (st Stats) creditXP(now time.Time, xp int) Stats {
	today := now.Format(dayLayout)
	if st.XPDay != today {
		st.XPDay = today
		st.DailyXP = 0
	}
	st.DailyXP += xp
	return st
}

// extendStreak counts now's day toward the streak. Playing on
// consecutive days grows it; skipping a day resets it to one unless a
// streak shield is held, which is spent instead.
func (st Stats) extendStreak(now time.Time) Stats {
	today := now.Format(dayLayout)
	if st.LastActive == "" {
		st.LastActive = today
		st.Streak = max(st.Streak, 1)
		return st
	}

	switch gap := daysBetween(st.LastActive, today); {
	case gap == 0:
		return st
	case gap == 1:
		st.Streak++
	case gap > 1 && st.StreakShield:
		st.StreakShield = false
		st.Streak++
	default:
		st.Streak = 1
	}
	st.LastActive = today
	return st
}

// ClaimedDaily reports whether the daily reward was claimed on now's day.
func (st Stats) ClaimedDaily(now time.Time) bool {
	return st.LastDaily == now.Format(dayLayout)
}

// daysBetween returns the whole days from a to b, or -1 if either is
// not a day.
func daysBetween(a, b string) int {
	from, err := time.Parse(dayLayout, a)
	if err != nil {
		return -1
	}
	to, err := time.Parse(dayLayout, b)
	if err != nil {
		return -1
	}
	return int(to.Sub(from) / (24 * time.Hour))
}
