package session

import (
	"math"
	"slices"
	"time"
)

// Speed buckets a step time for the summary chart.
type Speed int

const (
	SpeedFast   Speed = iota // Under SpeedWindow
	SpeedMedium              // Under twice SpeedWindow
	SpeedSlow
)

// SpeedOf returns the bucket for an answer that took d.
func SpeedOf(d time.Duration) Speed {
	switch {
	case d < SpeedWindow:
		return SpeedFast
	case d < 2*SpeedWindow:
		return SpeedMedium
	}
	return SpeedSlow
}

// Summary holds the data displayed on the lesson result screen.
type Summary struct {
	Result
	Hearts     int
	BestStreak int
	// Fastest is NoTime if no step was answered.
	Fastest   time.Duration
	StepTimes []time.Duration
	// Accuracy is the rounded percentage of correct answers over the
	// whole lesson, including steps never reached.
	Accuracy     int
	Points       int
	CompletionXP int
	Duration     time.Duration
}

// HasFastest reports whether a fastest time is worth showing.
func (s Summary) HasFastest() bool {
	return s.Fastest != NoTime && s.Fastest < SpeedWindow
}

// TotalXP is the answer XP plus the completion award.
func (s Summary) TotalXP() int {
	return s.Points + s.CompletionXP
}

// Summary builds the result-screen data. It is available once the
// attempt has ended.
func (c *Controller) Summary() Summary {
	if c.state.Phase != PhaseResult && c.state.Phase != PhaseFinished {
		violation("summary", "phase is %s, want result", c.state.Phase)
	}

	s := Summary{
		Result:     c.result,
		Hearts:     c.state.Hearts,
		BestStreak: c.state.BestStreak,
		Fastest:    c.state.Fastest,
		StepTimes:  slices.Clone(c.state.StepTimes),
		Points:     c.state.Points,
		Duration:   c.Elapsed(),
	}
	if c.state.Total > 0 {
		s.Accuracy = int(math.Round(float64(c.state.CorrectCount) / float64(c.state.Total) * 100))
	}
	if c.result.Completed {
		s.CompletionXP = CompletionXP
	}
	return s
}
