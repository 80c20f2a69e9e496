package session

import (
	"math"
	"slices"
	"time"
)

// Scoring and heart rules shared by every exercise kind.
const (
	MaxHearts        = 5
	BasePoints       = 15
	SpeedBonusPoints = 5
	SpeedWindow      = 10 * time.Second

	// CompletionXP is credited once when a lesson ends with hearts left.
	CompletionXP = 50
)

// NoTime stands in for "no fastest answer yet".
const NoTime = time.Duration(math.MaxInt64)

// Phase represents where the controller is in a lesson attempt.
type Phase int

const (
	PhaseIdle       Phase = iota // No attempt started, or abandoned
	PhaseInProgress              // Serving exercises
	PhaseResult                  // Terminal; waiting for Finish
	PhaseFinished                // Result has been taken
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInProgress:
		return "in progress"
	case PhaseResult:
		return "result"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Milestone is a streak length that pays a one-off bonus.
type Milestone struct {
	Streak int
	Bonus  int
	Icon   string
	Name   string
}

// Milestones are checked against the exact streak value, so a bonus is
// paid once per streak and never for milestones already passed.
var Milestones = []Milestone{
	{Streak: 3, Bonus: 5, Icon: "🔥", Name: "On Fire!"},
	{Streak: 5, Bonus: 10, Icon: "⚡", Name: "Unstoppable!"},
	{Streak: 7, Bonus: 25, Icon: "💎", Name: "Legendary!"},
}

// MilestoneAt returns the milestone reached at exactly streak, if any.
func MilestoneAt(streak int) (Milestone, bool) {
	for _, m := range Milestones {
		if m.Streak == streak {
			return m, true
		}
	}
	return Milestone{}, false
}

// State is a snapshot of one lesson attempt.
type State struct {
	Phase     Phase
	StepIndex int
	Total     int

	// Answered is set once the current step has been submitted.
	Answered bool
	// LastCorrect is nil until the current step is answered.
	LastCorrect *bool

	Hearts       int
	Streak       int
	BestStreak   int
	CorrectCount int

	// StepTimes holds one elapsed duration per answered step.
	StepTimes []time.Duration
	// Fastest is NoTime until a step has been answered.
	Fastest time.Duration

	// Points is the XP earned by answers so far.
	Points int
}

func newState(total int) State {
	return State{
		Phase:   PhaseInProgress,
		Total:   total,
		Hearts:  MaxHearts,
		Fastest: NoTime,
	}
}

func (s State) clone() State {
	s.StepTimes = slices.Clone(s.StepTimes)
	if s.LastCorrect != nil {
		v := *s.LastCorrect
		s.LastCorrect = &v
	}
	return s
}

// StepOutcome describes what a single submitted answer earned.
type StepOutcome struct {
	Correct     bool
	Points      int
	SpeedBonus  bool
	StreakBonus int
	// Milestone is set when this answer reached a streak milestone.
	Milestone *Milestone
	Streak    int
	Hearts    int
	Elapsed   time.Duration
}

// AdvanceResult reports where Advance moved the attempt.
type AdvanceResult struct {
	Finished  bool
	StepIndex int
}

// Result is the immutable outcome of an attempt.
type Result struct {
	Completed    bool
	Stars        int
	CorrectCount int
	Total        int
}

// StarsForHearts maps remaining hearts to a 0-3 star rating.
func StarsForHearts(hearts int) int {
	switch {
	case hearts >= 4:
		return 3
	case hearts >= 2:
		return 2
	case hearts > 0:
		return 1
	}
	return 0
}
