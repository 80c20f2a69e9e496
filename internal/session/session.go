package session

import (
	"fmt"
	"slices"
	"time"

	"github.com/rheo/rheo/internal/exercise"
)

// Notifier receives learner-facing notifications as the attempt unfolds.
type Notifier interface {
	XP(points int)
	Milestone(icon, name string)
	Achievement(icon, title, desc string)
}

type discard struct{}

func (discard) XP(int)                            {}
func (discard) Milestone(string, string)          {}
func (discard) Achievement(string, string, string) {}

// ContractError is the panic value raised when the controller is driven
// out of sequence. It always indicates a bug in the caller.
type ContractError struct {
	Op     string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("session: %s: %s", e.Op, e.Reason)
}

func violation(op, format string, args ...any) {
	panic(&ContractError{Op: op, Reason: fmt.Sprintf(format, args...)})
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the wall clock used for step timing.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithNotifier sets where XP, milestone and achievement notices go.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// Controller drives one lesson attempt at a time. It is not safe for
// concurrent use; callers invoke it from a single event loop.
type Controller struct {
	now      func() time.Time
	notifier Notifier

	exercises []exercise.Descriptor
	state     State
	stepStart time.Time
	startedAt time.Time
	endedAt   time.Time
	result    Result
}

// New creates an idle controller.
func New(opts ...Option) *Controller {
	c := &Controller{now: time.Now, notifier: discard{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a new attempt over exercises. It panics if exercises is
// empty or an attempt is still running.
func (c *Controller) Start(exercises []exercise.Descriptor) State {
	if len(exercises) == 0 {
		violation("start", "no exercises")
	}
	if c.state.Phase == PhaseInProgress || c.state.Phase == PhaseResult {
		violation("start", "attempt already %s", c.state.Phase)
	}

	c.exercises = slices.Clone(exercises)
	c.state = newState(len(exercises))
	c.result = Result{}
	c.startedAt = c.now()
	c.stepStart = c.startedAt
	c.endedAt = time.Time{}
	return c.State()
}

// SubmitAnswer records the correctness of the current step's answer.
func (c *Controller) SubmitAnswer(correct bool) StepOutcome {
	c.require("submit", PhaseInProgress)
	if c.state.Answered {
		violation("submit", "step %d already answered", c.state.StepIndex)
	}

	elapsed := c.now().Sub(c.stepStart)
	if elapsed < 0 {
		elapsed = 0
	}
	s := &c.state
	s.StepTimes = append(s.StepTimes, elapsed)
	if elapsed < s.Fastest {
		s.Fastest = elapsed
	}
	s.Answered = true
	s.LastCorrect = &correct

	out := StepOutcome{Correct: correct, Elapsed: elapsed}
	if correct {
		s.CorrectCount++
		s.Streak++
		s.BestStreak = max(s.BestStreak, s.Streak)

		out.Points = BasePoints
		if elapsed < SpeedWindow {
			out.SpeedBonus = true
			out.Points += SpeedBonusPoints
		}
		if m, ok := MilestoneAt(s.Streak); ok {
			out.Milestone = &m
			out.StreakBonus = m.Bonus
			out.Points += m.Bonus
		}
		s.Points += out.Points

		c.notifier.XP(out.Points)
		if out.Milestone != nil {
			c.notifier.Milestone(out.Milestone.Icon, out.Milestone.Name)
		}
	} else {
		s.Streak = 0
		s.Hearts = max(0, s.Hearts-1)
	}

	out.Streak = s.Streak
	out.Hearts = s.Hearts
	return out
}

// Advance moves past an answered step. Running out of hearts or
// answering the last step ends the attempt.
func (c *Controller) Advance() AdvanceResult {
	c.require("advance", PhaseInProgress)
	if !c.state.Answered {
		violation("advance", "step %d not answered", c.state.StepIndex)
	}

	s := &c.state
	switch {
	case s.Hearts == 0:
		c.terminate(false)
	case s.StepIndex == s.Total-1:
		c.terminate(true)
	default:
		s.StepIndex++
		s.Answered = false
		s.LastCorrect = nil
		c.stepStart = c.now()
		return AdvanceResult{StepIndex: s.StepIndex}
	}
	return AdvanceResult{Finished: true, StepIndex: s.StepIndex}
}

func (c *Controller) terminate(completed bool) {
	c.state.Phase = PhaseResult
	c.endedAt = c.now()
	c.result = Result{
		Completed:    completed,
		Stars:        StarsForHearts(c.state.Hearts),
		CorrectCount: c.state.CorrectCount,
		Total:        c.state.Total,
	}
}

// Finish hands out the attempt's result. It may be called exactly once,
// after Advance has reported the attempt finished.
func (c *Controller) Finish() Result {
	c.require("finish", PhaseResult)
	c.state.Phase = PhaseFinished

	if c.result.Completed {
		c.notifier.XP(CompletionXP)
		c.notifier.Achievement("📚", "Lesson Complete", fmt.Sprintf("%d exercises finished!", c.result.Total))
	}
	return c.result
}

// Abandon discards the running attempt. The result of an abandoned
// attempt is never completed and earns no stars.
func (c *Controller) Abandon() Result {
	r := Result{CorrectCount: c.state.CorrectCount, Total: c.state.Total}
	c.state.Phase = PhaseIdle
	c.exercises = nil
	return r
}

// State returns a copy of the attempt's state.
func (c *Controller) State() State {
	return c.state.clone()
}

// Current returns the exercise at the current step.
func (c *Controller) Current() exercise.Descriptor {
	c.require("current", PhaseInProgress)
	return c.exercises[c.state.StepIndex]
}

// Progress returns the fraction of the lesson done, counting the current
// step once it is answered.
func (c *Controller) Progress() float64 {
	if c.state.Total == 0 {
		return 0
	}
	switch c.state.Phase {
	case PhaseResult, PhaseFinished:
		return 1
	}
	done := c.state.StepIndex
	if c.state.Answered {
		done++
	}
	return float64(done) / float64(c.state.Total)
}

// Elapsed returns the time from Start to the end of the attempt, or to
// now while it is still running.
func (c *Controller) Elapsed() time.Duration {
	if c.startedAt.IsZero() {
		return 0
	}
	if !c.endedAt.IsZero() {
		return c.endedAt.Sub(c.startedAt)
	}
	return c.now().Sub(c.startedAt)
}

func (c *Controller) require(op string, want Phase) {
	if c.state.Phase != want {
		violation(op, "phase is %s, want %s", c.state.Phase, want)
	}
}
