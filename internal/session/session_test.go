package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rheo/rheo/internal/exercise"
	"github.com/rheo/rheo/internal/notify"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time           { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testExercises(n int) []exercise.Descriptor {
	out := make([]exercise.Descriptor, n)
	for i := range out {
		out[i] = exercise.New(exercise.Trace{
			Prompt:  "What prints?",
			Options: []string{"1", "2"},
			Correct: 0,
		})
	}
	return out
}

// answerAll submits each answer after the given delay and advances.
func answerAll(t *testing.T, c *Controller, clock *fakeClock, answers []bool, delay time.Duration) []StepOutcome {
	t.Helper()
	var outs []StepOutcome
	for _, a := range answers {
		clock.Advance(delay)
		outs = append(outs, c.SubmitAnswer(a))
		if c.Advance().Finished {
			break
		}
	}
	return outs
}

func assertContractPanic(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected %s to panic", op)
		ce, ok := r.(*ContractError)
		require.True(t, ok, "panic value %T is not *ContractError", r)
		assert.Equal(t, op, ce.Op)
	}()
	fn()
}

func TestStart_ResetsCounters(t *testing.T) {
	c := New()
	s := c.Start(testExercises(3))

	assert.Equal(t, PhaseInProgress, s.Phase)
	assert.Equal(t, 0, s.StepIndex)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, MaxHearts, s.Hearts)
	assert.False(t, s.Answered)
	assert.Nil(t, s.LastCorrect)
	assert.Equal(t, NoTime, s.Fastest)
	assert.Empty(t, s.StepTimes)
}

func TestScenarioA_AllCorrect(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	c.Start(testExercises(5))

	answerAll(t, c, clock, []bool{true, true, true, true, true}, 3*time.Second)
	r := c.Finish()

	assert.Equal(t, Result{Completed: true, Stars: 3, CorrectCount: 5, Total: 5}, r)
	assert.Equal(t, MaxHearts, c.State().Hearts)
}

func TestScenarioB_FiveWrong(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	c.Start(testExercises(5))

	outs := answerAll(t, c, clock, []bool{false, false, false, false, false}, time.Second)
	require.Len(t, outs, 5)
	assert.Equal(t, 0, outs[4].Hearts)

	r := c.Finish()
	assert.Equal(t, Result{Completed: false, Stars: 0, CorrectCount: 0, Total: 5}, r)
}

func TestFiveWrong_EndsBeforeLastStep(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	c.Start(testExercises(8))

	outs := answerAll(t, c, clock, []bool{false, false, false, false, false, true, true, true}, time.Second)
	assert.Len(t, outs, 5, "attempt should end on the fifth wrong answer")
	assert.Equal(t, PhaseResult, c.State().Phase)
	assert.Equal(t, 4, c.State().StepIndex)

	r := c.Finish()
	assert.False(t, r.Completed)
	assert.Equal(t, 8, r.Total)
}

func TestSingleExercise(t *testing.T) {
	tests := []struct {
		name    string
		correct bool
		want    Result
		hearts  int
	}{
		{"correct", true, Result{Completed: true, Stars: 3, CorrectCount: 1, Total: 1}, MaxHearts},
		{"wrong", false, Result{Completed: true, Stars: 3, CorrectCount: 0, Total: 1}, MaxHearts - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			c := New(WithClock(clock.Now))
			c.Start(testExercises(1))

			clock.Advance(2 * time.Second)
			out := c.SubmitAnswer(tt.correct)
			assert.Equal(t, tt.hearts, out.Hearts)

			adv := c.Advance()
			assert.True(t, adv.Finished)
			assert.Equal(t, 0, adv.StepIndex)
			assert.Equal(t, tt.hearts, c.State().Hearts)
			assert.Equal(t, tt.want, c.Finish())
		})
	}
}

func TestSpeedWindowIsExclusive(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		bonus   bool
		points  int
	}{
		{SpeedWindow - time.Second, true, BasePoints + SpeedBonusPoints},
		{SpeedWindow - time.Millisecond, true, BasePoints + SpeedBonusPoints},
		{SpeedWindow, false, BasePoints},
		{SpeedWindow + time.Second, false, BasePoints},
	}
	for _, tt := range tests {
		t.Run(tt.elapsed.String(), func(t *testing.T) {
			clock := newFakeClock()
			c := New(WithClock(clock.Now))
			c.Start(testExercises(1))

			clock.Advance(tt.elapsed)
			out := c.SubmitAnswer(true)
			assert.Equal(t, tt.bonus, out.SpeedBonus)
			assert.Equal(t, tt.points, out.Points)
			assert.Equal(t, tt.elapsed, out.Elapsed)
		})
	}
}

func TestScenarioC_SpeedBonusAndHearts(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	c.Start(testExercises(3))

	clock.Advance(4200 * time.Millisecond)
	first := c.SubmitAnswer(true)
	c.Advance()

	clock.Advance(8900 * time.Millisecond)
	second := c.SubmitAnswer(true)
	c.Advance()

	clock.Advance(12 * time.Second)
	third := c.SubmitAnswer(false)
	res := c.Advance()

	assert.True(t, first.SpeedBonus)
	assert.True(t, second.SpeedBonus)
	assert.Equal(t, BasePoints+SpeedBonusPoints, second.Points)
	assert.Equal(t, 0, third.Points)
	assert.True(t, res.Finished)

	r := c.Finish()
	assert.Equal(t, 4, c.State().Hearts)
	assert.Equal(t, Result{Completed: true, Stars: 3, CorrectCount: 2, Total: 3}, r)

	st := c.State()
	assert.Equal(t, []time.Duration{4200 * time.Millisecond, 8900 * time.Millisecond, 12 * time.Second}, st.StepTimes)
	assert.Equal(t, 4200*time.Millisecond, st.Fastest)
}

func TestScenarioD_StreakMilestones(t *testing.T) {
	clock := newFakeClock()
	q := notify.NewQueue()
	c := New(WithClock(clock.Now), WithNotifier(q))
	c.Start(testExercises(8))

	// Slow answers keep the speed bonus out of the totals.
	outs := answerAll(t, c, clock, []bool{true, true, true, true, true, true, true, true}, 30*time.Second)
	require.Len(t, outs, 8)

	wantBonus := []int{0, 0, 5, 0, 10, 0, 25, 0}
	for i, out := range outs {
		assert.Equal(t, wantBonus[i], out.StreakBonus, "answer %d", i+1)
		assert.Equal(t, BasePoints+wantBonus[i], out.Points, "answer %d", i+1)
		assert.False(t, out.SpeedBonus)
	}
	require.NotNil(t, outs[2].Milestone)
	assert.Equal(t, "On Fire!", outs[2].Milestone.Name)
	assert.Equal(t, "Legendary!", outs[6].Milestone.Name)
	assert.Nil(t, outs[7].Milestone)

	var milestones []string
	for _, e := range q.Drain() {
		if e.Kind == notify.EventMilestone {
			milestones = append(milestones, e.Title)
		}
	}
	assert.Equal(t, []string{"On Fire!", "Unstoppable!", "Legendary!"}, milestones)
}

func TestMilestoneNotRepaidAfterReset(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	c.Start(testExercises(9))

	outs := answerAll(t, c, clock, []bool{true, true, true, true, false, true, true, true, true}, 30*time.Second)
	assert.Equal(t, 5, outs[2].StreakBonus)
	assert.Equal(t, 0, outs[3].StreakBonus)
	assert.Equal(t, 0, outs[4].Streak)
	assert.Equal(t, 5, outs[7].StreakBonus, "a new streak reaching 3 pays again")
	assert.Equal(t, 0, outs[8].StreakBonus)
	assert.Equal(t, 4, c.State().BestStreak)
}

func TestStreakNeverExceedsBest(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	answers := []bool{true, true, false, true, true, true, false, false, true}
	c.Start(testExercises(len(answers)))

	prevBest := 0
	for _, a := range answers {
		clock.Advance(5 * time.Second)
		out := c.SubmitAnswer(a)
		s := c.State()
		if !a {
			assert.Equal(t, 0, out.Streak)
		}
		assert.LessOrEqual(t, s.Streak, s.BestStreak)
		assert.GreaterOrEqual(t, s.BestStreak, prevBest)
		prevBest = s.BestStreak
		if c.Advance().Finished {
			break
		}
	}
	assert.Equal(t, 3, prevBest)
}

func TestFinish_NotifiesCompletion(t *testing.T) {
	q := notify.NewQueue()
	clock := newFakeClock()
	c := New(WithClock(clock.Now), WithNotifier(q))
	c.Start(testExercises(2))
	answerAll(t, c, clock, []bool{true, true}, time.Second)
	q.Drain()

	c.Finish()
	events := q.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, CompletionXP, events[0].Points)
	assert.Equal(t, "Lesson Complete", events[1].Title)
	assert.Equal(t, "2 exercises finished!", events[1].Desc)
}

func TestFinish_FailedAttemptNotifiesNothing(t *testing.T) {
	q := notify.NewQueue()
	clock := newFakeClock()
	c := New(WithClock(clock.Now), WithNotifier(q))
	c.Start(testExercises(5))
	answerAll(t, c, clock, []bool{false, false, false, false, false}, time.Second)

	c.Finish()
	assert.Zero(t, q.Len())
}

func TestContractViolations(t *testing.T) {
	t.Run("empty start", func(t *testing.T) {
		assertContractPanic(t, "start", func() { New().Start(nil) })
	})

	t.Run("start while running", func(t *testing.T) {
		c := New()
		c.Start(testExercises(1))
		assertContractPanic(t, "start", func() { c.Start(testExercises(1)) })
	})

	t.Run("double submit", func(t *testing.T) {
		c := New()
		c.Start(testExercises(2))
		c.SubmitAnswer(true)
		assertContractPanic(t, "submit", func() { c.SubmitAnswer(true) })
	})

	t.Run("advance before submit", func(t *testing.T) {
		c := New()
		c.Start(testExercises(2))
		assertContractPanic(t, "advance", func() { c.Advance() })
	})

	t.Run("finish before terminal", func(t *testing.T) {
		c := New()
		c.Start(testExercises(2))
		c.SubmitAnswer(true)
		assertContractPanic(t, "finish", func() { c.Finish() })
	})

	t.Run("finish twice", func(t *testing.T) {
		c := New()
		c.Start(testExercises(1))
		c.SubmitAnswer(true)
		c.Advance()
		c.Finish()
		assertContractPanic(t, "finish", func() { c.Finish() })
	})

	t.Run("submit after result", func(t *testing.T) {
		c := New()
		c.Start(testExercises(1))
		c.SubmitAnswer(true)
		c.Advance()
		assertContractPanic(t, "submit", func() { c.SubmitAnswer(true) })
	})

	t.Run("submit before start", func(t *testing.T) {
		assertContractPanic(t, "submit", func() { New().SubmitAnswer(true) })
	})
}

func TestStartAfterFinish(t *testing.T) {
	c := New()
	c.Start(testExercises(1))
	c.SubmitAnswer(false)
	c.Advance()
	c.Finish()

	s := c.Start(testExercises(2))
	assert.Equal(t, MaxHearts, s.Hearts)
	assert.Equal(t, 0, s.CorrectCount)
}

func TestAbandon(t *testing.T) {
	c := New()
	c.Start(testExercises(3))
	c.SubmitAnswer(true)

	r := c.Abandon()
	assert.Equal(t, Result{Completed: false, Stars: 0, CorrectCount: 1, Total: 3}, r)
	assert.Equal(t, PhaseIdle, c.State().Phase)

	c.Start(testExercises(1))
}

func TestStateIsACopy(t *testing.T) {
	c := New()
	c.Start(testExercises(2))
	c.SubmitAnswer(true)

	s := c.State()
	s.StepTimes[0] = time.Hour
	*s.LastCorrect = false

	fresh := c.State()
	assert.NotEqual(t, time.Hour, fresh.StepTimes[0])
	assert.True(t, *fresh.LastCorrect)
}

func TestProgress(t *testing.T) {
	c := New()
	c.Start(testExercises(4))
	assert.Equal(t, 0.0, c.Progress())

	c.SubmitAnswer(true)
	assert.Equal(t, 0.25, c.Progress())
	c.Advance()
	assert.Equal(t, 0.25, c.Progress())
	assert.Equal(t, exercise.KindTrace, c.Current().Kind())
}

func TestStarsForHearts(t *testing.T) {
	tests := []struct {
		hearts, want int
	}{
		{5, 3}, {4, 3}, {3, 2}, {2, 2}, {1, 1}, {0, 0},
	}
	for _, tt := range tests {
		if got := StarsForHearts(tt.hearts); got != tt.want {
			t.Errorf("StarsForHearts(%d) = %d, want %d", tt.hearts, got, tt.want)
		}
	}
}
