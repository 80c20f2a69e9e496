package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	c.Start(testExercises(3))

	clock.Advance(4 * time.Second)
	c.SubmitAnswer(true)
	c.Advance()
	clock.Advance(15 * time.Second)
	c.SubmitAnswer(false)
	c.Advance()
	clock.Advance(25 * time.Second)
	c.SubmitAnswer(true)
	c.Advance()

	s := c.Summary()
	assert.True(t, s.Completed)
	assert.Equal(t, 67, s.Accuracy)
	assert.Equal(t, 4, s.Hearts)
	assert.Equal(t, 1, s.BestStreak)
	assert.Equal(t, 4*time.Second, s.Fastest)
	assert.True(t, s.HasFastest())
	assert.Equal(t, CompletionXP, s.CompletionXP)
	assert.Equal(t, BasePoints+SpeedBonusPoints+BasePoints, s.Points)
	assert.Equal(t, s.Points+CompletionXP, s.TotalXP())
	assert.Equal(t, 44*time.Second, s.Duration)

	var speeds []Speed
	for _, d := range s.StepTimes {
		speeds = append(speeds, SpeedOf(d))
	}
	assert.Equal(t, []Speed{SpeedFast, SpeedMedium, SpeedSlow}, speeds)

	// Still readable after Finish.
	c.Finish()
	assert.Equal(t, s.Accuracy, c.Summary().Accuracy)
}

func TestSummary_FailedAttempt(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	c.Start(testExercises(5))
	for i := 0; i < 5; i++ {
		clock.Advance(12 * time.Second)
		c.SubmitAnswer(false)
		c.Advance()
	}

	s := c.Summary()
	assert.False(t, s.Completed)
	assert.Zero(t, s.CompletionXP)
	assert.Zero(t, s.Accuracy)
	assert.Equal(t, 12*time.Second, s.Fastest)
	assert.False(t, s.HasFastest())
}

func TestSummary_BeforeEnd(t *testing.T) {
	c := New()
	c.Start(testExercises(2))
	assertContractPanic(t, "summary", func() { c.Summary() })
}
