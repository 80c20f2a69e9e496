package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestQueueDrain(t *testing.T) {
	q := NewQueue()
	q.XP(20)
	q.Milestone("🔥", "On Fire!")
	q.Achievement("📚", "Lesson Complete", "5 exercises finished!")
	require.Equal(t, 3, q.Len())

	events := q.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, EventXP, events[0].Kind)
	assert.Equal(t, 20, events[0].Points)
	assert.Equal(t, "On Fire!", events[1].Title)
	assert.Equal(t, "5 exercises finished!", events[2].Desc)

	assert.Empty(t, q.Drain())
	assert.Zero(t, q.Len())
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewQueue(), NewQueue()
	n := Multi(a, b, Discard)
	n.XP(15)
	n.Achievement("📚", "Lesson Complete", "")

	assert.Len(t, a.Drain(), 2)
	assert.Len(t, b.Drain(), 2)
}

func TestLogSink(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := Log(zap.New(core))

	n.XP(20)
	n.Milestone("⚡", "Unstoppable!")
	n.Achievement("📚", "Lesson Complete", "3 exercises finished!")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "xp awarded", entries[0].Message)
	assert.Equal(t, int64(20), entries[0].ContextMap()["points"])
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
}
