package journey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rheo/rheo/internal/session"
)

func TestDefaultPath(t *testing.T) {
	p := DefaultPath()
	require.Len(t, p.Nodes, 42)
	require.Len(t, p.Chapters, 10)

	seen := map[int]bool{}
	for _, n := range p.Nodes {
		assert.False(t, seen[n.ID], "duplicate node %d", n.ID)
		seen[n.ID] = true
		_, ok := p.Chapter(n.Chapter)
		assert.True(t, ok, "node %d has unknown chapter %d", n.ID, n.Chapter)
	}
	assert.Len(t, p.ChapterNodes(10), 6)
}

func TestSeed(t *testing.T) {
	p := Seed(DefaultPath())
	assert.Equal(t, StatusActive, p[1].Status)
	assert.Equal(t, StatusLocked, p[2].Status)
	assert.Equal(t, StatusLocked, p[42].Status)

	cur, ok := Current(p, DefaultPath())
	require.True(t, ok)
	assert.Equal(t, 1, cur.ID)
}

func TestComplete_UnlocksNextLocked(t *testing.T) {
	path := DefaultPath()
	p := Seed(path)

	next, out, err := Complete(p, path, 1, session.Result{Completed: true, Stars: 2})
	require.NoError(t, err)

	assert.Equal(t, NodeState{Status: StatusCompleted, Stars: 2}, next[1])
	assert.Equal(t, StatusActive, next[2].Status)
	assert.Equal(t, 2, out.Unlocked)
	assert.False(t, out.ChapterComplete)

	// Input is left untouched.
	assert.Equal(t, StatusActive, p[1].Status)
	assert.Equal(t, StatusLocked, p[2].Status)
}

func TestComplete_MinimumOneStar(t *testing.T) {
	path := DefaultPath()
	next, out, err := Complete(Seed(path), path, 1, session.Result{Completed: true, Stars: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, next[1].Stars)
	assert.Equal(t, 1, out.Stars)
}

func TestComplete_ChapterComplete(t *testing.T) {
	path := DefaultPath()
	p := Seed(path)
	var out Outcome
	var err error
	for _, id := range []int{1, 2, 3, 4} {
		p, out, err = Complete(p, path, id, session.Result{Completed: true, Stars: 3})
		require.NoError(t, err)
	}
	assert.True(t, out.ChapterComplete)
	assert.Equal(t, 1, out.Chapter)
	assert.Equal(t, 5, out.Unlocked)

	completed, stars := p.Counts()
	assert.Equal(t, 4, completed)
	assert.Equal(t, 12, stars)
}

func TestComplete_ReplayOverwritesStars(t *testing.T) {
	path := DefaultPath()
	p, _, _ := Complete(Seed(path), path, 1, session.Result{Completed: true, Stars: 3})
	p, out, err := Complete(p, path, 1, session.Result{Completed: true, Stars: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, p[1].Stars)
	assert.Equal(t, 3, out.Unlocked, "replay still unlocks the next locked node")
}

func TestComplete_UnknownNode(t *testing.T) {
	path := DefaultPath()
	_, _, err := Complete(Seed(path), path, 99, session.Result{Completed: true})
	assert.True(t, errors.Is(err, ErrUnknownNode))
}

func TestRestore(t *testing.T) {
	path := DefaultPath()
	saved := Progress{
		1:  {Status: StatusCompleted, Stars: 9},
		2:  {Status: StatusActive},
		77: {Status: StatusCompleted, Stars: 3},
		3:  {Status: "mystery"},
	}
	p := Restore(path, saved)

	assert.Equal(t, NodeState{Status: StatusCompleted, Stars: 3}, p[1])
	assert.Equal(t, StatusActive, p[2].Status)
	assert.Equal(t, StatusLocked, p[3].Status)
	assert.NotContains(t, p, 77)
	assert.Len(t, p, 42)
}

func TestStreakMultiplier(t *testing.T) {
	assert.Equal(t, 1, StreakMultiplier(0).Factor)
	assert.Empty(t, StreakMultiplier(2).Label)
	assert.Equal(t, 2, StreakMultiplier(3).Factor)
	assert.Equal(t, "2x XP", StreakMultiplier(6).Label)
	assert.Equal(t, 3, StreakMultiplier(7).Factor)
}

func TestNodeDifficulty(t *testing.T) {
	assert.Equal(t, 3, Node{Type: NodeBoss}.Difficulty())
	assert.Equal(t, 2, Node{Type: NodeDaily}.Difficulty())
	assert.Equal(t, 1, Node{Type: NodeLesson}.Difficulty())
	assert.Equal(t, 1, Node{Type: NodeChest}.Difficulty())
}
