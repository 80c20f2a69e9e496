package exercise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckChoice(t *testing.T) {
	tr := Trace{Options: []string{"2", "3", "5"}, Correct: 1}
	assert.True(t, CheckChoice(tr, 1))
	assert.False(t, CheckChoice(tr, 0))

	bug := BugHunt{Code: []CodeLine{{Text: "a"}, {Text: "b"}}, CorrectLine: 0}
	assert.True(t, CheckChoice(bug, 0))
}

func TestCheckOrder(t *testing.T) {
	s := Scramble{
		Pieces:       []Piece{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Distractors:  []Piece{{ID: "e"}},
		CorrectOrder: []string{"a", "b", "c"},
	}
	assert.True(t, CheckOrder(s, []string{"a", "b", "c"}))
	assert.False(t, CheckOrder(s, []string{"b", "a", "c"}))
	assert.False(t, CheckOrder(s, []string{"a", "b", "e"}))
	assert.False(t, CheckOrder(s, []string{"a", "b"}))
	assert.Len(t, s.Pool(), 4)
}

func TestCheckFills(t *testing.T) {
	f := FillGap{
		CodeParts: []CodePart{
			{Type: PartFixed, Text: "a = "},
			{Type: PartGap, ID: "g1"},
			{Type: PartFixed, Text: "\nprint("},
			{Type: PartGap, ID: "g2"},
		},
		CorrectFill: map[string]string{"g1": "5", "g2": "a"},
	}
	assert.True(t, CheckFills(f, map[string]string{"g1": "5", "g2": "a"}))
	assert.False(t, CheckFills(f, map[string]string{"g1": "a", "g2": "5"}))
	assert.False(t, CheckFills(f, map[string]string{"g1": "5"}))
}

func TestPairTracker_AllMatched(t *testing.T) {
	tr := NewPairTracker(PairMatch{Pairs: []Pair{{ID: 1}, {ID: 2}}})

	assert.True(t, tr.Match(1, 1))
	done, _ := tr.Done()
	assert.False(t, done)

	assert.False(t, tr.Match(2, 1), "already matched right side is ignored")
	assert.Equal(t, 0, tr.Wrong())

	assert.True(t, tr.Match(2, 2))
	done, correct := tr.Done()
	assert.True(t, done)
	assert.True(t, correct)
}

func TestPairTracker_ThreeWrongFails(t *testing.T) {
	tr := NewPairTracker(PairMatch{Pairs: []Pair{{ID: 1}, {ID: 2}, {ID: 3}}})

	tr.Match(1, 2)
	tr.Match(1, 3)
	done, _ := tr.Done()
	assert.False(t, done)

	tr.Match(2, 3)
	done, correct := tr.Done()
	assert.True(t, done)
	assert.False(t, correct)

	assert.False(t, tr.Match(1, 1), "no matches after the attempt is over")
}

func TestTerminalTracker(t *testing.T) {
	sim := TerminalSim{ExpectedCommands: []string{`name = "Otter"`, "print(name)"}}

	tr := NewTerminalTracker(sim)
	assert.False(t, tr.Enter("   "))
	assert.Equal(t, 0, tr.Wrong())

	assert.True(t, tr.Enter(`  name = "Otter" `))
	assert.False(t, tr.Enter("print(nam)"))
	assert.True(t, tr.Enter("print(name)"))

	done, correct := tr.Done()
	assert.True(t, done)
	assert.True(t, correct)
	assert.Equal(t, 2, tr.Completed())
	assert.Equal(t, 1, tr.Wrong())
}

func TestTerminalTracker_Fails(t *testing.T) {
	tr := NewTerminalTracker(TerminalSim{ExpectedCommands: []string{"ls"}})
	for i := 0; i < MaxWrongAttempts; i++ {
		tr.Enter("pwd")
	}
	done, correct := tr.Done()
	assert.True(t, done)
	assert.False(t, correct)
	assert.False(t, tr.Enter("ls"))
}
