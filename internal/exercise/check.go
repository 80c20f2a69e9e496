package exercise

import (
	"slices"
	"strings"
)

// MaxWrongAttempts is how many wrong tries pair-match and terminal
// exercises allow before the exercise is failed.
const MaxWrongAttempts = 3

// CheckChoice reports whether picking index chosen answers c correctly.
func CheckChoice(c Choice, chosen int) bool {
	return chosen == c.CorrectIndex()
}

// CheckOrder reports whether the placed piece ids match the exact
// correct sequence.
func CheckOrder(s Scramble, placed []string) bool {
	return slices.Equal(placed, s.CorrectOrder)
}

// CheckFills reports whether every gap holds its correct fill.
// A missing gap counts as wrong.
func CheckFills(f FillGap, fills map[string]string) bool {
	for _, g := range f.Gaps() {
		got, ok := fills[g.ID]
		if !ok || got != f.CorrectFill[g.ID] {
			return false
		}
	}
	return true
}

// PairTracker follows a pair-match attempt. Matching every pair finishes
// it correctly; MaxWrongAttempts mismatches finish it as wrong.
type PairTracker struct {
	pairs   PairMatch
	matched map[int]bool
	wrong   int
}

// NewPairTracker starts tracking an attempt at p.
func NewPairTracker(p PairMatch) *PairTracker {
	return &PairTracker{pairs: p, matched: make(map[int]bool, len(p.Pairs))}
}

// Match records an attempt to pair left id with right id and reports
// whether it was a match. Attempts after the tracker is done, or on an
// already matched pair, are ignored.
func (t *PairTracker) Match(leftID, rightID int) bool {
	if t.finished() || t.matched[leftID] || t.matched[rightID] {
		return false
	}
	if leftID == rightID {
		t.matched[leftID] = true
		return true
	}
	t.wrong++
	return false
}

// IsMatched reports whether the pair with id has been matched.
func (t *PairTracker) IsMatched(id int) bool { return t.matched[id] }

// Wrong returns the number of mismatches so far.
func (t *PairTracker) Wrong() int { return t.wrong }

// Done returns whether the attempt is over and, if so, whether it succeeded.
func (t *PairTracker) Done() (done, correct bool) {
	if len(t.matched) == len(t.pairs.Pairs) {
		return true, true
	}
	if t.wrong >= MaxWrongAttempts {
		return true, false
	}
	return false, false
}

func (t *PairTracker) finished() bool {
	done, _ := t.Done()
	return done
}

// TerminalTracker follows a terminal-simulation attempt: each expected
// command must be entered in order.
type TerminalTracker struct {
	sim   TerminalSim
	next  int
	wrong int
}

// NewTerminalTracker starts tracking an attempt at sim.
func NewTerminalTracker(sim TerminalSim) *TerminalTracker {
	return &TerminalTracker{sim: sim}
}

// Enter submits one command line. Blank input is ignored and returns false.
func (t *TerminalTracker) Enter(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" || t.finished() {
		return false
	}
	if cmd == t.sim.ExpectedCommands[t.next] {
		t.next++
		return true
	}
	t.wrong++
	return false
}

// Completed returns how many expected commands have been entered.
func (t *TerminalTracker) Completed() int { return t.next }

// Wrong returns the number of wrong commands so far.
func (t *TerminalTracker) Wrong() int { return t.wrong }

// Done returns whether the attempt is over and, if so, whether it succeeded.
func (t *TerminalTracker) Done() (done, correct bool) {
	if t.next >= len(t.sim.ExpectedCommands) {
		return true, true
	}
	if t.wrong >= MaxWrongAttempts {
		return true, false
	}
	return false, false
}

func (t *TerminalTracker) finished() bool {
	done, _ := t.Done()
	return done
}
