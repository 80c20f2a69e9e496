package journey

import (
	"errors"
	"fmt"
	"maps"

	"github.com/rheo/rheo/internal/session"
)

// ErrUnknownNode is returned when a node id is not on the path.
var ErrUnknownNode = errors.New("unknown journey node")

// Status is a node's unlock state.
type Status string

const (
	StatusLocked    Status = "locked"
	StatusActive    Status = "active"
	StatusAvailable Status = "available"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusLocked, StatusActive, StatusAvailable, StatusCompleted:
		return true
	}
	return false
}

// Playable reports whether a node in this status can be opened.
func (s Status) Playable() bool {
	return s.Valid() && s != StatusLocked
}

// NodeState is the persisted state of one node.
type NodeState struct {
	Status Status `json:"status"`
	Stars  int    `json:"stars"`
}

// Progress maps node id to its state. Functions in this package never
// mutate a Progress they are given.
type Progress map[int]NodeState

// Clone returns an independent copy of p.
func (p Progress) Clone() Progress {
	return maps.Clone(p)
}

// Seed returns the starting progress for a new learner: the first node
// is active and every other node is locked.
func Seed(path Path) Progress {
	p := make(Progress, len(path.Nodes))
	for i, n := range path.Nodes {
		st := StatusLocked
		if i == 0 {
			st = StatusActive
		}
		p[n.ID] = NodeState{Status: st}
	}
	return p
}

// Restore overlays saved onto the seed for path. Entries for nodes not on
// the path or with an unknown status are dropped; stars are clamped to 0..3.
func Restore(path Path, saved Progress) Progress {
	p := Seed(path)
	for id, st := range saved {
		if _, ok := p[id]; !ok || !st.Status.Valid() {
			continue
		}
		st.Stars = min(max(st.Stars, 0), 3)
		p[id] = st
	}
	return p
}

// Outcome reports the side effects of completing a node.
type Outcome struct {
	NodeID int
	Stars  int
	// Unlocked is the id of the node that became active, or 0.
	Unlocked int
	// ChapterComplete is set when every node in the node's chapter is
	// now completed.
	ChapterComplete bool
	Chapter         int
}

// Complete marks nodeID completed with the result's stars (at least one),
// activates the first locked node in path order, and reports whether the
// node's chapter is now finished. It returns a new Progress.
func Complete(progress Progress, path Path, nodeID int, result session.Result) (Progress, Outcome, error) {
	node, ok := path.Node(nodeID)
	if !ok {
		return progress, Outcome{}, fmt.Errorf("%w: %d", ErrUnknownNode, nodeID)
	}

	next := progress.Clone()
	if next == nil {
		next = Seed(path)
	}
	stars := max(result.Stars, 1)
	next[nodeID] = NodeState{Status: StatusCompleted, Stars: stars}

	out := Outcome{NodeID: nodeID, Stars: stars, Chapter: node.Chapter}

	out.ChapterComplete = true
	for _, n := range path.ChapterNodes(node.Chapter) {
		if next[n.ID].Status != StatusCompleted {
			out.ChapterComplete = false
			break
		}
	}

	for _, n := range path.Nodes {
		if st := next[n.ID]; st.Status == StatusLocked || !st.Status.Valid() {
			next[n.ID] = NodeState{Status: StatusActive, Stars: st.Stars}
			out.Unlocked = n.ID
			break
		}
	}

	return next, out, nil
}

// Counts tallies completed nodes and earned stars.
func (p Progress) Counts() (completed, stars int) {
	for _, st := range p {
		if st.Status == StatusCompleted {
			completed++
			stars += st.Stars
		}
	}
	return completed, stars
}

// Current returns the first active node in path order, falling back to
// the first available one.
func Current(progress Progress, path Path) (Node, bool) {
	for _, want := range []Status{StatusActive, StatusAvailable} {
		for _, n := range path.Nodes {
			if progress[n.ID].Status == want {
				return n, true
			}
		}
	}
	return Node{}, false
}
