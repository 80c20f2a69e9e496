// Package notify delivers XP, streak milestone and achievement notices
// from the lesson controller to whatever is listening.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Notifier is implemented by every sink in this package.
type Notifier interface {
	XP(points int)
	Milestone(icon, name string)
	Achievement(icon, title, desc string)
}

// EventKind identifies the type of notice.
type EventKind int

const (
	EventXP EventKind = iota
	EventMilestone
	EventAchievement
)

// Event is one queued notice.
type Event struct {
	Kind   EventKind
	Points int
	Icon   string
	Title  string
	Desc   string
}

// Queue buffers notices until the UI drains them.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

func (q *Queue) XP(points int) {
	q.push(Event{Kind: EventXP, Points: points, Icon: "⚡", Title: "XP"})
}

func (q *Queue) Milestone(icon, name string) {
	q.push(Event{Kind: EventMilestone, Icon: icon, Title: name})
}

func (q *Queue) Achievement(icon, title, desc string) {
	q.push(Event{Kind: EventAchievement, Icon: icon, Title: title, Desc: desc})
}

// Drain returns and clears the queued notices, oldest first.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued notices.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

type discard struct{}

func (discard) XP(int)                             {}
func (discard) Milestone(string, string)           {}
func (discard) Achievement(string, string, string) {}

// Discard drops every notice.
var Discard Notifier = discard{}

// Log writes every notice to logger at debug level.
func Log(logger *zap.Logger) Notifier {
	return logSink{logger: logger}
}

type logSink struct {
	logger *zap.Logger
}

func (l logSink) XP(points int) {
	l.logger.Debug("xp awarded", zap.Int("points", points))
}

func (l logSink) Milestone(icon, name string) {
	l.logger.Debug("streak milestone", zap.String("name", name))
}

func (l logSink) Achievement(icon, title, desc string) {
	l.logger.Info("achievement", zap.String("title", title), zap.String("desc", desc))
}

// Multi fans every notice out to all of ns.
func Multi(ns ...Notifier) Notifier {
	return multi(ns)
}

type multi []Notifier

func (m multi) XP(points int) {
	for _, n := range m {
		n.XP(points)
	}
}

func (m multi) Milestone(icon, name string) {
	for _, n := range m {
		n.Milestone(icon, name)
	}
}

func (m multi) Achievement(icon, title, desc string) {
	for _, n := range m {
		n.Achievement(icon, title, desc)
	}
}
