package session

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/rheo/rheo/internal/exercise"
	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/notify"
	"github.com/rheo/rheo/internal/router"
	"github.com/rheo/rheo/internal/screen"
	"github.com/rheo/rheo/internal/screens/summary"
	sess "github.com/rheo/rheo/internal/session"
	"github.com/rheo/rheo/internal/store"
	"github.com/rheo/rheo/internal/ui/layout"

	"github.com/google/uuid"
)

// SessionScreen plays one lesson attempt.
type SessionScreen struct {
	node      journey.Node
	exercises []exercise.Descriptor
	deps      Deps

	ctrl      *sess.Controller
	toasts    *notify.Queue
	sessionID string

	widget      widget
	outcome     *sess.StepOutcome
	notices     []notify.Event
	confirmQuit bool
	// done is set once the attempt has been finished or abandoned and
	// the screen is waiting to be swapped out.
	done bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New starts an attempt at node. exercises must not be empty.
func New(node journey.Node, exercises []exercise.Descriptor, deps Deps) *SessionScreen {
	deps = deps.withDefaults()
	toasts := notify.NewQueue()
	ctrl := sess.New(
		sess.WithClock(deps.Clock),
		sess.WithNotifier(notify.Multi(toasts, notify.Log(deps.Logger))),
	)
	ctrl.Start(exercises)

	return &SessionScreen{
		node:      node,
		exercises: exercises,
		deps:      deps,
		ctrl:      ctrl,
		toasts:    toasts,
		sessionID: uuid.New().String(),
		widget:    newWidget(ctrl.Current(), deps.Shuffle),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	s.deps.Logger.Info("lesson started",
		zap.String("session", s.sessionID),
		zap.Int("node", s.node.ID),
		zap.Int("exercises", len(s.exercises)),
	)
	start := store.SessionEventData{
		SessionID: s.sessionID,
		NodeID:    s.node.ID,
		Language:  s.deps.Language,
		Action:    store.ActionStart,
		Total:     len(s.exercises),
		Hearts:    sess.MaxHearts,
	}
	return tea.Batch(
		s.widget.Init(),
		s.deps.persist("session start", func(ctx context.Context, r store.EventRepo) error {
			return r.AppendSessionEvent(ctx, start)
		}),
	)
}

func (s *SessionScreen) Title() string {
	return s.node.Title
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.done {
		return nil
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit lesson"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.outcome != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: s.actionLabel()},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return append(s.widget.Hints(), layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.done {
		return s, nil
	}
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		return s.handleKey(kmsg)
	}

	// Cursor blink and other widget traffic.
	if s.outcome == nil && !s.confirmQuit {
		cmd, _ := s.widget.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, s.abandon()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	// Feedback bar is showing; Enter moves on.
	if s.outcome != nil {
		if key == "enter" {
			return s.advance()
		}
		return s, nil
	}

	cmd, v := s.widget.Update(msg)
	if v == undecided {
		return s, cmd
	}
	return s, tea.Batch(cmd, s.submit(v == answeredRight))
}

// submit hands the widget's verdict to the controller.
func (s *SessionScreen) submit(correct bool) tea.Cmd {
	kind := s.ctrl.Current().Kind()
	step := s.ctrl.State().StepIndex

	out := s.ctrl.SubmitAnswer(correct)
	s.outcome = &out
	s.notices = append(s.notices, s.toasts.Drain()...)

	answer := store.AnswerEventData{
		SessionID: s.sessionID,
		NodeID:    s.node.ID,
		Step:      step,
		Kind:      string(kind),
		Correct:   out.Correct,
		Elapsed:   out.Elapsed,
		Points:    out.Points,
	}
	return s.deps.persist("answer", func(ctx context.Context, r store.EventRepo) error {
		return r.AppendAnswerEvent(ctx, answer)
	})
}

// advance moves to the next exercise or, at the end, to the result screen.
func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	res := s.ctrl.Advance()
	s.outcome = nil
	s.notices = nil

	if !res.Finished {
		s.widget = newWidget(s.ctrl.Current(), s.deps.Shuffle)
		return s, s.widget.Init()
	}

	s.ctrl.Finish()
	s.done = true
	sum := s.ctrl.Summary()
	notices := s.toasts.Drain()

	s.deps.Logger.Info("lesson finished",
		zap.String("session", s.sessionID),
		zap.Int("node", s.node.ID),
		zap.Bool("completed", sum.Completed),
		zap.Int("stars", sum.Stars),
		zap.Int("correct", sum.CorrectCount),
		zap.Int("total", sum.Total),
	)

	end := store.SessionEventData{
		SessionID:  s.sessionID,
		NodeID:     s.node.ID,
		Language:   s.deps.Language,
		Action:     store.ActionEnd,
		Completed:  sum.Completed,
		Stars:      sum.Stars,
		Correct:    sum.CorrectCount,
		Total:      sum.Total,
		Hearts:     sum.Hearts,
		BestStreak: sum.BestStreak,
		Points:     sum.TotalXP(),
		Duration:   sum.Duration,
	}

	node, exercises, deps := s.node, s.exercises, s.deps
	next := summary.New(node, sum, notices, summary.Options{
		Service: deps.Service,
		Logger:  deps.Logger,
		Retry:   func() screen.Screen { return New(node, exercises, deps) },
	})

	return s, tea.Batch(
		s.deps.persist("session end", func(ctx context.Context, r store.EventRepo) error {
			return r.AppendSessionEvent(ctx, end)
		}),
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
	)
}

// abandon drops the attempt and returns to the journey. Nothing is
// recorded against the node.
func (s *SessionScreen) abandon() tea.Cmd {
	st := s.ctrl.State()
	elapsed := s.ctrl.Elapsed()
	r := s.ctrl.Abandon()
	s.done = true

	s.deps.Logger.Info("lesson abandoned",
		zap.String("session", s.sessionID),
		zap.Int("node", s.node.ID),
		zap.Int("step", st.StepIndex),
	)

	event := store.SessionEventData{
		SessionID:  s.sessionID,
		NodeID:     s.node.ID,
		Language:   s.deps.Language,
		Action:     store.ActionAbandon,
		Correct:    r.CorrectCount,
		Total:      r.Total,
		Hearts:     st.Hearts,
		BestStreak: st.BestStreak,
		Points:     st.Points,
		Duration:   elapsed,
	}
	// The write finishes before the pop so it is not lost when the
	// lesson is the root screen and popping it exits.
	write := s.deps.persist("session abandon", func(ctx context.Context, r store.EventRepo) error {
		return r.AppendSessionEvent(ctx, event)
	})
	return func() tea.Msg {
		if write != nil {
			write()
		}
		return router.PopScreenMsg{}
	}
}

// actionLabel is the text of the bottom action button.
func (s *SessionScreen) actionLabel() string {
	if s.outcome == nil {
		if s.ctrl.Current().Kind() == exercise.KindVideo {
			return "CONTINUE"
		}
		return "CHECK"
	}
	st := s.ctrl.State()
	if st.Hearts == 0 || st.StepIndex == st.Total-1 {
		return "FINISH"
	}
	return "CONTINUE"
}
