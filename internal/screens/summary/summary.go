package summary

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/notify"
	"github.com/rheo/rheo/internal/router"
	"github.com/rheo/rheo/internal/screen"
	"github.com/rheo/rheo/internal/session"
	"github.com/rheo/rheo/internal/ui/components"
	"github.com/rheo/rheo/internal/ui/layout"
	"github.com/rheo/rheo/internal/ui/theme"
)

// DoneMsg is sent after the result screen closes, once the attempt has
// been applied to the journey.
type DoneMsg struct {
	NodeID    int
	Completed bool
	Record    journey.Record
	Err       error
}

// Options configure a SummaryScreen.
type Options struct {
	// Service records completed attempts. May be nil.
	Service *journey.Service
	Logger  *zap.Logger
	// Retry builds a fresh lesson screen for a failed attempt.
	Retry func() screen.Screen
}

type recordedMsg struct {
	record journey.Record
	err    error
}

// SummaryScreen displays the result of one lesson attempt.
type SummaryScreen struct {
	node    journey.Node
	summary session.Summary
	notices []notify.Event
	opts    Options

	recording bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(node journey.Node, sum session.Summary, notices []notify.Event, opts Options) *SummaryScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &SummaryScreen{node: node, summary: sum, notices: notices, opts: opts}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	if s.summary.Completed {
		return "Lesson Complete"
	}
	return "Try Again"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	if s.canRetry() {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Retry"})
	}
	return hints
}

func (s *SummaryScreen) canRetry() bool {
	return !s.summary.Completed && s.opts.Retry != nil
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordedMsg:
		done := DoneMsg{
			NodeID:    s.node.ID,
			Completed: s.summary.Completed,
			Record:    msg.record,
			Err:       msg.err,
		}
		// Pop first so the journey screen is active when DoneMsg lands.
		return s, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return done },
		)

	case tea.KeyPressMsg:
		if s.recording {
			return s, nil
		}
		switch msg.String() {
		case "enter", "esc":
			s.recording = true
			return s, s.record()
		case "r":
			if s.canRetry() {
				next := s.opts.Retry()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

// record applies the attempt to the journey off the update loop.
func (s *SummaryScreen) record() tea.Cmd {
	svc, logger := s.opts.Service, s.opts.Logger
	nodeID, sum := s.node.ID, s.summary
	return func() tea.Msg {
		if svc == nil {
			return recordedMsg{}
		}
		rec, err := svc.RecordLesson(context.Background(), nodeID, sum)
		if err != nil {
			logger.Error("lesson not recorded", zap.Int("node", nodeID), zap.Error(err))
		}
		return recordedMsg{record: rec, err: err}
	}
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString("\n")

	mascot, title := "🦦", "Lesson Complete!"
	if !sum.Completed {
		mascot, title = "😢", "Try Again!"
	}
	b.WriteString(center(mascot))
	b.WriteString("\n")
	b.WriteString(center(theme.Title.Render(title)))
	b.WriteString("\n")
	b.WriteString(center(theme.Subtitle.Render(s.node.Title)))
	b.WriteString("\n\n")

	if sum.Completed {
		b.WriteString(center(components.Stars(sum.Stars)))
		b.WriteString("\n\n")
	}

	b.WriteString(center(lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("XP", fmt.Sprintf("+%d", sum.TotalXP()), theme.Primary),
		statCard("Accuracy", fmt.Sprintf("%d%%", sum.Accuracy), theme.Accent),
		statCard("Hearts", fmt.Sprintf("%d/%d", sum.Hearts, session.MaxHearts), theme.Heart),
	)))
	b.WriteString("\n")

	var extra []string
	if sum.BestStreak >= 3 {
		extra = append(extra, statCard("Best Streak", fmt.Sprintf("🔥 %d", sum.BestStreak), theme.Streak))
	}
	if sum.HasFastest() {
		extra = append(extra, statCard("Fastest", fmt.Sprintf("⚡ %.1fs", sum.Fastest.Seconds()), theme.Accent))
	}
	if len(extra) > 0 {
		b.WriteString(center(lipgloss.JoinHorizontal(lipgloss.Top, extra...)))
		b.WriteString("\n")
	}

	if len(sum.StepTimes) > 1 {
		b.WriteString("\n")
		b.WriteString(center(theme.Label.Render("TIME PER QUESTION")))
		b.WriteString("\n")
		b.WriteString(center(timeChart(sum.StepTimes)))
		b.WriteString("\n")
	}

	for _, n := range s.notices {
		if n.Kind != notify.EventAchievement {
			continue
		}
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
			Render(fmt.Sprintf("%s %s", n.Icon, n.Title))))
		if n.Desc != "" {
			b.WriteString("\n")
			b.WriteString(center(theme.Hint.Render(n.Desc)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(center(components.NewButton("CONTINUE", !s.recording).View()))

	return b.String()
}

func statCard(label, value string, c color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Margin(0, 1).
		Align(lipgloss.Center).
		Render(theme.Hint.Render(label) + "\n" +
			lipgloss.NewStyle().Foreground(c).Bold(true).Render(value))
}

var bars = []rune("▁▂▃▄▅▆▇█")

// timeChart renders one bar per answered step, scaled against the
// slowest answer or fifteen seconds, whichever is longer.
func timeChart(times []time.Duration) string {
	ceiling := 15 * time.Second
	for _, t := range times {
		ceiling = max(ceiling, t)
	}

	var b strings.Builder
	for _, t := range times {
		i := int(float64(t) / float64(ceiling) * float64(len(bars)-1))
		i = max(0, min(i, len(bars)-1))

		c := theme.Primary
		switch session.SpeedOf(t) {
		case session.SpeedMedium:
			c = theme.Accent
		case session.SpeedSlow:
			c = theme.Error
		}
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(bars[i])))
		b.WriteString(" ")
	}
	return strings.TrimSuffix(b.String(), " ")
}
