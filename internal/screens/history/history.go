package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/router"
	"github.com/rheo/rheo/internal/screen"
	"github.com/rheo/rheo/internal/store"
	"github.com/rheo/rheo/internal/ui/components"
	"github.com/rheo/rheo/internal/ui/layout"
	"github.com/rheo/rheo/internal/ui/theme"
)

// Limit is the number of attempts loaded.
const Limit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Totals   store.Totals
	Err      error
}

// HistoryScreen lists past lesson attempts, newest first.
type HistoryScreen struct {
	events   store.EventRepo
	path     journey.Path
	sessions []store.SessionRecord
	totals   store.Totals
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(events store.EventRepo, path journey.Path) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		path:     path,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := events.RecentSessions(ctx, Limit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		totals, err := events.Totals(ctx)
		if err != nil {
			return historyLoadedMsg{Sessions: sessions}
		}
		return historyLoadedMsg{Sessions: sessions, Totals: totals}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.totals = msg.Totals
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No lessons yet. Start your journey!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTotals()))
	b.WriteString("\n\n")

	for i, rec := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-24s  %s  %d/%d correct  %s",
			prefix,
			rec.Timestamp.Local().Format("Jan 02 15:04"),
			s.lessonTitle(rec.NodeID),
			resultMark(rec.SessionEventData),
			rec.Correct, rec.Total,
			formatDuration(rec.Duration))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(details(rec.SessionEventData))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderTotals() string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
		"%d attempts · %d completed · %.0f%% correct · %d points",
		s.totals.Sessions, s.totals.Completed, s.totals.Accuracy()*100, s.totals.Points))
}

func (s *HistoryScreen) lessonTitle(nodeID int) string {
	if n, ok := s.path.Node(nodeID); ok {
		return n.Title
	}
	return fmt.Sprintf("Node %d", nodeID)
}

// resultMark is the stars earned, or why there are none.
func resultMark(d store.SessionEventData) string {
	switch {
	case d.Action == store.ActionAbandon:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("quit ")
	case !d.Completed:
		return lipgloss.NewStyle().Foreground(theme.Error).Render("💔   ")
	}
	return components.Stars(d.Stars)
}

func details(d store.SessionEventData) string {
	return fmt.Sprintf("    ♥ %d hearts · 🔥 %d best streak · %d points · %s",
		d.Hearts, d.BestStreak, d.Points, d.Language)
}

func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
