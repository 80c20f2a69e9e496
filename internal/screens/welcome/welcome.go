package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/router"
	"github.com/rheo/rheo/internal/screen"
	"github.com/rheo/rheo/internal/ui/components"
	"github.com/rheo/rheo/internal/ui/layout"
	"github.com/rheo/rheo/internal/ui/theme"
)

const tickInterval = 400 * time.Millisecond

// sparkle frames cycle around the slide emoji
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

type slide struct {
	emoji    string
	title    string
	subtitle string
	desc     string
	color    string
}

var slides = []slide{
	{
		emoji:    "🦦",
		title:    "Welcome to Rheo!",
		subtitle: "Your coding journey starts here",
		desc:     "Learn to code through interactive lessons, trace code like a pro, and level up your skills.",
		color:    "#14B8A6",
	},
	{
		emoji:    "⚔️",
		title:    "Challenge Yourself",
		subtitle: "Streaks, Stars & Bosses",
		desc:     "Answer fast for bonus XP, keep your streak alive and beat the boss at the end of each chapter.",
		color:    "#EF4444",
	},
	{
		emoji:    "🚀",
		title:    "Ready to Code?",
		subtitle: "Let's build something amazing",
		desc:     "Five hearts per lesson, three stars to earn. Your adventure begins now!",
		color:    "#F59E0B",
	},
}

// WelcomeScreen walks a first-time learner through the onboarding
// slides, then replaces itself with the journey.
type WelcomeScreen struct {
	service      *journey.Service
	homeFactory  func() screen.Screen
	page         int
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that marks onboarding done on service
// (which may be nil) and transitions to the screen produced by homeFactory.
func New(service *journey.Service, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		service:     service,
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	if w.page > 0 {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Back"})
	}
	if !w.isLast() {
		hints = append(hints, layout.KeyHint{Key: "s", Description: "Skip"})
	}
	return hints
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) isLast() bool {
	return w.page == len(slides)-1
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", "space", "right", "l":
			if w.isLast() {
				return w, w.transition()
			}
			w.page++
		case "left", "h":
			w.page = max(0, w.page-1)
		case "s":
			return w, w.transition()
		}
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	if w.service != nil {
		w.service.MarkOnboardingDone(context.Background())
	}
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	s := slides[w.page]
	accent := lipgloss.Color(s.color)

	var sections []string
	if w.page == 0 {
		sections = append(sections, RenderBanner(width), "")
	}

	sparkle := lipgloss.NewStyle().Foreground(theme.Accent).
		Render(sparkleFrames[w.tickCount%len(sparkleFrames)])
	emoji := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 3).
		Render(s.emoji)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Center, sparkle, "  ", emoji, "  ", sparkle))

	sections = append(sections,
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.title),
		lipgloss.NewStyle().Foreground(accent).Bold(true).Render(s.subtitle),
		"",
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(min(width-8, 50)).Align(lipgloss.Center).Render(s.desc),
		"",
		w.renderDots(),
		"",
	)

	label := "CONTINUE"
	if w.isLast() {
		label = "🚀 LET'S GO!"
	}
	sections = append(sections, components.NewButton(label, true).View())

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderDots shows which slide is active.
func (w *WelcomeScreen) renderDots() string {
	dots := make([]string, len(slides))
	for i := range slides {
		if i == w.page {
			dots[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(slides[i].color)).Render("━━")
		} else {
			dots[i] = lipgloss.NewStyle().Foreground(theme.Border).Render("•")
		}
	}
	return strings.Join(dots, " ")
}
