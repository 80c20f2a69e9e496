package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rheo/rheo/internal/exercise"
	"github.com/rheo/rheo/internal/notify"
	sess "github.com/rheo/rheo/internal/session"
	"github.com/rheo/rheo/internal/ui/components"
	"github.com/rheo/rheo/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.done {
		return renderLoading(width)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}

	st := s.ctrl.State()
	inner := max(20, width-4)

	var b strings.Builder
	b.WriteString(s.renderStatusLine(st, inner))
	b.WriteString("\n\n")

	ex := s.ctrl.Current()
	b.WriteString(theme.Label.Render(fmt.Sprintf("%s %s", ex.Kind().Icon(), strings.ToUpper(ex.Kind().DisplayName()))))
	b.WriteString("\n")
	if prompt := ex.Prompt(); prompt != "" && ex.Kind() != exercise.KindVideo {
		b.WriteString(theme.Body.Bold(true).Width(inner).Render(prompt))
		b.WriteString("\n\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString(s.widget.View(inner))
	b.WriteString("\n\n")

	if s.outcome != nil {
		b.WriteString(renderFeedback(*s.outcome, s.notices, inner))
		b.WriteString("\n\n")
	}

	active := s.outcome != nil || s.widget.Ready()
	b.WriteString(components.NewButton(s.actionLabel(), active).View())

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

// renderStatusLine shows hearts, lesson progress and the running streak.
func (s *SessionScreen) renderStatusLine(st sess.State, width int) string {
	hearts := components.Hearts(st.Hearts, sess.MaxHearts)
	streak := components.Streak(st.Streak)
	step := theme.Hint.Render(fmt.Sprintf("%d/%d", st.StepIndex+1, st.Total))

	used := lipgloss.Width(hearts) + lipgloss.Width(streak) + lipgloss.Width(step) + 6
	bar := components.NewProgressBar("", s.ctrl.Progress(), false, max(10, width-used)).View()

	return hearts + "  " + bar + "  " + step + "  " + streak
}

// renderFeedback renders the bar shown after an answer.
func renderFeedback(out sess.StepOutcome, notices []notify.Event, width int) string {
	var head, detail string
	border := theme.Error
	if out.Correct {
		border = theme.Success
		head = theme.Correct.Render("✅ Correct!")
		if out.SpeedBonus {
			detail = fmt.Sprintf("⚡ Speed Bonus! +%d XP", out.Points)
		} else {
			detail = fmt.Sprintf("+%d XP", out.Points)
		}
		if out.Streak >= 3 {
			detail += fmt.Sprintf(" · 🔥 %d streak", out.Streak)
		}
	} else {
		head = theme.Incorrect.Render("❌ Wrong!")
		detail = "Keep trying!"
		if out.Hearts == 0 {
			detail = "Out of hearts!"
		}
	}

	lines := []string{head, theme.Hint.Render(detail)}
	for _, n := range notices {
		if n.Kind == notify.EventMilestone {
			lines = append(lines, theme.StreakFlame.Render(fmt.Sprintf("%s %s", n.Icon, n.Title)))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(min(width, 70)).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Quit this lesson?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your progress in this lesson will be lost."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, quit"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Wrapping up...")
}
