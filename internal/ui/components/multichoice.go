package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rheo/rheo/internal/ui/theme"
)

// MultiChoice is a single-answer option picker. Arrows or j/k move the
// cursor, digit keys jump to an option and Enter submits.
type MultiChoice struct {
	Options []string
	// Details are optional code blocks shown under each option.
	Details      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// WithDetails attaches a code block to each option.
func (m MultiChoice) WithDetails(details []string) MultiChoice {
	m.Details = details
	return m
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if i, ok := DigitIndex(key); ok && i < len(m.Options) {
			m.Selected = i
		}
	}

	return m, nil
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if i < len(m.Details) && m.Details[i] != "" {
			b.WriteString(indent(theme.Code.Render(m.Details[i]), 5))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}

// DigitIndex maps the keys "1" to "9" to option indexes 0 to 8.
func DigitIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '1'), true
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
