package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rheo/rheo/internal/ui/theme"
)

// Hearts renders n filled hearts out of total.
func Hearts(n, total int) string {
	n = max(0, min(n, total))
	return theme.HeartFull.Render(strings.Repeat("♥", n)) +
		theme.Muted.Render(strings.Repeat("♥", total-n))
}

// Stars renders a three-star rating.
func Stars(n int) string {
	n = max(0, min(n, 3))
	return theme.StarLit.Render(strings.Repeat("★", n)) +
		theme.Muted.Render(strings.Repeat("★", 3-n))
}

// Streak renders the flame counter, or nothing below two in a row.
func Streak(n int) string {
	if n < 2 {
		return ""
	}
	return theme.StreakFlame.Render(fmt.Sprintf("🔥 %d", n))
}

// CodeBlock renders numbered source lines. Highlighted lines are drawn in
// the accent color and error lines in red.
type CodeBlock struct {
	Lines     []string
	Highlight map[int]bool
	Errors    map[int]bool
	// Cursor marks a selectable line; -1 for none.
	Cursor int
}

// NewCodeBlock creates a block with no cursor.
func NewCodeBlock(lines []string) CodeBlock {
	return CodeBlock{Lines: lines, Cursor: -1}
}

// View renders the block inside a border.
func (c CodeBlock) View() string {
	var b strings.Builder
	for i, line := range c.Lines {
		num := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%2d ", i+1))
		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case c.Errors[i]:
			style = lipgloss.NewStyle().Foreground(theme.Error)
		case c.Highlight[i]:
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		}
		marker := "  "
		if i == c.Cursor {
			marker = theme.Selected.Render("▸ ")
			style = style.Bold(true).Underline(true)
		}
		b.WriteString(marker + num + style.Render(line))
		if i < len(c.Lines)-1 {
			b.WriteString("\n")
		}
	}
	return theme.Code.Render(b.String())
}
