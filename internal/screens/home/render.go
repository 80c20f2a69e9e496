package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rheo/rheo/internal/content"
	"github.com/rheo/rheo/internal/exercise"
	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/ui/components"
	"github.com/rheo/rheo/internal/ui/theme"
)

// contentWidth returns the width of the node list column.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2), padding (4) and the detail
	// column on wide terminals.
	w := frameWidth - 6
	if frameWidth >= 100 {
		w = frameWidth / 2
	}
	return max(30, min(w, 60))
}

// renderStatsBar renders the journey totals in a bordered box.
func renderStatsBar(completed, total, stars int, mult journey.Multiplier, cw int) string {
	done := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("✓ %d/%d LESSONS", completed, total))
	starText := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
		Render(fmt.Sprintf("★ %d STARS", stars))

	stats := done + "   " + starText
	if mult.Label != "" {
		stats += "   " + lipgloss.NewStyle().Foreground(theme.Streak).Bold(true).Render("⚡ "+mult.Label)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Render(stats)
}

// renderPath renders the chapter-grouped node list, scrolled so the
// cursor stays visible within maxLines.
func (h *HomeScreen) renderPath(maxLines int) string {
	var lines []string
	cursorLine := 0
	chapter := 0

	for i, n := range h.path.Nodes {
		if n.Chapter != chapter {
			chapter = n.Chapter
			lines = append(lines, chapterHeader(h.path, chapter))
		}
		if i == h.menu.Selected {
			cursorLine = len(lines)
		}
		lines = append(lines, nodeLine(n, h.progress[n.ID], i == h.menu.Selected))
	}

	if len(lines) > maxLines {
		start := max(0, min(cursorLine-maxLines/2, len(lines)-maxLines))
		lines = lines[start : start+maxLines]
	}
	return strings.Join(lines, "\n")
}

func chapterHeader(path journey.Path, number int) string {
	c, ok := path.Chapter(number)
	if !ok {
		c = journey.Chapter{Number: number, Name: fmt.Sprintf("Chapter %d", number), Accent: "#94A3B8"}
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Accent)).
		Bold(true).
		Render(fmt.Sprintf("CHAPTER %d · %s", c.Number, strings.ToUpper(c.Name)))
}

func nodeLine(n journey.Node, st journey.NodeState, selected bool) string {
	label := n.Type.Icon() + " " + n.Title

	var marker string
	switch st.Status {
	case journey.StatusCompleted:
		marker = components.Stars(st.Stars)
	case journey.StatusActive:
		marker = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("● START")
	case journey.StatusAvailable:
		marker = theme.Hint.Render("○")
	default:
		marker = "🔒"
	}

	switch {
	case selected:
		return theme.Selected.Render("  ▸ "+label) + "  " + marker
	case !st.Status.Playable():
		return theme.Muted.Render("    "+label) + "  " + marker
	}
	return theme.Unselected.Render("    "+label) + "  " + marker
}

// renderDetail renders the preview card of the node under the cursor.
func renderDetail(n journey.Node, st journey.NodeState, catalog *content.Catalog, lang string) string {
	if n.ID == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(n.Type.Icon() + " " + n.Title))
	b.WriteString("\n")
	meta := fmt.Sprintf("Chapter %d", n.Chapter)
	if n.Skill != "" {
		meta += " · " + n.Skill
	}
	b.WriteString(theme.Hint.Render(meta))
	b.WriteString("\n\n")

	difficulty := strings.Repeat("●", n.Difficulty()) + strings.Repeat("○", 3-n.Difficulty())
	b.WriteString(theme.Label.Render("DIFFICULTY  ") + lipgloss.NewStyle().Foreground(theme.Accent).Render(difficulty))
	b.WriteString("\n")
	if catalog != nil {
		b.WriteString(theme.Label.Render("QUESTIONS   ") + theme.Body.Render(fmt.Sprint(questionCount(catalog.Exercises(n.ID, lang)))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch st.Status {
	case journey.StatusCompleted:
		b.WriteString(components.Stars(st.Stars) + "  " + theme.Hint.Render("Replay to improve your stars"))
	case journey.StatusActive, journey.StatusAvailable:
		b.WriteString(components.NewButton("START", true).View())
	default:
		b.WriteString(theme.Muted.Render("🔒 Complete the previous lessons to unlock"))
	}

	return theme.Card.Render(b.String())
}

// questionCount counts the exercises that ask something.
func questionCount(exercises []exercise.Descriptor) int {
	n := 0
	for _, ex := range exercises {
		if ex.Kind() != exercise.KindVideo {
			n++
		}
	}
	return n
}

// journeyView holds the rendered parts of the journey screen.
type journeyView struct {
	otter    string
	stats    string
	list     string
	detail   string
	banner   banner
	compact  bool
	width    int
	height   int
	contentW int
}

func renderJourney(v journeyView) string {
	var sections []string
	sections = append(sections, v.stats)

	if v.banner.text != "" {
		style := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		if v.banner.warn {
			style = style.Foreground(theme.Accent)
		}
		sections = append(sections, style.Render(v.banner.text))
	}

	list := lipgloss.NewStyle().Width(v.contentW).Render(v.list)
	if v.compact {
		sections = append(sections, list)
	} else {
		side := lipgloss.JoinVertical(lipgloss.Left, v.otter, "", v.detail)
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, list, "    ", side))
	}

	return renderFrame(strings.Join(sections, "\n\n"), v.width, v.height)
}

// renderFrame centers content in the given area.
func renderFrame(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Padding(0, 2).Render(content))
}
