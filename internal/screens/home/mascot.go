package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/ui/theme"
)

// Face selects which otter art to display.
type Face int

const (
	FaceHappy      Face = iota // Default teal
	FaceDetermined             // Boss node next
	FaceExcited                // Chest node next
	FaceCool                   // Week-long streak
	FaceSad                    // Streak lost
	FaceSleepy                 // Early morning or late night
)

// Mood is the otter's face and speech bubble.
type Mood struct {
	Face   Face
	Bubble string
}

// OtterMood picks the otter's mood from the day streak, the type of the
// next node on the path and the local hour.
func OtterMood(streak int, next journey.NodeType, hour int) Mood {
	switch {
	case next == journey.NodeBoss:
		return Mood{FaceDetermined, "Boss time! ⚔️"}
	case next == journey.NodeChest:
		return Mood{FaceExcited, "Loot time! 🎁"}
	case streak >= 7:
		return Mood{FaceCool, "On fire! 🔥"}
	case streak == 0:
		return Mood{FaceSad, "Miss you! 💔"}
	case hour < 10:
		return Mood{FaceSleepy, "Good morning! ☕"}
	case hour >= 22:
		return Mood{FaceSleepy, "Late night coding! 🌙"}
	}
	return Mood{FaceHappy, "Let's code! 🚀"}
}

var otterEyes = map[Face]string{
	FaceHappy:      "◉ ◉",
	FaceDetermined: "▼ ▼",
	FaceExcited:    "★ ★",
	FaceCool:       "■-■",
	FaceSad:        "╥ ╥",
	FaceSleepy:     "- -",
}

// RenderOtter returns the otter art with its speech bubble.
func RenderOtter(m Mood) string {
	eyes, ok := otterEyes[m.Face]
	if !ok {
		eyes = otterEyes[FaceHappy]
	}
	mouth := "ᴥ"
	if m.Face == FaceSad {
		mouth = "ᴖ"
	}

	art := " ╭───────╮\n" +
		" │  " + eyes + "  │\n" +
		" │   " + mouth + "   │\n" +
		" ╰─┬───┬─╯\n" +
		"   ╰───╯"

	var fg color.Color = theme.Primary
	switch m.Face {
	case FaceDetermined:
		fg = theme.Error
	case FaceExcited, FaceCool:
		fg = theme.Gold
	case FaceSad, FaceSleepy:
		fg = theme.TextDim
	}

	bubble := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Text).
		Padding(0, 1).
		Render(m.Bubble)

	return lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.NewStyle().Foreground(fg).Render(art), "  ", bubble)
}
