package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rheo/rheo/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu. The cursor skips disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

// Select moves the cursor to i if it is enabled.
func (m *Menu) Select(i int) {
	if i >= 0 && i < len(m.Items) && !m.Items[i].Disabled {
		m.Selected = i
	}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		switch {
		case i == m.Selected:
			s += theme.Selected.Render("  ▸ "+item.Label) + "\n"
		case item.Disabled:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+item.Label) + "\n"
		default:
			s += theme.Unselected.Render("    "+item.Label) + "\n"
		}
	}
	return s
}
