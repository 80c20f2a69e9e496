package components

import (
	"github.com/rheo/rheo/internal/ui/theme"
)

// Button is the lesson action bar: CHECK, CONTINUE or FINISH.
type Button struct {
	Label  string
	Active bool
}

// NewButton creates a new button.
func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

// View renders the button.
func (b Button) View() string {
	label := " " + b.Label + " "
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
