package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/rheo/rheo/internal/content"
	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/router"
	"github.com/rheo/rheo/internal/screen"
	"github.com/rheo/rheo/internal/screens/home"
	"github.com/rheo/rheo/internal/screens/welcome"
	"github.com/rheo/rheo/internal/store"
	"github.com/rheo/rheo/internal/ui/layout"
)

// Options holds dependencies for the app.
type Options struct {
	Service  *journey.Service
	Catalog  *content.Catalog
	Events   store.EventRepo
	Logger   *zap.Logger
	Language string
	Clock    func() time.Time

	// Initial replaces the journey as the root screen. The program exits
	// when it is popped.
	Initial screen.Screen
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	service *journey.Service
	width   int
	height  int
}

// newAppModel creates the root model. First-time learners see the
// onboarding slides before the journey.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return AppModel{
		router:  router.New(initialScreen(opts)),
		service: opts.Service,
	}
}

func initialScreen(opts Options) screen.Screen {
	if opts.Initial != nil {
		return opts.Initial
	}
	journeyScreen := func() screen.Screen {
		return home.New(home.Deps{
			Service:  opts.Service,
			Catalog:  opts.Catalog,
			Events:   opts.Events,
			Logger:   opts.Logger,
			Language: opts.Language,
			Clock:    opts.Clock,
		})
	}
	if opts.Service.OnboardingDone(context.Background()) {
		return journeyScreen()
	}
	return welcome.New(opts.Service, journeyScreen)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case router.PopScreenMsg:
		if m.router.Depth() <= 1 {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render lays out the header, active screen and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.badges(), m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(p.KeyHints(), footerHints...)
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) badges() layout.Badges {
	if m.service == nil {
		return layout.Badges{}
	}
	st := m.service.Stats()
	return layout.Badges{
		Gems:    st.Gems,
		Streak:  st.Streak,
		Energy:  st.Energy,
		DailyXP: st.DailyXP,
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
