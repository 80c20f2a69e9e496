package home

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/rheo/rheo/internal/content"
	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/router"
	"github.com/rheo/rheo/internal/screen"
	"github.com/rheo/rheo/internal/screens/history"
	sessionscreen "github.com/rheo/rheo/internal/screens/session"
	"github.com/rheo/rheo/internal/screens/summary"
	"github.com/rheo/rheo/internal/store"
	"github.com/rheo/rheo/internal/ui/components"
	"github.com/rheo/rheo/internal/ui/layout"
)

// Deps are the collaborators of the journey screen.
type Deps struct {
	Service  *journey.Service
	Catalog  *content.Catalog
	Events   store.EventRepo
	Logger   *zap.Logger
	Language string
	// Clock drives the otter's time of day. Defaults to time.Now.
	Clock func() time.Time
}

// HomeScreen is the journey map: every node of the path grouped by
// chapter, with the cursor on the learner's current node.
type HomeScreen struct {
	deps Deps

	path     journey.Path
	progress journey.Progress
	stats    journey.Stats

	menu   components.Menu
	banner banner
}

// banner is the one-line notice left by the last lesson.
type banner struct {
	text string
	warn bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Language == "" {
		deps.Language = content.FallbackLanguage
	}
	h := &HomeScreen{deps: deps, path: deps.Service.Path()}
	h.refresh()
	return h
}

// refresh reloads progress and rebuilds the node list, leaving the
// cursor on the current node.
func (h *HomeScreen) refresh() {
	h.progress = h.deps.Service.Progress()
	h.stats = h.deps.Service.Stats()

	items := make([]components.MenuItem, len(h.path.Nodes))
	for i, n := range h.path.Nodes {
		node := n
		items[i] = components.MenuItem{
			Label:    node.Title,
			Disabled: !h.progress[node.ID].Status.Playable(),
			Action:   func() tea.Cmd { return h.open(node) },
		}
	}
	h.menu = components.NewMenu(items)
	if cur, ok := journey.Current(h.progress, h.path); ok {
		h.menu.Select(h.indexOf(cur.ID))
	}
}

func (h *HomeScreen) indexOf(nodeID int) int {
	for i, n := range h.path.Nodes {
		if n.ID == nodeID {
			return i
		}
	}
	return -1
}

// open starts a lesson at node.
func (h *HomeScreen) open(node journey.Node) tea.Cmd {
	exercises := h.deps.Catalog.Exercises(node.ID, h.deps.Language)
	h.banner = banner{}
	h.deps.Logger.Debug("opening node", zap.Int("node", node.ID), zap.Int("exercises", len(exercises)))

	next := sessionscreen.New(node, exercises, sessionscreen.Deps{
		Service:  h.deps.Service,
		Events:   h.deps.Events,
		Logger:   h.deps.Logger,
		Language: h.deps.Language,
		Clock:    h.deps.Clock,
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Journey"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Move"},
		{Key: "Enter", Description: "Start lesson"},
		{Key: "h", Description: "History"},
		{Key: "q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summary.DoneMsg:
		h.refresh()
		h.banner = bannerFor(msg, h.path)
		return h, nil
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q":
			return h, tea.Quit
		case "h":
			if h.deps.Events != nil {
				next := history.New(h.deps.Events, h.path)
				return h, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// bannerFor summarises what a finished lesson did to the journey.
func bannerFor(msg summary.DoneMsg, path journey.Path) banner {
	switch {
	case !msg.Completed:
		return banner{text: "💪 Out of hearts. Give it another go!"}
	case msg.Err != nil:
		return banner{text: "⚠ Lesson could not be recorded", warn: true}
	case !msg.Record.Saved:
		return banner{text: "⚠ Progress not saved", warn: true}
	}

	text := fmt.Sprintf("+%d XP", msg.Record.XP)
	if msg.Record.ChapterComplete {
		name := fmt.Sprintf("Chapter %d", msg.Record.Chapter)
		if c, ok := path.Chapter(msg.Record.Chapter); ok {
			name = c.Name
		}
		text += fmt.Sprintf("   🏆 %s complete!", name)
	}
	if n, ok := path.Node(msg.Record.Unlocked); ok {
		text += fmt.Sprintf("   🔓 Unlocked: %s", n.Title)
	}
	return banner{text: text}
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)

	var next journey.NodeType
	if cur, ok := journey.Current(h.progress, h.path); ok {
		next = cur.Type
	}
	mood := OtterMood(h.stats.Streak, next, h.deps.Clock().Hour())

	completed, stars := h.progress.Counts()
	top := renderStatsBar(completed, len(h.path.Nodes), stars, journey.StreakMultiplier(h.stats.Streak), cw)

	var selected journey.Node
	if i := h.menu.Selected; i >= 0 && i < len(h.path.Nodes) {
		selected = h.path.Nodes[i]
	}
	detail := renderDetail(selected, h.progress[selected.ID], h.deps.Catalog, h.deps.Language)

	compact := layout.IsCompactWidth(width) || height < 26
	return renderJourney(journeyView{
		otter:    RenderOtter(mood),
		stats:    top,
		list:     h.renderPath(max(6, height-10)),
		detail:   detail,
		banner:   h.banner,
		compact:  compact,
		width:    width,
		height:   height,
		contentW: cw,
	})
}
