package session

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rheo/rheo/internal/exercise"
	"github.com/rheo/rheo/internal/ui/components"
	"github.com/rheo/rheo/internal/ui/layout"
	"github.com/rheo/rheo/internal/ui/theme"
)

// verdict is what a widget decided after a key press.
type verdict int

const (
	undecided verdict = iota
	answeredRight
	answeredWrong
)

func decided(correct bool) verdict {
	if correct {
		return answeredRight
	}
	return answeredWrong
}

// shuffleFunc matches rand.Shuffle.
type shuffleFunc func(n int, swap func(i, j int))

// widget collects the answer to one exercise.
type widget interface {
	Init() tea.Cmd
	// Update handles input and reports a verdict once the answer is in.
	Update(msg tea.Msg) (tea.Cmd, verdict)
	// Ready reports whether Enter would check an answer.
	Ready() bool
	View(width int) string
	Hints() []layout.KeyHint
}

func newWidget(d exercise.Descriptor, shuffle shuffleFunc) widget {
	switch p := d.Payload.(type) {
	case exercise.Trace:
		return newChoice(p, nil, codeLines(p.Code))
	case exercise.OutputPredict:
		blocks := []string{codeLines(p.Code)}
		if p.TerminalOutput != "" {
			blocks = append(blocks, theme.Label.Render("▸ OUTPUT")+"\n"+
				theme.Code.Render(theme.Correct.Render(">>> ")+p.TerminalOutput))
		}
		return newChoice(p, nil, blocks...)
	case exercise.ErrorDecode:
		errBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Error).
			Foreground(theme.Error).
			Padding(0, 1).
			Render(p.ErrorText)
		return newChoice(p, nil, errBox, theme.Body.Bold(true).Render(p.Question))
	case exercise.Refactor:
		return newChoice(p, codeDetails(p.Options),
			theme.Label.Render("ORIGINAL CODE")+"\n"+theme.Code.Render(p.OriginalCode),
			theme.Label.Render("PICK THE BEST REFACTOR"))
	case exercise.RealWorld:
		return newChoice(p, codeDetails(p.Options),
			theme.Label.Render("REAL WORLD SCENARIO")+"\n"+theme.Body.Render(p.Scenario),
			theme.Label.Render("WHICH CODE SOLVES THIS?"))
	case exercise.AlgoStep:
		return newChoice(p, nil, algoCells(p), theme.Body.Bold(true).Render(p.Question))
	case exercise.BugHunt:
		return newBugHunt(p)
	case exercise.Video:
		return videoWidget{p}
	case exercise.Scramble:
		return newScramble(p, shuffle)
	case exercise.FillGap:
		return newFillGap(p)
	case exercise.PairMatch:
		return newPairs(p, shuffle)
	case exercise.TerminalSim:
		return newTerminal(p)
	}
	return videoWidget{exercise.Video{Title: "Unsupported exercise"}}
}

func codeLines(lines []exercise.CodeLine) string {
	text := make([]string, len(lines))
	cb := components.NewCodeBlock(nil)
	cb.Highlight = map[int]bool{}
	cb.Errors = map[int]bool{}
	for i, l := range lines {
		text[i] = l.Text
		cb.Highlight[i] = l.Highlight
		cb.Errors[i] = l.HasError
	}
	cb.Lines = text
	return cb.View()
}

func codeDetails(opts []exercise.CodeOption) []string {
	details := make([]string, len(opts))
	for i, o := range opts {
		details[i] = o.Code
	}
	return details
}

func algoCells(a exercise.AlgoStep) string {
	cells := make([]string, len(a.Cells))
	for i, c := range a.Cells {
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1)
		if a.Compared(i) {
			style = style.BorderForeground(theme.Primary).Foreground(theme.Primary).Bold(true)
		}
		cells[i] = style.Render(string(c))
	}
	s := theme.Label.Render(fmt.Sprintf("STEP %d", a.Step)) + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	if a.Description != "" {
		s += "\n" + theme.Hint.Render(a.Description)
	}
	return s
}

// choiceWidget answers any single-choice payload.
type choiceWidget struct {
	mc     components.MultiChoice
	blocks []string
}

func newChoice(c exercise.Choice, details []string, blocks ...string) *choiceWidget {
	return &choiceWidget{
		mc:     components.NewMultiChoice(c.ChoiceLabels(), c.CorrectIndex()).WithDetails(details),
		blocks: blocks,
	}
}

func (w *choiceWidget) Init() tea.Cmd { return nil }
func (w *choiceWidget) Ready() bool   { return true }

func (w *choiceWidget) Update(msg tea.Msg) (tea.Cmd, verdict) {
	w.mc, _ = w.mc.Update(msg)
	if w.mc.Submitted {
		return nil, decided(w.mc.IsCorrect())
	}
	return nil, undecided
}

func (w *choiceWidget) View(int) string {
	parts := append([]string{}, w.blocks...)
	parts = append(parts, w.mc.View())
	return strings.Join(parts, "\n\n")
}

func (w *choiceWidget) Hints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓ 1-9", Description: "Choose"},
		{Key: "Enter", Description: "Check"},
	}
}

// bugHuntWidget picks the faulty line of a listing.
type bugHuntWidget struct {
	bug       exercise.BugHunt
	block     components.CodeBlock
	submitted bool
}

func newBugHunt(b exercise.BugHunt) *bugHuntWidget {
	lines := make([]string, len(b.Code))
	for i, l := range b.Code {
		lines[i] = l.Text
	}
	block := components.NewCodeBlock(lines)
	block.Cursor = 0
	return &bugHuntWidget{bug: b, block: block}
}

func (w *bugHuntWidget) Init() tea.Cmd { return nil }
func (w *bugHuntWidget) Ready() bool   { return true }

func (w *bugHuntWidget) Update(msg tea.Msg) (tea.Cmd, verdict) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || w.submitted {
		return nil, undecided
	}
	switch key := k.String(); key {
	case "up", "k":
		w.block.Cursor = max(0, w.block.Cursor-1)
	case "down", "j":
		w.block.Cursor = min(len(w.block.Lines)-1, w.block.Cursor+1)
	case "enter":
		w.submitted = true
		correct := exercise.CheckChoice(w.bug, w.block.Cursor)
		w.block.Errors = map[int]bool{w.bug.CorrectLine: true}
		return nil, decided(correct)
	default:
		if i, ok := components.DigitIndex(key); ok && i < len(w.block.Lines) {
			w.block.Cursor = i
		}
	}
	return nil, undecided
}

func (w *bugHuntWidget) View(int) string {
	return theme.Hint.Render("Select the line with the bug") + "\n" + w.block.View()
}

func (w *bugHuntWidget) Hints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓ 1-9", Description: "Line"},
		{Key: "Enter", Description: "Check"},
	}
}

// videoWidget is watched, not answered.
type videoWidget struct {
	video exercise.Video
}

func (w videoWidget) Init() tea.Cmd { return nil }
func (w videoWidget) Ready() bool   { return true }

func (w videoWidget) Update(msg tea.Msg) (tea.Cmd, verdict) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "enter" {
		return nil, answeredRight
	}
	return nil, undecided
}

func (w videoWidget) View(width int) string {
	title := "🎬 " + w.video.Title
	if w.video.Duration != "" {
		title += "  " + theme.Hint.Render(w.video.Duration)
	}
	body := theme.Title.Render(title)
	if w.video.Description != "" {
		body += "\n\n" + theme.Body.Width(min(width-4, 70)).Render(w.video.Description)
	}
	return theme.Card.Render(body)
}

func (w videoWidget) Hints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
}

// scrambleWidget builds a program from lettered pieces.
type scrambleWidget struct {
	scramble  exercise.Scramble
	pool      []exercise.Piece
	placed    []string
	submitted bool
}

func newScramble(s exercise.Scramble, shuffle shuffleFunc) *scrambleWidget {
	pool := s.Pool()
	shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return &scrambleWidget{scramble: s, pool: pool}
}

func (w *scrambleWidget) Init() tea.Cmd { return nil }
func (w *scrambleWidget) Ready() bool   { return len(w.placed) > 0 }

func (w *scrambleWidget) isPlaced(id string) bool {
	for _, p := range w.placed {
		if p == id {
			return true
		}
	}
	return false
}

func (w *scrambleWidget) Update(msg tea.Msg) (tea.Cmd, verdict) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || w.submitted {
		return nil, undecided
	}
	switch key := k.String(); key {
	case "backspace":
		if len(w.placed) > 0 {
			w.placed = w.placed[:len(w.placed)-1]
		}
	case "enter":
		if !w.Ready() {
			return nil, undecided
		}
		w.submitted = true
		return nil, decided(exercise.CheckOrder(w.scramble, w.placed))
	default:
		if i, ok := letterIndex(key); ok && i < len(w.pool) && !w.isPlaced(w.pool[i].ID) {
			w.placed = append(w.placed, w.pool[i].ID)
		}
	}
	return nil, undecided
}

func (w *scrambleWidget) View(int) string {
	text := make(map[string]string, len(w.pool))
	for _, p := range w.pool {
		text[p.ID] = p.Text
	}

	var program []string
	for _, id := range w.placed {
		program = append(program, text[id])
	}
	if len(program) == 0 {
		program = []string{theme.Hint.Render("Press a letter to place a piece")}
	}

	var pool []string
	for i, p := range w.pool {
		line := fmt.Sprintf("[%c] %s", 'a'+i, p.Text)
		if w.isPlaced(p.ID) {
			pool = append(pool, theme.Muted.Render(line))
		} else {
			pool = append(pool, theme.Unselected.Render(line))
		}
	}

	return theme.Label.Render("YOUR CODE") + "\n" +
		theme.Code.Render(strings.Join(program, "\n")) + "\n\n" +
		strings.Join(pool, "\n")
}

func (w *scrambleWidget) Hints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "a-z", Description: "Place"},
		{Key: "Backspace", Description: "Undo"},
		{Key: "Enter", Description: "Check"},
	}
}

// fillGapWidget fills gaps in program order from a numbered word bank.
type fillGapWidget struct {
	fill      exercise.FillGap
	gaps      []exercise.CodePart
	fills     map[string]string
	submitted bool
}

func newFillGap(f exercise.FillGap) *fillGapWidget {
	return &fillGapWidget{fill: f, gaps: f.Gaps(), fills: map[string]string{}}
}

func (w *fillGapWidget) Init() tea.Cmd { return nil }
func (w *fillGapWidget) Ready() bool   { return len(w.fills) == len(w.gaps) }

func (w *fillGapWidget) Update(msg tea.Msg) (tea.Cmd, verdict) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || w.submitted {
		return nil, undecided
	}
	switch key := k.String(); key {
	case "backspace":
		for i := len(w.gaps) - 1; i >= 0; i-- {
			if _, ok := w.fills[w.gaps[i].ID]; ok {
				delete(w.fills, w.gaps[i].ID)
				break
			}
		}
	case "enter":
		if !w.Ready() {
			return nil, undecided
		}
		w.submitted = true
		return nil, decided(exercise.CheckFills(w.fill, w.fills))
	default:
		i, ok := components.DigitIndex(key)
		if !ok || i >= len(w.fill.Bank) {
			break
		}
		for _, g := range w.gaps {
			if _, filled := w.fills[g.ID]; !filled {
				w.fills[g.ID] = w.fill.Bank[i]
				break
			}
		}
	}
	return nil, undecided
}

func (w *fillGapWidget) View(int) string {
	var code strings.Builder
	for _, part := range w.fill.CodeParts {
		if part.Type != exercise.PartGap {
			code.WriteString(part.Text)
			continue
		}
		word, ok := w.fills[part.ID]
		switch {
		case !ok:
			code.WriteString(theme.Hint.Render("[____]"))
		case w.submitted && word == w.fill.CorrectFill[part.ID]:
			code.WriteString(theme.Correct.Render("[" + word + "]"))
		case w.submitted:
			code.WriteString(theme.Incorrect.Render("[" + word + "]"))
		default:
			code.WriteString(theme.Selected.Render("[" + word + "]"))
		}
	}

	bank := make([]string, len(w.fill.Bank))
	for i, word := range w.fill.Bank {
		bank[i] = fmt.Sprintf("%d) %s", i+1, word)
	}

	return theme.Code.Render(code.String()) + "\n\n" +
		theme.Label.Render("WORD BANK") + "\n" +
		theme.Unselected.Render(strings.Join(bank, "   "))
}

func (w *fillGapWidget) Hints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1-9", Description: "Fill"},
		{Key: "Backspace", Description: "Undo"},
		{Key: "Enter", Description: "Check"},
	}
}

// pairWidget matches numbered concepts with lettered definitions.
type pairWidget struct {
	tracker   *exercise.PairTracker
	left      []exercise.Pair
	right     []exercise.Pair
	selected  int // left pair id, -1 for none
	lastWrong bool
}

func newPairs(p exercise.PairMatch, shuffle shuffleFunc) *pairWidget {
	left := append([]exercise.Pair(nil), p.Pairs...)
	right := append([]exercise.Pair(nil), p.Pairs...)
	shuffle(len(left), func(i, j int) { left[i], left[j] = left[j], left[i] })
	shuffle(len(right), func(i, j int) { right[i], right[j] = right[j], right[i] })
	return &pairWidget{tracker: exercise.NewPairTracker(p), left: left, right: right, selected: -1}
}

func (w *pairWidget) Init() tea.Cmd { return nil }
func (w *pairWidget) Ready() bool   { return false }

func (w *pairWidget) Update(msg tea.Msg) (tea.Cmd, verdict) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil, undecided
	}
	if done, _ := w.tracker.Done(); done {
		return nil, undecided
	}
	key := k.String()
	if i, ok := components.DigitIndex(key); ok && i < len(w.left) {
		if !w.tracker.IsMatched(w.left[i].ID) {
			w.selected = w.left[i].ID
			w.lastWrong = false
		}
		return nil, undecided
	}
	i, ok := letterIndex(key)
	if !ok || i >= len(w.right) || w.selected < 0 || w.tracker.IsMatched(w.right[i].ID) {
		return nil, undecided
	}
	w.lastWrong = !w.tracker.Match(w.selected, w.right[i].ID)
	w.selected = -1
	if done, correct := w.tracker.Done(); done {
		return nil, decided(correct)
	}
	return nil, undecided
}

func (w *pairWidget) View(width int) string {
	col := max(20, width/2-4)
	render := func(label, text string, id int) string {
		line := label + " " + text
		switch {
		case w.tracker.IsMatched(id):
			return theme.Correct.Width(col).Render("✓ " + line)
		case id == w.selected:
			return theme.Selected.Width(col).Render("▸ " + line)
		}
		return theme.Unselected.Width(col).Render("  " + line)
	}

	var left, right []string
	for i, p := range w.left {
		left = append(left, render(fmt.Sprintf("%d)", i+1), p.Left, p.ID))
	}
	for i, p := range w.right {
		right = append(right, render(fmt.Sprintf("%c)", 'a'+i), p.Right, p.ID))
	}

	status := theme.Hint.Render("🔗 Pick a concept, then its match")
	if w.lastWrong {
		status = theme.Incorrect.Render(fmt.Sprintf("✗ Not a match (%d/%d)", w.tracker.Wrong(), exercise.MaxWrongAttempts))
	}
	return status + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(left, "\n"), "   ", strings.Join(right, "\n"))
}

func (w *pairWidget) Hints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1-9", Description: "Concept"},
		{Key: "a-z", Description: "Match"},
	}
}

// terminalWidget runs a scripted shell session.
type terminalWidget struct {
	sim     exercise.TerminalSim
	tracker *exercise.TerminalTracker
	input   components.TextInput
	history []exercise.HistoryLine
}

func newTerminal(sim exercise.TerminalSim) *terminalWidget {
	return &terminalWidget{
		sim:     sim,
		tracker: exercise.NewTerminalTracker(sim),
		input:   components.NewTextInput("type your code...", 120),
		history: append([]exercise.HistoryLine(nil), sim.History...),
	}
}

func (w *terminalWidget) Init() tea.Cmd { return w.input.Init() }
func (w *terminalWidget) Ready() bool   { return w.input.Value() != "" }

func (w *terminalWidget) Update(msg tea.Msg) (tea.Cmd, verdict) {
	if done, _ := w.tracker.Done(); done {
		return nil, undecided
	}
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || k.String() != "enter" {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return cmd, undecided
	}

	cmd := strings.TrimSpace(w.input.Value())
	if cmd == "" {
		return nil, undecided
	}
	match := w.tracker.Enter(cmd)
	w.history = append(w.history, exercise.HistoryLine{Type: "input", Text: cmd})
	if match {
		w.history = append(w.history, exercise.HistoryLine{Type: "success", Text: "✓ Correct!"})
	} else {
		w.history = append(w.history, exercise.HistoryLine{Type: "error", Text: "✗ Not quite, try again!"})
	}
	w.input.Clear()

	if done, correct := w.tracker.Done(); done {
		w.input.Submit(correct)
		return nil, decided(correct)
	}
	return nil, undecided
}

func (w *terminalWidget) View(int) string {
	lines := make([]string, 0, len(w.history)+1)
	for _, h := range w.history {
		switch h.Type {
		case "input":
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Primary).Render("❯ "+h.Text))
		case "success":
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Success).Render(h.Text))
		case "error":
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render(h.Text))
		default:
			lines = append(lines, theme.Hint.Render(h.Text))
		}
	}
	if done, _ := w.tracker.Done(); !done {
		lines = append(lines, w.input.View())
	}

	s := theme.Label.Render("● ● ●  Terminal") + "\n" + theme.Code.Render(strings.Join(lines, "\n"))
	if w.sim.Hint != "" {
		step := min(w.tracker.Completed()+1, len(w.sim.ExpectedCommands))
		s += "\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render("💡 Hint: "+w.sim.Hint) +
			"\n" + theme.Hint.Render(fmt.Sprintf("Step %d of %d", step, len(w.sim.ExpectedCommands)))
	}
	return s
}

func (w *terminalWidget) Hints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Run"}}
}

// letterIndex maps the keys "a" to "z" to indexes 0 to 25.
func letterIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < 'a' || key[0] > 'z' {
		return 0, false
	}
	return int(key[0] - 'a'), true
}
