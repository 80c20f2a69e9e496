package exercise

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every structural validation failure.
var ErrInvalid = errors.New("invalid exercise")

// Payload is the kind-specific body of a Descriptor. The set of
// implementations is closed to this package.
type Payload interface {
	Kind() Kind
	// Validate checks that the correctness criterion refers to content
	// that actually exists (indices in range, ids present, etc.).
	Validate() error
	isPayload()
}

// Choice is implemented by payloads answered by picking one option index.
type Choice interface {
	Payload
	ChoiceLabels() []string
	CorrectIndex() int
}

// CodeLine is one displayed line of source.
type CodeLine struct {
	Text      string `json:"text"`
	Highlight bool   `json:"highlight,omitempty"`
	HasError  bool   `json:"hasError,omitempty"`
}

// Piece is a draggable code fragment in a scramble.
type Piece struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// CodePart is a fixed or gap segment of a fill-the-gap program.
type CodePart struct {
	Text string `json:"text"`
	Type string `json:"type"` // "fixed" or "gap"
	ID   string `json:"id,omitempty"`
}

// Gap part type values.
const (
	PartFixed = "fixed"
	PartGap   = "gap"
)

// Pair is one left/right association in a pair match.
type Pair struct {
	ID    int    `json:"id"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

// CodeOption is an option rendered as a code block with a short label.
type CodeOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// HistoryLine is a pre-seeded terminal transcript line.
type HistoryLine struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Trace struct {
	Prompt  string     `json:"prompt"`
	Code    []CodeLine `json:"code"`
	Options []string   `json:"options"`
	Correct int        `json:"correct"`
}

type BugHunt struct {
	Prompt      string     `json:"prompt"`
	Code        []CodeLine `json:"code"`
	CorrectLine int        `json:"correctLine"`
}

type Scramble struct {
	Prompt       string   `json:"prompt"`
	Pieces       []Piece  `json:"pieces"`
	Distractors  []Piece  `json:"distractors,omitempty"`
	CorrectOrder []string `json:"correctOrder"`
}

// Video is pure playback; it is always answered correctly.
type Video struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type OutputPredict struct {
	Prompt         string     `json:"prompt"`
	Code           []CodeLine `json:"code"`
	TerminalOutput string     `json:"terminalOutput,omitempty"`
	Options        []string   `json:"options"`
	Correct        int        `json:"correct"`
}

type FillGap struct {
	Prompt      string            `json:"prompt"`
	CodeParts   []CodePart        `json:"codeParts"`
	Bank        []string          `json:"bank"`
	CorrectFill map[string]string `json:"correctFill"`
}

type PairMatch struct {
	Prompt string `json:"prompt"`
	Pairs  []Pair `json:"pairs"`
}

type Refactor struct {
	Prompt       string       `json:"prompt"`
	OriginalCode string       `json:"originalCode"`
	Options      []CodeOption `json:"options"`
	Correct      int          `json:"correct"`
}

type ErrorDecode struct {
	Prompt    string   `json:"prompt"`
	ErrorText string   `json:"errorText"`
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	Correct   int      `json:"correct"`
}

type TerminalSim struct {
	Prompt           string        `json:"prompt"`
	ExpectedCommands []string      `json:"expectedCommands"`
	Hint             string        `json:"hint,omitempty"`
	History          []HistoryLine `json:"terminalHistory,omitempty"`
}

// AlgoStep shows the cells an algorithm is working on at step Step and
// asks about what happens next.
type AlgoStep struct {
	Prompt      string   `json:"prompt"`
	Cells       []Cell   `json:"array"`
	Step        int      `json:"step"`
	Description string   `json:"description,omitempty"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
}

// Cell is one displayed value of an algorithm's working array. Content
// packs may write cells as JSON strings or numbers.
type Cell string

func (c *Cell) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = Cell(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("algorithm cell must be a string or number: %s", b)
	}
	*c = Cell(n.String())
	return nil
}

type RealWorld struct {
	Prompt   string       `json:"prompt"`
	Scenario string       `json:"scenario"`
	Options  []CodeOption `json:"options"`
	Correct  int          `json:"correct"`
}

func (Trace) Kind() Kind         { return KindTrace }
func (BugHunt) Kind() Kind       { return KindBugHunt }
func (Scramble) Kind() Kind      { return KindScramble }
func (Video) Kind() Kind         { return KindVideo }
func (OutputPredict) Kind() Kind { return KindOutput }
func (FillGap) Kind() Kind       { return KindFillGap }
func (PairMatch) Kind() Kind     { return KindPairMatch }
func (Refactor) Kind() Kind      { return KindRefactor }
func (ErrorDecode) Kind() Kind   { return KindErrorDecode }
func (TerminalSim) Kind() Kind   { return KindTerminal }
func (AlgoStep) Kind() Kind      { return KindAlgoStep }
func (RealWorld) Kind() Kind     { return KindRealWorld }

func (Trace) isPayload()         {}
func (BugHunt) isPayload()       {}
func (Scramble) isPayload()      {}
func (Video) isPayload()         {}
func (OutputPredict) isPayload() {}
func (FillGap) isPayload()       {}
func (PairMatch) isPayload()     {}
func (Refactor) isPayload()      {}
func (ErrorDecode) isPayload()   {}
func (TerminalSim) isPayload()   {}
func (AlgoStep) isPayload()      {}
func (RealWorld) isPayload()     {}

func (t Trace) ChoiceLabels() []string { return t.Options }
func (t Trace) CorrectIndex() int      { return t.Correct }

// ChoiceLabels for a bug hunt are the code lines themselves.
func (b BugHunt) ChoiceLabels() []string {
	labels := make([]string, len(b.Code))
	for i, l := range b.Code {
		labels[i] = l.Text
	}
	return labels
}
func (b BugHunt) CorrectIndex() int { return b.CorrectLine }

func (o OutputPredict) ChoiceLabels() []string { return o.Options }
func (o OutputPredict) CorrectIndex() int      { return o.Correct }

func (r Refactor) ChoiceLabels() []string { return codeOptionLabels(r.Options) }
func (r Refactor) CorrectIndex() int      { return r.Correct }

func (e ErrorDecode) ChoiceLabels() []string { return e.Options }
func (e ErrorDecode) CorrectIndex() int      { return e.Correct }

func (a AlgoStep) ChoiceLabels() []string { return a.Options }
func (a AlgoStep) CorrectIndex() int      { return a.Correct }

func (r RealWorld) ChoiceLabels() []string { return codeOptionLabels(r.Options) }
func (r RealWorld) CorrectIndex() int      { return r.Correct }

func codeOptionLabels(opts []CodeOption) []string {
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
	}
	return labels
}

// ComparedCells is how many leading cells are under comparison.
const ComparedCells = 2

// Compared reports whether cell i is one of the cells being compared.
func (a AlgoStep) Compared(i int) bool {
	return i >= 0 && i < ComparedCells && i < len(a.Cells)
}

// Gaps returns the gap parts in program order.
func (f FillGap) Gaps() []CodePart {
	var gaps []CodePart
	for _, p := range f.CodeParts {
		if p.Type == PartGap {
			gaps = append(gaps, p)
		}
	}
	return gaps
}

// Pool returns pieces and distractors together, in authored order.
func (s Scramble) Pool() []Piece {
	pool := make([]Piece, 0, len(s.Pieces)+len(s.Distractors))
	pool = append(pool, s.Pieces...)
	return append(pool, s.Distractors...)
}

func invalid(k Kind, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalid, k, fmt.Sprintf(format, args...))
}

func validateChoice(c Choice) error {
	n := len(c.ChoiceLabels())
	if n == 0 {
		return invalid(c.Kind(), "no options")
	}
	if c.CorrectIndex() < 0 || c.CorrectIndex() >= n {
		return invalid(c.Kind(), "correct index %d out of range [0,%d)", c.CorrectIndex(), n)
	}
	return nil
}

func (t Trace) Validate() error         { return validateChoice(t) }
func (b BugHunt) Validate() error       { return validateChoice(b) }
func (o OutputPredict) Validate() error { return validateChoice(o) }
func (r Refactor) Validate() error      { return validateChoice(r) }
func (e ErrorDecode) Validate() error   { return validateChoice(e) }
func (r RealWorld) Validate() error     { return validateChoice(r) }

func (a AlgoStep) Validate() error {
	if len(a.Cells) == 0 {
		return invalid(a.Kind(), "no cells")
	}
	if a.Step < 0 {
		return invalid(a.Kind(), "negative step %d", a.Step)
	}
	return validateChoice(a)
}

func (v Video) Validate() error {
	if v.Title == "" {
		return invalid(v.Kind(), "missing title")
	}
	return nil
}

func (s Scramble) Validate() error {
	if len(s.CorrectOrder) == 0 {
		return invalid(s.Kind(), "empty correct order")
	}
	ids := make(map[string]bool)
	for _, p := range s.Pool() {
		if ids[p.ID] {
			return invalid(s.Kind(), "duplicate piece id %q", p.ID)
		}
		ids[p.ID] = true
	}
	for _, id := range s.CorrectOrder {
		if !ids[id] {
			return invalid(s.Kind(), "correct order references unknown piece %q", id)
		}
	}
	return nil
}

func (f FillGap) Validate() error {
	gaps := f.Gaps()
	if len(gaps) == 0 {
		return invalid(f.Kind(), "no gaps")
	}
	bank := make(map[string]bool, len(f.Bank))
	for _, w := range f.Bank {
		bank[w] = true
	}
	for _, g := range gaps {
		want, ok := f.CorrectFill[g.ID]
		if !ok {
			return invalid(f.Kind(), "gap %q has no correct fill", g.ID)
		}
		if !bank[want] {
			return invalid(f.Kind(), "fill %q for gap %q is not in the bank", want, g.ID)
		}
	}
	return nil
}

func (p PairMatch) Validate() error {
	if len(p.Pairs) == 0 {
		return invalid(p.Kind(), "no pairs")
	}
	seen := make(map[int]bool, len(p.Pairs))
	for _, pr := range p.Pairs {
		if seen[pr.ID] {
			return invalid(p.Kind(), "duplicate pair id %d", pr.ID)
		}
		seen[pr.ID] = true
	}
	return nil
}

func (t TerminalSim) Validate() error {
	if len(t.ExpectedCommands) == 0 {
		return invalid(t.Kind(), "no expected commands")
	}
	return nil
}
