package summary

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/notify"
	"github.com/rheo/rheo/internal/router"
	"github.com/rheo/rheo/internal/screen"
	"github.com/rheo/rheo/internal/session"
	"github.com/rheo/rheo/internal/store"
)

func testService(t *testing.T) *journey.Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "rheo.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	svc := journey.NewService(st.KVRepo(), journey.DefaultPath(), nil)
	svc.Load(context.Background())
	return svc
}

func testSummary(completed bool) session.Summary {
	hearts := 4
	if !completed {
		hearts = 0
	}
	sum := session.Summary{
		Result: session.Result{
			Completed:    completed,
			Stars:        session.StarsForHearts(hearts),
			CorrectCount: 4,
			Total:        5,
		},
		Hearts:     hearts,
		BestStreak: 3,
		Fastest:    2 * time.Second,
		StepTimes:  []time.Duration{2 * time.Second, 12 * time.Second, 25 * time.Second},
		Accuracy:   80,
		Points:     65,
	}
	if completed {
		sum.CompletionXP = session.CompletionXP
	}
	return sum
}

var node = journey.Node{ID: 1, Type: journey.NodeLesson, Title: "Read & Trace", Chapter: 1}

func TestSummaryScreen_Title(t *testing.T) {
	if got := New(node, testSummary(true), nil, Options{}).Title(); got != "Lesson Complete" {
		t.Errorf("Title = %q, want %q", got, "Lesson Complete")
	}
	if got := New(node, testSummary(false), nil, Options{}).Title(); got != "Try Again" {
		t.Errorf("Title = %q, want %q", got, "Try Again")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	notices := []notify.Event{
		{Kind: notify.EventXP, Points: 50},
		{Kind: notify.EventAchievement, Icon: "📚", Title: "Lesson Complete", Desc: "5 exercises finished!"},
	}
	view := New(node, testSummary(true), notices, Options{}).View(100, 40)

	for _, want := range []string{"Lesson Complete!", "+115", "80%", "4/5", "🔥 3", "⚡ 2.0s", "TIME PER QUESTION", "5 exercises finished!"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_FailedHidesStars(t *testing.T) {
	view := New(node, testSummary(false), nil, Options{}).View(100, 40)
	if !strings.Contains(view, "Try Again!") {
		t.Error("expected failed title")
	}
	if strings.Contains(view, "★") {
		t.Error("failed attempt should not show stars")
	}
}

func TestSummaryScreen_EnterRecordsLesson(t *testing.T) {
	svc := testService(t)
	s := New(node, testSummary(true), nil, Options{Service: svc})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected record command")
	}
	msg, ok := cmd().(recordedMsg)
	if !ok {
		t.Fatalf("expected recordedMsg, got %T", msg)
	}
	if msg.err != nil {
		t.Fatalf("record: %v", msg.err)
	}
	if !msg.record.Saved || msg.record.Unlocked != 2 {
		t.Errorf("record = %+v, want saved with node 2 unlocked", msg.record)
	}
	if got := svc.Progress()[1].Status; got != journey.StatusCompleted {
		t.Errorf("node 1 status = %q, want completed", got)
	}
	if got := svc.Stats().DailyXP; got != 115 {
		t.Errorf("DailyXP = %d, want 115", got)
	}

	// Further keys are ignored while recording.
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command while recording")
	}

	if _, cmd := s.Update(msg); cmd == nil {
		t.Error("expected pop and done commands")
	}
}

func TestSummaryScreen_FailedRecordsNothing(t *testing.T) {
	svc := testService(t)
	s := New(node, testSummary(false), nil, Options{Service: svc})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	msg := cmd().(recordedMsg)
	if msg.record.Saved {
		t.Error("failed attempt should not be saved")
	}
	if got := svc.Progress()[1].Status; got != journey.StatusActive {
		t.Errorf("node 1 status = %q, want active", got)
	}
}

func TestSummaryScreen_Retry(t *testing.T) {
	retried := New(node, testSummary(true), nil, Options{})
	s := New(node, testSummary(false), nil, Options{
		Retry: func() screen.Screen { return retried },
	})

	hints := s.KeyHints()
	if len(hints) != 2 || hints[1].Key != "r" {
		t.Fatalf("hints = %+v, want Enter and r", hints)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected replace command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen != retried {
		t.Errorf("got %#v, want ReplaceScreenMsg with retry screen", msg)
	}
}

func TestSummaryScreen_NoRetryAfterCompletion(t *testing.T) {
	s := New(node, testSummary(true), nil, Options{
		Retry: func() screen.Screen { return nil },
	})
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Error("completed lesson should not offer retry")
	}
	if len(s.KeyHints()) != 1 {
		t.Errorf("hints = %+v, want only Enter", s.KeyHints())
	}
}

func TestTimeChart(t *testing.T) {
	chart := timeChart([]time.Duration{0, 15 * time.Second, 30 * time.Second})
	for _, want := range []string{"▁", "█"} {
		if !strings.Contains(chart, want) {
			t.Errorf("chart %q missing %q", chart, want)
		}
	}
}
