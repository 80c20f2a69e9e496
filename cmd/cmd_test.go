package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/session"
	"github.com/rheo/rheo/internal/store"
)

// execute runs the root command with args against a fresh data dir.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func useTempData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	db := filepath.Join(dir, "rheo.db")
	t.Setenv("RHEO_DB", db)
	t.Setenv("RHEO_LOG", filepath.Join(dir, "rheo.log"))
	t.Setenv("RHEO_LANGUAGE", "")
	t.Setenv("RHEO_CONTENT", "")
	return db
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rheo (devel)\n", out)
}

func TestContentValidate_Default(t *testing.T) {
	useTempData(t)
	out, err := execute(t, "content", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Pack v1.0.0 is valid")
	assert.Contains(t, out, "Python")
}

func TestContentValidate_MissingFile(t *testing.T) {
	useTempData(t)
	_, err := execute(t, "content", "validate", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestJourney_FreshLearner(t *testing.T) {
	useTempData(t)
	out, err := execute(t, "journey")
	require.NoError(t, err)
	assert.Contains(t, out, "CHAPTER 1 · BASICS")
	assert.Contains(t, out, "Read & Trace")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "0/42 lessons · 0 stars")
}

func TestReset_RequiresConfirmation(t *testing.T) {
	useTempData(t)
	out, err := execute(t, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "--yes")

	out, err = execute(t, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress reset")
}

func TestStats_Empty(t *testing.T) {
	useTempData(t)
	out, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Energy")
	assert.Contains(t, out, "No lessons played yet.")
}

func TestPrintJourney_ShowsStars(t *testing.T) {
	path := journey.DefaultPath()
	progress, _, err := journey.Complete(journey.Seed(path), path, 1, session.Result{Completed: true, Stars: 2})
	require.NoError(t, err)

	var out bytes.Buffer
	printJourney(&out, path, progress)
	assert.Contains(t, out.String(), "★★☆")
	assert.Contains(t, out.String(), "1/42 lessons · 2 stars")
}

func TestPrintSessions(t *testing.T) {
	path := journey.DefaultPath()
	recent := []store.SessionRecord{
		{
			Timestamp: time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local),
			SessionEventData: store.SessionEventData{
				NodeID: 1, Action: store.ActionEnd, Completed: true,
				Stars: 3, Correct: 5, Total: 5, Points: 100, Duration: 95 * time.Second,
			},
		},
		{
			Timestamp:        time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local),
			SessionEventData: store.SessionEventData{NodeID: 1, Action: store.ActionAbandon, Total: 5},
		},
	}

	var out bytes.Buffer
	printSessions(&out, path, recent)
	s := out.String()
	assert.Contains(t, s, "2026-03-01 09:30")
	assert.Contains(t, s, "complete")
	assert.Contains(t, s, "quit")
	assert.Contains(t, s, "1m35s")
}

func TestSessionResult(t *testing.T) {
	assert.Equal(t, "complete", sessionResult(store.SessionEventData{Action: store.ActionEnd, Completed: true}))
	assert.Equal(t, "failed", sessionResult(store.SessionEventData{Action: store.ActionEnd}))
	assert.Equal(t, "quit", sessionResult(store.SessionEventData{Action: store.ActionAbandon}))
}

func TestLessonFor(t *testing.T) {
	useTempData(t)
	e, err := openEnv(rootCmd)
	require.NoError(t, err)
	defer e.Close()

	node, exercises, err := lessonFor(e, 1)
	require.NoError(t, err)
	assert.Equal(t, "Read & Trace", node.Title)
	assert.NotEmpty(t, exercises)

	_, _, err = lessonFor(e, 2)
	assert.ErrorContains(t, err, "locked")

	_, _, err = lessonFor(e, 999)
	assert.ErrorIs(t, err, journey.ErrUnknownNode)
}

func TestOpenEnv_UnknownLanguage(t *testing.T) {
	useTempData(t)
	t.Setenv("RHEO_LANGUAGE", "cobol")
	_, err := openEnv(rootCmd)
	assert.ErrorContains(t, err, "unknown language")
}

func TestOpenEnv_LoadsSavedProgress(t *testing.T) {
	db := useTempData(t)
	st, err := store.Open(db)
	require.NoError(t, err)
	svc := journey.NewService(st.KVRepo(), journey.DefaultPath(), nil)
	svc.Load(context.Background())
	_, err = svc.RecordLesson(context.Background(), 1, session.Summary{
		Result: session.Result{Completed: true, Stars: 3, CorrectCount: 5, Total: 5},
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	e, err := openEnv(rootCmd)
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, journey.StatusCompleted, e.service.Progress()[1].Status)
}

// withDBFlag runs the root command with --db set, clearing the flag
// afterwards so later tests fall back to RHEO_DB.
func withDBFlag(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set("db", "") })
	return execute(t, append([]string{"--db", db}, args...)...)
}

func TestDBFlagMovesLogNextToDatabase(t *testing.T) {
	useTempData(t)
	t.Setenv("RHEO_LOG", "")
	dir := t.TempDir()

	_, err := withDBFlag(t, filepath.Join(dir, "flag.db"), "journey")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "flag.db"))
	assert.FileExists(t, filepath.Join(dir, "rheo.log"))
}

func TestStoreOpenFailureFlushesLog(t *testing.T) {
	useTempData(t)
	t.Setenv("RHEO_LOG", "")
	dir := t.TempDir()
	// A directory cannot be opened as a database.
	db := filepath.Join(dir, "notafile")
	require.NoError(t, os.Mkdir(db, 0o755))

	_, err := withDBFlag(t, db, "journey")
	require.ErrorContains(t, err, "open store")

	b, err := os.ReadFile(filepath.Join(dir, "rheo.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "open store failed")
}

func TestDaily_OncePerDay(t *testing.T) {
	useTempData(t)
	out, err := execute(t, "daily")
	require.NoError(t, err)
	assert.Contains(t, out, "+50 XP · 50 XP today")

	out, err = execute(t, "daily")
	require.NoError(t, err)
	assert.Contains(t, out, "Already claimed today")

	out, err = execute(t, "stats")
	require.NoError(t, err)
	assert.Regexp(t, `XP today\s+50\n`, out)
}
