package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		events := e.store.EventRepo()
		totals, err := events.Totals(ctx)
		if err != nil {
			return fmt.Errorf("load totals: %w", err)
		}
		recent, err := events.RecentSessions(ctx, limit)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}

		w := cmd.OutOrStdout()
		printStats(w, e.service.Stats(), e.service.Progress(), len(e.service.Path().Nodes), totals)
		printSessions(w, e.service.Path(), recent)
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent lessons to show")
}

func printStats(w io.Writer, st journey.Stats, progress journey.Progress, nodes int, totals store.Totals) {
	completed, stars := progress.Counts()
	shield := "no"
	if st.StreakShield {
		shield = "yes"
	}

	fmt.Fprintf(w, "%-16s %d/%d\n", "Lessons", completed, nodes)
	fmt.Fprintf(w, "%-16s %d\n", "Stars", stars)
	fmt.Fprintf(w, "%-16s %d (%dx XP)\n", "Streak", st.Streak, journey.StreakMultiplier(st.Streak).Factor)
	fmt.Fprintf(w, "%-16s %s\n", "Streak shield", shield)
	fmt.Fprintf(w, "%-16s %d\n", "Gems", st.Gems)
	fmt.Fprintf(w, "%-16s %d\n", "Energy", st.Energy)
	fmt.Fprintf(w, "%-16s %d\n", "XP today", st.DailyXP)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-16s %d (%d completed)\n", "Attempts", totals.Sessions, totals.Completed)
	fmt.Fprintf(w, "%-16s %d (%.0f%% correct)\n", "Answers", totals.Answers, totals.Accuracy()*100)
	fmt.Fprintf(w, "%-16s %d\n", "Points", totals.Points)
}

func printSessions(w io.Writer, path journey.Path, recent []store.SessionRecord) {
	fmt.Fprintln(w)
	if len(recent) == 0 {
		fmt.Fprintln(w, "No lessons played yet.")
		return
	}

	fmt.Fprintf(w, "%-16s  %-28s  %-9s  %-5s  %7s  %6s  %8s\n",
		"When", "Lesson", "Result", "Stars", "Correct", "Points", "Time")
	fmt.Fprintln(w, strings.Repeat("─", 92))

	for _, r := range recent {
		title := fmt.Sprintf("Node %d", r.NodeID)
		if n, ok := path.Node(r.NodeID); ok {
			title = n.Title
		}
		fmt.Fprintf(w, "%-16s  %-28s  %-9s  %-5d  %3d/%-3d  %6d  %8s\n",
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			title,
			sessionResult(r.SessionEventData),
			r.Stars,
			r.Correct, r.Total,
			r.Points,
			r.Duration.Round(time.Second),
		)
	}
}

func sessionResult(d store.SessionEventData) string {
	switch {
	case d.Action == store.ActionAbandon:
		return "quit"
	case d.Completed:
		return "complete"
	}
	return "failed"
}
