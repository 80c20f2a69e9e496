package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rheo/rheo/internal/journey"
)

var journeyCmd = &cobra.Command{
	Use:   "journey",
	Short: "Print the journey path with progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		printJourney(cmd.OutOrStdout(), e.service.Path(), e.service.Progress())
		return nil
	},
}

func printJourney(w io.Writer, path journey.Path, progress journey.Progress) {
	chapter := 0
	for _, n := range path.Nodes {
		if n.Chapter != chapter {
			chapter = n.Chapter
			if chapter > 1 {
				fmt.Fprintln(w)
			}
			name := fmt.Sprintf("Chapter %d", chapter)
			if c, ok := path.Chapter(chapter); ok {
				name = c.Name
			}
			fmt.Fprintf(w, "CHAPTER %d · %s\n", chapter, strings.ToUpper(name))
		}

		st := progress[n.ID]
		fmt.Fprintf(w, "  %3d  %-28s  %-10s  %-9s  %s\n",
			n.ID, n.Title, n.Type, st.Status, starText(st))
	}

	completed, stars := progress.Counts()
	fmt.Fprintf(w, "\n%d/%d lessons · %d stars\n", completed, len(path.Nodes), stars)
}

func starText(st journey.NodeState) string {
	if st.Status != journey.StatusCompleted {
		return ""
	}
	return strings.Repeat("★", st.Stars) + strings.Repeat("☆", 3-st.Stars)
}
