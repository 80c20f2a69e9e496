package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rheo/rheo/internal/config"
	"github.com/rheo/rheo/internal/content"
	"github.com/rheo/rheo/internal/exercise"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect lesson content packs",
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a content pack (defaults to RHEO_CONTENT or the built-in pack)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else if cfg, err := config.Load(); err == nil {
			path = cfg.ContentPath
		}

		catalog, err := loadCatalog(path)
		if err != nil {
			return err
		}
		printCatalog(cmd.OutOrStdout(), catalog)
		return nil
	},
}

func init() {
	contentCmd.AddCommand(contentValidateCmd)
}

func printCatalog(w io.Writer, c *content.Catalog) {
	fmt.Fprintf(w, "Pack %s is valid\n\n", c.Version)
	for _, l := range c.Languages {
		counts := c.Count(l.ID)
		total := 0
		for _, n := range counts {
			total += n
		}

		fmt.Fprintf(w, "%-12s %3d lessons  %4d exercises\n", l.Name, len(c.Nodes(l.ID)), total)
		for _, k := range exercise.AllKinds() {
			if counts[k] > 0 {
				fmt.Fprintf(w, "  %-14s %d\n", k.DisplayName(), counts[k])
			}
		}
	}
}
