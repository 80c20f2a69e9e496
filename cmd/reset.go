package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset journey progress and stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Fprintln(cmd.OutOrStdout(), "This clears all journey progress, stars and stats. Re-run with --yes to confirm.")
			return nil
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.service.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset. Your journey starts again at node 1.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
