package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rheo/rheo/internal/journey"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Claim today's daily reward",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		xp, err := e.service.ClaimDaily(cmd.Context())
		if errors.Is(err, journey.ErrDailyClaimed) {
			fmt.Fprintln(cmd.OutOrStdout(), "Already claimed today. Come back tomorrow!")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🎉 +%d XP · %d XP today\n", xp, e.service.Stats().DailyXP)
		return nil
	},
}
