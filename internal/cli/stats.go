package cli

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show network statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	st, err := app.svc.GetStats(cmd.Context())
	if err != nil {
		renderError(out, "network stats", err)
		return shown(err)
	}

	var avg *float64
	if v, err := app.svc.AverageBlockTime(cmd.Context()); err == nil {
		avg = &v
	}
	renderStats(out, st, avg)
	return nil
}
