package cli

import (
	"github.com/spf13/cobra"
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "List benchmarks",
	Args:  cobra.NoArgs,
	RunE:  runBenchmarks,
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark <id>",
	Short: "Show a benchmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runBenchmark,
}

func init() {
	rootCmd.AddCommand(benchmarksCmd, benchmarkCmd)
}

func runBenchmarks(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	count := app.pageSize()

	p := app.svc.Benchmarks(cmd.Context(), pageNum, count)
	if len(p.Data) == 0 {
		renderEmpty(out, "benchmarks")
		return nil
	}
	renderBenchmarks(out, p.Data)
	renderPageFooter(out, pageNum, count, p.Total)
	return nil
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	b, err := app.svc.GetBenchmark(cmd.Context(), args[0])
	if err != nil {
		renderError(out, "benchmark", err)
		return shown(err)
	}
	state, _ := app.svc.GetBenchmarkState(cmd.Context(), b.ID)
	renderBenchmark(out, b, state)
	return nil
}
