package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCode bool

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List algorithms",
	Args:  cobra.NoArgs,
	RunE:  runAlgorithms,
}

var algorithmCmd = &cobra.Command{
	Use:   "algorithm <id>",
	Short: "Show an algorithm",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlgorithm,
}

func init() {
	algorithmCmd.Flags().BoolVar(&showCode, "code", false, "print the submitted source code")
	rootCmd.AddCommand(algorithmsCmd, algorithmCmd)
}

func runAlgorithms(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	count := app.pageSize()

	p := app.svc.Algorithms(cmd.Context(), pageNum, count)
	if len(p.Data) == 0 {
		renderEmpty(out, "algorithms")
		return nil
	}
	renderAlgorithms(out, p.Data)
	renderPageFooter(out, pageNum, count, p.Total)
	return nil
}

func runAlgorithm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, err := app.svc.GetAlgorithm(ctx, args[0])
	if err != nil {
		renderError(out, "algorithm", err)
		return shown(err)
	}
	state, _ := app.svc.GetAlgorithmState(ctx, a.ID)
	renderAlgorithm(out, a, state)

	if !showCode {
		return nil
	}
	data, err := app.svc.GetAlgorithmData(ctx, a.ID)
	if err != nil {
		renderError(out, "algorithm code", err)
		return shown(err)
	}
	_, _ = fmt.Fprintf(out, "\n%s\n", data.Code)
	return nil
}
