package cli

import (
	"github.com/spf13/cobra"
)

var proofsCmd = &cobra.Command{
	Use:   "proofs",
	Short: "List proofs",
	Args:  cobra.NoArgs,
	RunE:  runProofs,
}

var proofCmd = &cobra.Command{
	Use:   "proof <benchmark-id>",
	Short: "Show the proof of a benchmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runProof,
}

func init() {
	rootCmd.AddCommand(proofsCmd, proofCmd)
}

func runProofs(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	count := app.pageSize()

	p := app.svc.Proofs(cmd.Context(), pageNum, count)
	if len(p.Data) == 0 {
		renderEmpty(out, "proofs")
		return nil
	}
	renderProofs(out, p.Data)
	renderPageFooter(out, pageNum, count, p.Total)
	return nil
}

func runProof(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	p, err := app.svc.GetProof(cmd.Context(), args[0])
	if err != nil {
		renderError(out, "proof", err)
		return shown(err)
	}
	state, _ := app.svc.GetProofState(cmd.Context(), p.BenchmarkID)
	renderProof(out, p, state)
	return nil
}
