package cli

import (
	"github.com/spf13/cobra"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "List blocks, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBlocks,
}

var blockCmd = &cobra.Command{
	Use:   "block <id>",
	Short: "Show a block and its active sets",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlock,
}

func init() {
	rootCmd.AddCommand(blocksCmd, blockCmd)
}

func runBlocks(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	count := app.pageSize()

	p := app.svc.Blocks(cmd.Context(), pageNum, count)
	if len(p.Data) == 0 {
		renderEmpty(out, "blocks")
		return nil
	}
	renderBlocks(out, p.Data)
	renderPageFooter(out, pageNum, count, p.Total)
	return nil
}

func runBlock(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	b, err := app.svc.GetBlock(cmd.Context(), args[0])
	if err != nil {
		renderError(out, "block", err)
		return shown(err)
	}
	renderBlock(out, b, app.svc.FindBlockData(cmd.Context(), b.ID))
	return nil
}
