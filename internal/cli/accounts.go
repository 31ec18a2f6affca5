package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var leaderboardSize int

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List player accounts at the latest block",
	Args:  cobra.NoArgs,
	RunE:  runAccounts,
}

var accountCmd = &cobra.Command{
	Use:   "account <player-id>",
	Short: "Show a player account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccount,
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the top accounts",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVarP(&leaderboardSize, "top", "n", 10, "number of accounts to show")
	rootCmd.AddCommand(accountsCmd, accountCmd, leaderboardCmd)
}

func runAccounts(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	count := app.pageSize()

	p := app.svc.Accounts(cmd.Context(), pageNum, count)
	if len(p.Data) == 0 {
		renderEmpty(out, "accounts")
		return nil
	}
	renderAccounts(out, p.Data)
	renderPageFooter(out, pageNum, count, p.Total)
	return nil
}

func runAccount(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	a, err := app.svc.GetAccount(cmd.Context(), args[0])
	if err != nil {
		renderError(out, "account", err)
		return shown(err)
	}
	renderAccount(out, a)
	return nil
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	p, err := app.svc.Leaderboard(cmd.Context(), leaderboardSize)
	if err != nil {
		slog.Error("Failed to load leaderboard", "error", err)
	}
	if len(p.Data) == 0 {
		renderEmpty(out, "accounts")
		return nil
	}
	renderLeaderboard(out, p.Data)
	return nil
}
