package cli

import (
	"github.com/spf13/cobra"
)

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "List challenges",
	Args:  cobra.NoArgs,
	RunE:  runChallenges,
}

var challengeCmd = &cobra.Command{
	Use:   "challenge <id>",
	Short: "Show a challenge",
	Args:  cobra.ExactArgs(1),
	RunE:  runChallenge,
}

func init() {
	rootCmd.AddCommand(challengesCmd, challengeCmd)
}

func runChallenges(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	count := app.pageSize()

	p := app.svc.Challenges(cmd.Context(), pageNum, count)
	if len(p.Data) == 0 {
		renderEmpty(out, "challenges")
		return nil
	}
	renderChallenges(out, p.Data)
	renderPageFooter(out, pageNum, count, p.Total)
	return nil
}

func runChallenge(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	c, err := app.svc.GetChallenge(cmd.Context(), args[0])
	if err != nil {
		renderError(out, "challenge", err)
		return shown(err)
	}
	state, _ := app.svc.GetChallengeState(cmd.Context(), c.ID)
	renderChallenge(out, c, state)
	return nil
}
