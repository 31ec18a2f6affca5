package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/tigscan/internal/explorer"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configuration and whether the explorer API is reachable",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	cfg := app.client.Config()

	start := time.Now()
	latest, liveErr := app.svc.LiveLatestBlockID(ctx)
	elapsed := time.Since(start)

	reachable := "yes"
	if liveErr != nil {
		reachable = "no: " + explorer.Describe(liveErr)
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "SETTING\tVALUE")
	_, _ = fmt.Fprintf(w, "config\t%s\n", configSource())
	_, _ = fmt.Fprintf(w, "base url\t%s\n", cfg.BaseURL)
	_, _ = fmt.Fprintf(w, "api version\t%s\n", cfg.APIVersion)
	_, _ = fmt.Fprintf(w, "api key\t%t\n", cfg.APIKey != "")
	_, _ = fmt.Fprintf(w, "timeout\t%s\n", cfg.Timeout)
	_, _ = fmt.Fprintf(w, "attempts\t%d\n", cfg.Retries)
	_, _ = fmt.Fprintf(w, "retry delay\t%s\n", cfg.RetryDelay)
	_, _ = fmt.Fprintf(w, "cache\t%s\n", app.backend)
	_, _ = fmt.Fprintf(w, "reachable\t%s\n", reachable)
	if liveErr == nil {
		_, _ = fmt.Fprintf(w, "latest block\t%s\n", latest)
		_, _ = fmt.Fprintf(w, "round trip\t%s\n", elapsed.Round(time.Millisecond))
	}

	st := app.client.Monitor().Stats()
	_, _ = fmt.Fprintf(w, "client status\t%s\n", st.Status)
	_, _ = fmt.Fprintf(w, "attempts made\t%d\n", st.Requests)
	_, _ = fmt.Fprintf(w, "failures\t%d\n", st.Failures)
	_ = w.Flush()

	if liveErr != nil {
		return shown(liveErr)
	}
	return nil
}

func configSource() string {
	if _, err := os.Stat(cfgPath); err != nil {
		return "defaults"
	}
	return cfgPath
}
