package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"

	"github.com/vietddude/tigscan/internal/core/config"
)

var (
	cfgPath     string
	isDebug     bool
	pageNum     int
	pageSize    int
	metricsPort int
)

// app is built before every command runs.
var app *application

var rootCmd = &cobra.Command{
	Use:               "tigscan",
	Short:             "TIG network explorer",
	Long:              `tigscan browses blocks, algorithms, benchmarks, challenges, proofs and players of a TIG explorer API.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if app != nil {
		app.close()
	}
	if err != nil {
		var se errShown
		if !errors.As(err, &se) {
			_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&pageNum, "page", 0, "page to show, starting at 0")
	rootCmd.PersistentFlags().IntVar(&pageSize, "count", 0, "items per page (default from config)")
	rootCmd.PersistentFlags().IntVar(&metricsPort, "metrics-port", 0, "serve /health and /metrics on this port while the command runs")
}

func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		return err
	}

	stylelog.InitDefault(&tint.Options{
		Level:      logLevel(cfg.Logging.Level),
		TimeFormat: time.RFC3339,
	})

	a, err := newApplication(cfg)
	if err != nil {
		slog.Error("Failed to initialize explorer", "error", err)
		return err
	}
	app = a

	port := cfg.Server.Port
	if cmd.Flags().Changed("metrics-port") {
		port = metricsPort
	}
	if port > 0 {
		app.startHealth(port)
	}
	return nil
}

func logLevel(level string) slog.Level {
	if isDebug {
		return slog.LevelDebug
	}
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// errShown marks an error whose panel was already printed.
type errShown struct{ err error }

func (e errShown) Error() string { return e.err.Error() }
func (e errShown) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return errShown{err: err}
}
