package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobdigest/internal/adapter"
	"github.com/amishk599/jobdigest/internal/config"
	"github.com/amishk599/jobdigest/internal/model"
	"github.com/amishk599/jobdigest/internal/notifier"
	"github.com/amishk599/jobdigest/internal/observability/otelx"
)

var (
	cfgPath string
	debug   bool
	envFile string
	dryRun  bool

	logger       *slog.Logger
	otelShutdown func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "jobdigest",
	Short: "Daily entry-level job digest by email",
	Long: "jobdigest runs a fixed list of web searches, removes duplicate listings " +
		"and emails the results as one HTML digest. The feeds command mails a " +
		"list built from job RSS feeds instead.",
	SilenceUsage:  true,
	SilenceErrors: true,
	// `jobdigest` with no subcommand performs one search run, so a cron entry
	// can invoke the binary directly.
	RunE: runSearch,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = setupLogger(debug)
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
		otelCfg := config.LoadOTel()
		otelCfg.ServiceVersion = version
		shutdown, err := otelx.Init(cmd.Context(), logger, otelCfg)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		otelShutdown = shutdown
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to queries file (default: JOBDIGEST_CONFIG env var or ./queries.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment (missing file is ignored)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "build the email but log it instead of sending")
}

// loadConfig resolves the queries path and parses it.
// Priority: explicit path arg > JOBDIGEST_CONFIG env var > "./queries.yaml"
func loadConfig(path string) (*config.SearchConfig, error) {
	if path == "" {
		if env := os.Getenv("JOBDIGEST_CONFIG"); env != "" {
			path = env
		} else {
			path = "queries.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// setupNotifier returns the SMTP notifier for env, or a log notifier when
// --dry-run is set.
func setupNotifier(env config.MailEnv) model.Notifier {
	if dryRun {
		logger.Info("dry-run mode: messages will be logged, not sent")
		return notifier.NewLogNotifier(logger)
	}
	return notifier.NewEmailNotifier(env.User, env.Password, logger)
}

// searchMailEnv reads the search pipeline's credentials. A dry run needs none.
func searchMailEnv() (config.MailEnv, error) {
	env, err := config.LoadSearchMail()
	if err != nil && dryRun {
		return config.MailEnv{
			Recipient: os.Getenv(config.EnvRecipientEmail),
			User:      os.Getenv(config.EnvGmailUser),
		}, nil
	}
	return env, err
}

func newSearcher() model.Searcher {
	return adapter.NewDuckDuckGoAdapter(newHTTPClient())
}
