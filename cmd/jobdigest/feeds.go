package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobdigest/internal/adapter"
	"github.com/amishk599/jobdigest/internal/config"
	"github.com/amishk599/jobdigest/internal/model"
	"github.com/amishk599/jobdigest/internal/pipeline"
)

var feedsPath string

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Email the current items of the job feeds",
	Long: "Fetches every configured feed in order and emails one list of all items. " +
		"A feed that fails is logged and skipped. Without --feeds the built-in " +
		"LinkedIn feeds are used.",
	RunE: runFeeds,
}

func init() {
	feedsCmd.Flags().StringVar(&feedsPath, "feeds", "", "path to feeds YAML file (default: built-in feed list)")
	rootCmd.AddCommand(feedsCmd)
}

func runFeeds(cmd *cobra.Command, args []string) error {
	feeds, err := config.LoadFeeds(feedsPath)
	if err != nil {
		return fmt.Errorf("load feeds: %w", err)
	}
	logger.Info("feeds loaded", "feeds", len(feeds))

	httpClient := newHTTPClient()
	fetchers := map[string]model.FeedFetcher{
		config.FeedFormatRSS2JSON: adapter.NewRSS2JSONAdapter(httpClient),
		config.FeedFormatRSS:      adapter.NewRSSAdapter(httpClient),
	}

	env := config.LoadFeedMail()
	p := pipeline.NewFeedPipeline(feeds, fetchers, setupNotifier(env), env.User, env.Recipient, logger)

	n, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Sent %d feed items.\n", n)
	return nil
}
