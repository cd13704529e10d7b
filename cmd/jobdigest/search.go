package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobdigest/internal/pipeline"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run every query once and email the digest",
	Long: "One stateless search run: each configured query is searched once, " +
		"duplicate links are dropped, and a single HTML digest is emailed. " +
		"Failed queries appear in the digest as error rows.",
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	p, err := buildSearchPipeline()
	if err != nil {
		return err
	}

	summary, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), sentLine(summary))
	return nil
}

// sentLine is the completion summary. Failed-query rows are in the digest
// but are not counted as results.
func sentLine(s pipeline.Summary) string {
	return fmt.Sprintf("Sent %d unique results.", s.Hits)
}

// buildSearchPipeline checks credentials before doing any work, then loads
// the queries file.
func buildSearchPipeline() (*pipeline.SearchPipeline, error) {
	env, err := searchMailEnv()
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	queries := cfg.BuildQueries()
	logger.Info("config loaded",
		"queries", len(queries),
		"max_per_query", cfg.MaxPerQuery,
		"timelimit", cfg.TimeLimit,
		"region", cfg.Region,
	)

	return pipeline.NewSearchPipeline(queries, newSearcher(), setupNotifier(env), env.User, env.Recipient, logger), nil
}
