package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobdigest/internal/dedup"
	"github.com/amishk599/jobdigest/internal/pipeline"
	"github.com/amishk599/jobdigest/internal/preview"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Search once and print results, no email",
	Long:  "Runs every query, drops duplicate links and prints the digest rows in the terminal. Sends no mail and needs no credentials.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Info("check mode: nothing will be sent")

	// Collect never notifies, so no notifier or addresses are needed.
	p := pipeline.NewSearchPipeline(cfg.BuildQueries(), newSearcher(), nil, "", "", logger)
	results, err := p.Collect(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), preview.Render(dedup.Results(results)))
	return nil
}
