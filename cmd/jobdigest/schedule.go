package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobdigest/internal/scheduler"
)

var (
	cronSpec string
	timezone string
	runNow   bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the search digest on a cron schedule",
	Long: "Stays in the foreground and performs one independent search run at " +
		"every cron activation, until interrupted. Use this where no external " +
		"scheduler is available.",
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&cronSpec, "cron", "0 9 * * *", "five-field cron expression")
	scheduleCmd.Flags().StringVar(&timezone, "timezone", "Asia/Kolkata", "IANA timezone the cron expression is evaluated in")
	scheduleCmd.Flags().BoolVar(&runNow, "run-now", false, "perform one run immediately on startup")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	// Fail fast on credentials and config so a broken setup does not wait
	// for the first activation to surface.
	if _, err := buildSearchPipeline(); err != nil {
		return err
	}

	job := func(ctx context.Context) error {
		// Rebuild per run so edits to the queries file apply to the next run.
		p, err := buildSearchPipeline()
		if err != nil {
			return err
		}
		summary, err := p.Run(ctx)
		if err != nil {
			return err
		}
		logger.Info("digest sent", "unique_results", summary.Hits, "failed_queries", summary.Failures)
		return nil
	}

	var opts []scheduler.Option
	if runNow {
		opts = append(opts, scheduler.WithImmediateRun())
	}
	sched, err := scheduler.NewScheduler(cronSpec, timezone, job, logger, opts...)
	if err != nil {
		return err
	}

	if err := sched.Run(cmd.Context()); err != nil {
		return err
	}
	logger.Info("goodbye")
	return nil
}
