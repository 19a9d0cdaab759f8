package commands

import (
	"context"
	"log/slog"
	"minicrossword/lib/chrono"
	"minicrossword/lib/serviceutil"
	"minicrossword/lib/telemetry"
	"time"

	"github.com/spf13/cobra"
)

const scrapeTimeout = time.Minute * 2

func newWatchCmd(a *app) *cobra.Command {
	var flags scrapeFlags
	var schedule string
	var now bool

	cmd := &cobra.Command{
		Use:   "watch [--schedule <cron>] [--now]",
		Short: "Scrapes the puzzle on a schedule until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if schedule == "" {
				schedule = a.cfg.WatchSchedule
			}
			err := chrono.ValidateSpec(schedule)
			if err != nil {
				return err
			}

			ctx, cancel := serviceutil.SignalContext(cmd.Context())
			defer cancel()

			err = telemetry.InstrumentPerfStats(ctx, time.Second*30)
			if err != nil {
				return err
			}

			run := func() {
				runCtx, cancel := context.WithTimeout(ctx, scrapeTimeout)
				defer cancel()
				// flags.date stays empty so each run files the puzzle under the day it ran on
				_, err := a.scrape(runCtx, flags)
				if err != nil {
					slog.ErrorContext(runCtx, "scheduled scrape failed", "err", err)
				}
			}

			cronner := a.newCron()
			err = cronner.Cron(schedule, run)
			if err != nil {
				<-cronner.Stop().Done()
				return err
			}
			slog.InfoContext(ctx, "watching for new puzzles", "schedule", schedule)

			if now {
				run()
			}

			<-ctx.Done()
			slog.InfoContext(ctx, "stopping watch, waiting for running scrapes")
			<-cronner.Stop().Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&schedule, "schedule", "", "A cron expression (New York time), defaults to the configured watch_schedule.")
	cmd.Flags().BoolVar(&now, "now", false, "Also scrape once immediately.")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "The file to write clues to on every run.")
	cmd.Flags().StringVar(&flags.archive, "archive", "", "The sqlite archive to record each puzzle in.")
	return cmd
}
