package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/edgewatch/backend/internal/scan"
	"github.com/edgewatch/backend/internal/scheduler"
	"github.com/edgewatch/backend/internal/scheduler/jobs"
	"github.com/edgewatch/backend/pkg/config"
	"github.com/edgewatch/backend/pkg/logger"
)

var (
	atmSchedule      string
	shelfSchedule    string
	momentumSchedule string
)

// scheduleCmd runs the scanners on cron schedules.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run all scan variants on cron schedules",
	Long: `Runs the scanners continuously on cron schedules. Scheduled
runs always post and record cooldowns.

Schedules use six fields with a leading seconds position, after US
market close by default.

Example:
  go run ./cmd/edgewatch schedule
  go run ./cmd/edgewatch schedule --atm-schedule "0 30 21 * * 1-5"`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().StringVar(&atmSchedule, "atm-schedule", "0 30 21 * * 1-5", "cron schedule for the atm scan")
	scheduleCmd.Flags().StringVar(&shelfSchedule, "shelf-schedule", "0 0 22 * * 1-5", "cron schedule for the shelf scan")
	scheduleCmd.Flags().StringVar(&momentumSchedule, "momentum-schedule", "0 30 22 * * 1-5", "cron schedule for the momentum scan")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	ctx := context.Background()

	sched := scheduler.New(log)

	variants := []struct {
		variant  scan.Variant
		schedule string
	}{
		{scan.ATM{}, atmSchedule},
		{scan.Shelf{}, shelfSchedule},
		{scan.Momentum{}, momentumSchedule},
	}

	for _, v := range variants {
		params := scan.DefaultParams(cfg)

		scanner, cleanup, err := newScanner(ctx, v.variant, params, cfg, log)
		defer cleanup()
		if err != nil {
			return fmt.Errorf("wire %s scanner: %w", v.variant.Name(), err)
		}

		job := jobs.NewScanJob(v.variant.Name()+"-scan", v.schedule, scanner, params, log)
		if err := sched.AddJob(job); err != nil {
			return err
		}
	}

	sched.Start()
	fmt.Println("Scheduler running, press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()

	for name, stats := range sched.Stats() {
		log.WithFields(map[string]interface{}{
			"job":          name,
			"runs":         stats.TotalRuns,
			"success_rate": stats.SuccessRate,
		}).Info("Job summary")
	}

	return nil
}
