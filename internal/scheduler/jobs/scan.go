package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/edgewatch/backend/internal/scan"
	"github.com/edgewatch/backend/pkg/logger"
)

// ScanJob runs one scanner variant on a cron schedule. A quiet run is
// success for scheduling purposes: nothing qualified, nothing broke,
// and the retry loop must not hammer the data providers.
type ScanJob struct {
	scanner  *scan.Scanner
	params   scan.Params
	name     string
	schedule string
	logger   *logger.Logger
}

// NewScanJob creates a scheduled scan. Scheduled runs always post.
func NewScanJob(name, schedule string, scanner *scan.Scanner, params scan.Params, log *logger.Logger) *ScanJob {
	params.Post = true
	return &ScanJob{
		scanner:  scanner,
		params:   params,
		name:     name,
		schedule: schedule,
		logger:   log,
	}
}

func (j *ScanJob) Name() string     { return j.name }
func (j *ScanJob) Schedule() string { return j.schedule }

// Run executes the scan.
func (j *ScanJob) Run(ctx context.Context) error {
	report, err := j.scanner.Run(ctx, j.params)
	if errors.Is(err, scan.ErrNothingNew) {
		j.logger.WithField("job", j.name).Info("Scan found nothing new")
		return nil
	}
	if err != nil {
		return fmt.Errorf("scheduled scan %s failed: %w", j.name, err)
	}

	j.logger.WithFields(map[string]interface{}{
		"job":       j.name,
		"qualified": report.Qualified,
	}).Info("Scheduled scan alerted")

	return nil
}
