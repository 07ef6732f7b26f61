package di

import (
	"fmt"

	"github.com/aristath/riskdesk/internal/config"
	"github.com/aristath/riskdesk/internal/scheduler"
	"github.com/rs/zerolog"
)

// WALCheckpointSchedule runs the checkpoint at the top of every hour.
const WALCheckpointSchedule = "0 0 * * * *"

// RegisterJobs creates the scheduler and registers all jobs.
// The report job is only scheduled when cfg.ReportSchedule is set.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	if container == nil || container.RiskService == nil {
		return nil, fmt.Errorf("services must be initialized before jobs")
	}

	container.Scheduler = scheduler.New(log)

	instances := &JobInstances{
		RiskReport:    scheduler.NewRiskReportJob(container.RiskService, container.Exporter, log),
		WALCheckpoint: scheduler.NewWALCheckpointJob(log, container.Databases()...),
	}

	if cfg.ReportSchedule != "" {
		if err := container.Scheduler.AddJob(cfg.ReportSchedule, instances.RiskReport); err != nil {
			return nil, fmt.Errorf("failed to register risk report job: %w", err)
		}
	}

	if err := container.Scheduler.AddJob(WALCheckpointSchedule, instances.WALCheckpoint); err != nil {
		return nil, fmt.Errorf("failed to register WAL checkpoint job: %w", err)
	}

	return instances, nil
}
