package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/riskdesk/internal/exporter"
	"github.com/aristath/riskdesk/internal/modules/risk"
	"github.com/rs/zerolog"
)

// DefaultJobTimeout bounds one scheduled analysis run including export.
const DefaultJobTimeout = 5 * time.Minute

// RiskReportJob refreshes the risk report and exports it when an exporter is set.
type RiskReportJob struct {
	service  risk.ServiceInterface
	exporter exporter.Exporter
	timeout  time.Duration
	log      zerolog.Logger
}

// NewRiskReportJob creates the job. exp may be nil.
func NewRiskReportJob(service risk.ServiceInterface, exp exporter.Exporter, log zerolog.Logger) *RiskReportJob {
	return &RiskReportJob{
		service:  service,
		exporter: exp,
		timeout:  DefaultJobTimeout,
		log:      log.With().Str("job", "risk_report").Logger(),
	}
}

// Name returns the job name
func (j *RiskReportJob) Name() string {
	return "risk_report"
}

// Run executes one analysis run and the optional export.
func (j *RiskReportJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	report, err := j.service.Run(ctx)
	if err != nil {
		return fmt.Errorf("risk analysis failed: %w", err)
	}

	if j.exporter == nil {
		return nil
	}

	key, err := j.exporter.Export(ctx, report)
	if err != nil {
		return fmt.Errorf("risk report export failed: %w", err)
	}

	j.log.Info().Str("run_id", report.RunID).Str("key", key).Msg("Scheduled risk report exported")
	return nil
}
