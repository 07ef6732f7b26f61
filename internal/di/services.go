package di

import (
	"context"
	"fmt"

	"github.com/aristath/riskdesk/internal/config"
	"github.com/aristath/riskdesk/internal/exporter"
	"github.com/aristath/riskdesk/internal/metrics"
	"github.com/aristath/riskdesk/internal/modules/risk"
	"github.com/rs/zerolog"
)

// InitializeServices creates the assessor, the risk service and, when configured, the exporter
func InitializeServices(ctx context.Context, container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container.HistoryStore == nil || container.HoldingsRepo == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}

	metrics.InitMetrics()

	assessor, err := risk.NewAssessor(cfg.Risk.ToAnalysisConfig())
	if err != nil {
		return fmt.Errorf("failed to create assessor: %w", err)
	}
	container.Assessor = assessor

	container.RiskService = risk.NewService(
		assessor,
		container.HoldingsRepo,
		container.HistoryStore,
		cfg.Risk.LookbackDays,
		log,
	)

	if cfg.Export.Enabled() {
		s3Exporter, err := exporter.NewS3Exporter(ctx, cfg.Export, log)
		if err != nil {
			return fmt.Errorf("failed to create report exporter: %w", err)
		}
		container.Exporter = s3Exporter
		log.Info().Str("bucket", cfg.Export.Bucket).Msg("Report export enabled")
	}

	return nil
}
