package di

import (
	"context"
	"testing"

	"github.com/aristath/riskdesk/internal/config"
	"github.com/aristath/riskdesk/internal/modules/risk"
	testingpkg "github.com/aristath/riskdesk/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		DataDir: t.TempDir(),
		Port:    8010,
		Risk: config.RiskConfig{
			RiskFreeRate:  0.02,
			VaRConfidence: 0.05,
			Benchmark:     "SPY",
			TradingDays:   252,
			LookbackDays:  252,
		},
	}
}

func TestWire(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReportSchedule = "0 0 6 * * *"

	container, jobs, err := Wire(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	assert.NotNil(t, container.HistoryStore)
	assert.NotNil(t, container.HoldingsRepo)
	assert.NotNil(t, container.Assessor)
	assert.NotNil(t, container.RiskService)
	assert.NotNil(t, container.Scheduler)
	assert.Nil(t, container.Exporter)

	require.NotNil(t, jobs)
	assert.Equal(t, "risk_report", jobs.RiskReport.Name())
	assert.Equal(t, "wal_checkpoint", jobs.WALCheckpoint.Name())
	assert.Equal(t, "SPY", container.Assessor.Config().Benchmark)
}

func TestWire_EndToEnd(t *testing.T) {
	container, _, err := Wire(context.Background(), testConfig(t), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	ctx := context.Background()

	// Nothing stored yet
	_, err = container.RiskService.Run(ctx)
	assert.ErrorIs(t, err, risk.ErrNoHoldings)

	require.NoError(t, container.HoldingsRepo.ReplaceAll(ctx, testingpkg.NewHoldingFixtures()))

	_, err = container.RiskService.Run(ctx)
	assert.ErrorIs(t, err, risk.ErrEmptyHistory)

	for symbol, points := range testingpkg.NewPriceFixtures() {
		require.NoError(t, container.HistoryStore.SyncHistoricalPrices(ctx, symbol, "test", points))
	}

	report, err := container.RiskService.Run(ctx)
	require.NoError(t, err)
	require.Len(t, report.Profiles, 2)
	for _, p := range report.Profiles {
		assert.False(t, p.Missing, p.Symbol)
		assert.True(t, p.Beta.IsAvailable(), p.Symbol)
	}
	assert.NotNil(t, report.Portfolio)

	latest, ok := container.RiskService.Latest()
	require.True(t, ok)
	assert.Equal(t, report.RunID, latest.RunID)
}

func TestWire_InvalidSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReportSchedule = "not a schedule"

	_, _, err := Wire(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
