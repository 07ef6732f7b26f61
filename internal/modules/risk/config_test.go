package risk

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0.02, cfg.RiskFreeRate)
	assert.Equal(t, 0.05, cfg.VaRConfidence)
	assert.Equal(t, "SPY", cfg.Benchmark)
	assert.Equal(t, 252, cfg.TradingDays)
	assert.NoError(t, cfg.Validate())

	cfg.RiskFreeRate = 0.5
	assert.Equal(t, 0.02, DefaultConfig().RiskFreeRate)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"confidence zero", func(c *Config) { c.VaRConfidence = 0 }},
		{"confidence one", func(c *Config) { c.VaRConfidence = 1 }},
		{"trading days", func(c *Config) { c.TradingDays = 0 }},
		{"workers", func(c *Config) { c.Workers = -1 }},
		{"benchmark", func(c *Config) { c.Benchmark = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_WorkerCount(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1, cfg.workerCount(0))
	assert.Equal(t, min(runtime.GOMAXPROCS(0), 100), cfg.workerCount(100))

	cfg.Workers = 3
	assert.Equal(t, 2, cfg.workerCount(2))
	assert.Equal(t, 3, cfg.workerCount(10))
}

func TestParseMetricName(t *testing.T) {
	for _, s := range []string{"volatility", "Beta", "var", "sharpe_ratio", "max-drawdown"} {
		_, err := ParseMetricName(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseMetricName("sortino")
	assert.Error(t, err)

	assert.True(t, MetricSharpe.HigherIsBetter())
	assert.False(t, MetricVaR.HigherIsBetter())
}
