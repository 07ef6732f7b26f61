// Package risk assesses per-asset and portfolio risk from price history and
// holdings, then classifies and ranks the results into a RiskReport.
package risk

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/aristath/riskdesk/pkg/formulas"
)

// DefaultBenchmark is the market proxy used for beta.
const DefaultBenchmark = "SPY"

// Config holds the parameters of one analysis run. It is passed explicitly to
// the Assessor; concurrent runs may use different values.
type Config struct {
	RiskFreeRate  float64 `json:"risk_free_rate" msgpack:"risk_free_rate"`
	VaRConfidence float64 `json:"var_confidence" msgpack:"var_confidence"`
	Benchmark     string  `json:"benchmark" msgpack:"benchmark"`
	TradingDays   int     `json:"trading_days" msgpack:"trading_days"`
	// Workers bounds concurrent assessments; 0 means GOMAXPROCS.
	Workers int `json:"-" msgpack:"-"`
}

// DefaultConfig returns a fresh configuration with the conventional defaults.
func DefaultConfig() Config {
	return Config{
		RiskFreeRate:  formulas.DefaultRiskFreeRate,
		VaRConfidence: formulas.DefaultVaRConfidence,
		Benchmark:     DefaultBenchmark,
		TradingDays:   formulas.TradingDaysPerYear,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.VaRConfidence <= 0 || c.VaRConfidence >= 1 {
		errs = append(errs, fmt.Errorf("VaR confidence must be in (0,1), got %v", c.VaRConfidence))
	}
	if c.TradingDays <= 0 {
		errs = append(errs, fmt.Errorf("trading days must be positive, got %d", c.TradingDays))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if strings.TrimSpace(c.Benchmark) == "" {
		errs = append(errs, errors.New("benchmark symbol is required"))
	}
	return errors.Join(errs...)
}

func (c Config) workerCount(jobs int) int {
	n := c.Workers
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}
