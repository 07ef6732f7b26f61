package risk

import (
	"github.com/aristath/riskdesk/pkg/formulas"
)

// AssetRiskProfile holds the five metrics of one holding.
type AssetRiskProfile struct {
	Symbol string
	// Weight is current value over total portfolio value; 0 when unknown.
	Weight float64
	// Observations is the number of returns the asset metrics used.
	Observations int
	// BenchmarkObservations is the number of aligned returns beta used.
	BenchmarkObservations int
	Missing               bool

	Volatility  formulas.Metric
	Beta        formulas.Metric
	VaR         formulas.Metric
	Sharpe      formulas.Metric
	MaxDrawdown formulas.Metric
}

// Metric returns the named metric.
func (p AssetRiskProfile) Metric(name MetricName) formulas.Metric {
	switch name {
	case MetricVolatility:
		return p.Volatility
	case MetricBeta:
		return p.Beta
	case MetricVaR:
		return p.VaR
	case MetricSharpe:
		return p.Sharpe
	case MetricMaxDrawdown:
		return p.MaxDrawdown
	}
	return formulas.Unavailable(formulas.ReasonInsufficientData)
}

// UnavailableCount counts metrics without a value.
func (p AssetRiskProfile) UnavailableCount() int {
	n := 0
	for _, name := range AllMetrics {
		if !p.Metric(name).IsAvailable() {
			n++
		}
	}
	return n
}

func missingProfile(symbol string) AssetRiskProfile {
	m := formulas.Unavailable(formulas.ReasonMissingSymbol)
	return AssetRiskProfile{
		Symbol:      symbol,
		Missing:     true,
		Volatility:  m,
		Beta:        m,
		VaR:         m,
		Sharpe:      m,
		MaxDrawdown: m,
	}
}
