package risk

import (
	"time"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/aristath/riskdesk/pkg/formulas"
)

// RiskReport is the result of one analysis run. Profiles follow holdings order.
type RiskReport struct {
	RunID       string
	GeneratedAt time.Time
	Config      Config
	Holdings    []domain.Holding
	Profiles    []AssetRiskProfile
	Labels      map[string]AssetLabels
	Rankings    map[MetricName][]string
	Highlights  Highlights
	// Portfolio is nil when no holding has both value and returns.
	Portfolio *PortfolioRisk
}

// PortfolioRisk is the risk of the value-weighted combination of holdings.
type PortfolioRisk struct {
	Weights               map[string]float64
	Observations          int
	BenchmarkObservations int

	Volatility  formulas.Metric
	Beta        formulas.Metric
	VaR         formulas.Metric
	Sharpe      formulas.Metric
	MaxDrawdown formulas.Metric
}

// Metric returns the named portfolio metric.
func (p *PortfolioRisk) Metric(name MetricName) formulas.Metric {
	return AssetRiskProfile{
		Volatility:  p.Volatility,
		Beta:        p.Beta,
		VaR:         p.VaR,
		Sharpe:      p.Sharpe,
		MaxDrawdown: p.MaxDrawdown,
	}.Metric(name)
}

// Extreme names the symbol holding an extreme value of a metric.
type Extreme struct {
	Symbol string  `json:"symbol" msgpack:"symbol"`
	Value  float64 `json:"value" msgpack:"value"`
}

// Highlights are the extremes called out at the end of a report.
type Highlights struct {
	HighestVolatility *Extreme `json:"highest_volatility,omitempty" msgpack:"highest_volatility,omitempty"`
	LowestVolatility  *Extreme `json:"lowest_volatility,omitempty" msgpack:"lowest_volatility,omitempty"`
	BestSharpe        *Extreme `json:"best_sharpe,omitempty" msgpack:"best_sharpe,omitempty"`
	WorstSharpe       *Extreme `json:"worst_sharpe,omitempty" msgpack:"worst_sharpe,omitempty"`
	LargestDrawdown   *Extreme `json:"largest_drawdown,omitempty" msgpack:"largest_drawdown,omitempty"`
	SmallestDrawdown  *Extreme `json:"smallest_drawdown,omitempty" msgpack:"smallest_drawdown,omitempty"`
}

// NewHighlights picks the first and last entries of the relevant rankings.
func NewHighlights(profiles []AssetRiskProfile, rankings map[MetricName][]string) Highlights {
	bySymbol := make(map[string]AssetRiskProfile, len(profiles))
	for _, p := range profiles {
		bySymbol[p.Symbol] = p
	}

	pick := func(metric MetricName, last bool) *Extreme {
		ranked := rankings[metric]
		if len(ranked) == 0 {
			return nil
		}
		sym := ranked[0]
		if last {
			sym = ranked[len(ranked)-1]
		}
		v, _ := bySymbol[sym].Metric(metric).Value()
		return &Extreme{Symbol: sym, Value: v}
	}

	return Highlights{
		LowestVolatility:  pick(MetricVolatility, false),
		HighestVolatility: pick(MetricVolatility, true),
		BestSharpe:        pick(MetricSharpe, false),
		WorstSharpe:       pick(MetricSharpe, true),
		SmallestDrawdown:  pick(MetricMaxDrawdown, false),
		LargestDrawdown:   pick(MetricMaxDrawdown, true),
	}
}

// Profile looks up a profile by symbol.
func (r *RiskReport) Profile(symbol string) (AssetRiskProfile, bool) {
	symbol = domain.NormalizeSymbol(symbol)
	for _, p := range r.Profiles {
		if p.Symbol == symbol {
			return p, true
		}
	}
	return AssetRiskProfile{}, false
}

// Ranking returns the ranking for one metric.
func (r *RiskReport) Ranking(metric MetricName) []string {
	return r.Rankings[metric]
}

// UnavailableCount counts unavailable metric cells across all profiles.
func (r *RiskReport) UnavailableCount() int {
	n := 0
	for _, p := range r.Profiles {
		n += p.UnavailableCount()
	}
	return n
}

// MissingSymbols lists holdings that had no price history.
func (r *RiskReport) MissingSymbols() []string {
	var out []string
	for _, p := range r.Profiles {
		if p.Missing {
			out = append(out, p.Symbol)
		}
	}
	return out
}
