package risk

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/aristath/riskdesk/pkg/formulas"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyHistory is returned when the historical table has no symbols.
	ErrEmptyHistory = errors.New("historical price table is empty")
	// ErrNoHoldings is returned when there is nothing to assess.
	ErrNoHoldings = errors.New("no holdings to assess")
)

// Assessor computes risk profiles for holdings against a benchmark.
// It holds no mutable state and may be shared between goroutines.
type Assessor struct {
	cfg Config
	now func() time.Time
}

// NewAssessor validates cfg and returns an Assessor.
func NewAssessor(cfg Config) (*Assessor, error) {
	cfg.Benchmark = domain.NormalizeSymbol(cfg.Benchmark)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid risk config: %w", err)
	}
	return &Assessor{cfg: cfg, now: time.Now}, nil
}

// Config returns the configuration in use.
func (a *Assessor) Config() Config {
	return a.cfg
}

// Assess builds a complete RiskReport. Only an empty table or an empty
// holdings list fail the run; everything else degrades to unavailable cells.
func (a *Assessor) Assess(holdings []domain.Holding, table domain.HistoricalTable) (*RiskReport, error) {
	if table.Len() == 0 {
		return nil, ErrEmptyHistory
	}
	merged, err := domain.MergeHoldings(holdings)
	if err != nil {
		return nil, fmt.Errorf("invalid holdings: %w", err)
	}
	if len(merged) == 0 {
		return nil, ErrNoHoldings
	}

	var benchmark *domain.ReturnSeries
	if series, ok := table.Get(a.cfg.Benchmark); ok {
		r := series.Returns()
		benchmark = &r
	}

	weights := Weights(merged)
	profiles := make([]AssetRiskProfile, len(merged))
	returns := make([]domain.ReturnSeries, len(merged))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < a.cfg.workerCount(len(merged)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				profiles[i], returns[i] = a.assessSymbol(merged[i].Symbol, table, benchmark)
				profiles[i].Weight = weights[merged[i].Symbol]
			}
		}()
	}
	for i := range merged {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report := &RiskReport{
		RunID:       uuid.NewString(),
		GeneratedAt: a.now().UTC(),
		Config:      a.cfg,
		Holdings:    merged,
		Profiles:    profiles,
	}
	report.Labels = ClassifyAll(profiles)
	report.Rankings = RankAll(profiles)
	report.Highlights = NewHighlights(profiles, report.Rankings)
	report.Portfolio = a.portfolioRisk(merged, weights, returns, benchmark)

	return report, nil
}

// AssessSymbol computes the profile of one symbol. A symbol absent from the
// table yields a profile with every metric marked missing.
func (a *Assessor) AssessSymbol(symbol string, table domain.HistoricalTable) AssetRiskProfile {
	var benchmark *domain.ReturnSeries
	if series, ok := table.Get(a.cfg.Benchmark); ok {
		r := series.Returns()
		benchmark = &r
	}
	profile, _ := a.assessSymbol(domain.NormalizeSymbol(symbol), table, benchmark)
	return profile
}

func (a *Assessor) assessSymbol(symbol string, table domain.HistoricalTable, benchmark *domain.ReturnSeries) (AssetRiskProfile, domain.ReturnSeries) {
	series, ok := table.Get(symbol)
	if !ok {
		return missingProfile(symbol), domain.ReturnSeries{}
	}

	returns := series.Returns()
	profile := a.profileFromReturns(symbol, returns, benchmark)
	return profile, returns
}

func (a *Assessor) profileFromReturns(symbol string, returns domain.ReturnSeries, benchmark *domain.ReturnSeries) AssetRiskProfile {
	values := returns.Values()
	profile := AssetRiskProfile{
		Symbol:       symbol,
		Observations: len(values),
		Volatility:   formulas.AnnualizedVolatility(values, a.cfg.TradingDays),
		VaR:          formulas.HistoricalVaR(values, a.cfg.VaRConfidence),
		Sharpe:       formulas.SharpeRatio(values, a.cfg.RiskFreeRate, a.cfg.TradingDays),
		MaxDrawdown:  formulas.MaxDrawdown(values),
	}

	if benchmark == nil {
		profile.Beta = formulas.Unavailable(formulas.ReasonMissingBenchmark)
		return profile
	}
	asset, bench := domain.AlignReturns(returns, *benchmark)
	profile.BenchmarkObservations = asset.Len()
	profile.Beta = formulas.Beta(asset.Values(), bench.Values())
	return profile
}

// Weights returns current value / total value per symbol. Holdings must be
// merged. An empty map is returned when the total is not positive.
func Weights(holdings []domain.Holding) map[string]float64 {
	out := make(map[string]float64, len(holdings))
	total := domain.TotalValue(holdings)
	if !total.IsPositive() {
		return out
	}
	for _, h := range holdings {
		out[h.Symbol] = h.CurrentValue.Div(total).InexactFloat64()
	}
	return out
}

// portfolioRisk combines the holdings' returns, weighted by value, over the
// dates they all share. Holdings without returns are excluded and the
// remaining weights renormalised.
func (a *Assessor) portfolioRisk(holdings []domain.Holding, weights map[string]float64, returns []domain.ReturnSeries, benchmark *domain.ReturnSeries) *PortfolioRisk {
	if len(weights) == 0 {
		return nil
	}

	var (
		included []domain.ReturnSeries
		symbols  []string
		raw      []decimal.Decimal
	)
	for i, h := range holdings {
		if returns[i].Len() == 0 || !h.CurrentValue.IsPositive() {
			continue
		}
		included = append(included, returns[i])
		symbols = append(symbols, h.Symbol)
		raw = append(raw, h.CurrentValue)
	}
	if len(included) == 0 {
		return nil
	}

	sum := decimal.Sum(raw[0], raw[1:]...)
	effective := make(map[string]float64, len(symbols))
	w := make([]float64, len(symbols))
	for i, v := range raw {
		w[i] = v.Div(sum).InexactFloat64()
		effective[symbols[i]] = w[i]
	}

	aligned := domain.AlignAll(included...)
	dates := aligned[0].Dates()
	combined := make([]float64, len(dates))
	for k, s := range aligned {
		for i, r := range s.Values() {
			combined[i] += w[k] * r
		}
	}

	profile := a.profileFromReturns("PORTFOLIO", domain.NewReturnSeries(dates, combined), benchmark)
	return &PortfolioRisk{
		Weights:               effective,
		Observations:          profile.Observations,
		BenchmarkObservations: profile.BenchmarkObservations,
		Volatility:            profile.Volatility,
		Beta:                  profile.Beta,
		VaR:                   profile.VaR,
		Sharpe:                profile.Sharpe,
		MaxDrawdown:           profile.MaxDrawdown,
	}
}
