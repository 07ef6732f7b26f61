package risk

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/aristath/riskdesk/internal/metrics"
	"github.com/aristath/riskdesk/internal/utils"
	"github.com/rs/zerolog"
)

// HoldingsSource provides the current holdings.
type HoldingsSource interface {
	GetAll(ctx context.Context) ([]domain.Holding, error)
}

// PriceSource loads price history for a set of symbols. Symbols without
// history are simply absent from the returned table.
type PriceSource interface {
	LoadTable(ctx context.Context, symbols []string, lookbackDays int) (domain.HistoricalTable, error)
}

// ServiceInterface is what handlers, jobs and the CLI depend on.
type ServiceInterface interface {
	Run(ctx context.Context) (*RiskReport, error)
	Latest() (*RiskReport, bool)
}

// Service loads inputs, runs the Assessor and caches the latest report.
type Service struct {
	assessor     *Assessor
	holdings     HoldingsSource
	prices       PriceSource
	lookbackDays int
	log          zerolog.Logger

	mu     sync.RWMutex
	latest *RiskReport
}

// NewService creates a risk service. lookbackDays limits the price history
// loaded per symbol; 0 loads everything.
func NewService(
	assessor *Assessor,
	holdings HoldingsSource,
	prices PriceSource,
	lookbackDays int,
	log zerolog.Logger,
) *Service {
	return &Service{
		assessor:     assessor,
		holdings:     holdings,
		prices:       prices,
		lookbackDays: lookbackDays,
		log:          log.With().Str("service", "risk").Logger(),
	}
}

// Run performs one analysis run and replaces the cached report on success.
func (s *Service) Run(ctx context.Context) (report *RiskReport, err error) {
	timer := utils.NewTimer("risk_analysis", s.log)
	defer func() {
		duration := timer.Stop()
		metrics.ObserveRun(duration, err)
	}()

	holdings, err := s.holdings.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}
	if len(holdings) == 0 {
		return nil, ErrNoHoldings
	}

	symbols := make([]string, 0, len(holdings)+1)
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}
	symbols = append(symbols, s.assessor.Config().Benchmark)

	table, err := s.prices.LoadTable(ctx, symbols, s.lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}

	report, err = s.assessor.Assess(holdings, table)
	if err != nil {
		if errors.Is(err, ErrEmptyHistory) || errors.Is(err, ErrNoHoldings) {
			s.log.Warn().Err(err).Msg("Risk analysis has no input")
		}
		return nil, err
	}

	for _, sym := range report.MissingSymbols() {
		s.log.Warn().Str("symbol", sym).Msg("No price history for holding")
	}
	if !table.Has(report.Config.Benchmark) {
		s.log.Warn().Str("benchmark", report.Config.Benchmark).Msg("Benchmark missing, beta unavailable")
	}

	metrics.RecordReport(len(report.Profiles), unavailableByMetric(report))

	s.mu.Lock()
	s.latest = report
	s.mu.Unlock()

	s.log.Info().
		Str("run_id", report.RunID).
		Int("assets", len(report.Profiles)).
		Int("unavailable", report.UnavailableCount()).
		Msg("Risk analysis completed")

	return report, nil
}

// AssessSymbol profiles one symbol against the benchmark without touching
// holdings or the cached report. Weight stays zero.
func (s *Service) AssessSymbol(ctx context.Context, symbol string) (AssetRiskProfile, error) {
	symbol = domain.NormalizeSymbol(symbol)
	if symbol == "" {
		return AssetRiskProfile{}, domain.ErrEmptySymbol
	}

	table, err := s.prices.LoadTable(ctx, []string{symbol, s.assessor.Config().Benchmark}, s.lookbackDays)
	if err != nil {
		return AssetRiskProfile{}, fmt.Errorf("failed to load price history: %w", err)
	}
	return s.assessor.AssessSymbol(symbol, table), nil
}

// Latest returns the most recent successful report.
func (s *Service) Latest() (*RiskReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}

func unavailableByMetric(r *RiskReport) map[string]int {
	out := make(map[string]int, len(AllMetrics))
	for _, name := range AllMetrics {
		n := 0
		for _, p := range r.Profiles {
			if !p.Metric(name).IsAvailable() {
				n++
			}
		}
		out[string(name)] = n
	}
	return out
}
