package testing

import (
	"context"
	"sort"
	"sync"

	"github.com/aristath/riskdesk/internal/domain"
)

// MockHoldingsRepository is an in-memory holdings source.
type MockHoldingsRepository struct {
	mu       sync.RWMutex
	holdings []domain.Holding
	err      error
}

// NewMockHoldingsRepository creates a mock returning holdings.
func NewMockHoldingsRepository(holdings ...domain.Holding) *MockHoldingsRepository {
	return &MockHoldingsRepository{holdings: holdings}
}

// SetError sets the error to return
func (m *MockHoldingsRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// GetAll returns all holdings
func (m *MockHoldingsRepository) GetAll(ctx context.Context) ([]domain.Holding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Holding, len(m.holdings))
	copy(out, m.holdings)
	return out, nil
}

// MockPriceSource serves a fixed table, restricted to the requested symbols.
type MockPriceSource struct {
	mu    sync.Mutex
	table domain.HistoricalTable
	err   error
	calls int
}

// NewMockPriceSource creates a mock serving table.
func NewMockPriceSource(table domain.HistoricalTable) *MockPriceSource {
	return &MockPriceSource{table: table}
}

// SetError sets the error to return
func (m *MockPriceSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times LoadTable was called.
func (m *MockPriceSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LoadTable returns the requested subset of the table. lookbackDays is ignored.
func (m *MockPriceSource) LoadTable(ctx context.Context, symbols []string, lookbackDays int) (domain.HistoricalTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return domain.HistoricalTable{}, m.err
	}

	seen := make(map[string]bool)
	var series []domain.PriceSeries
	sorted := append([]string(nil), symbols...)
	sort.Strings(sorted)
	for _, sym := range sorted {
		s, ok := m.table.Get(sym)
		if !ok || seen[s.Symbol()] {
			continue
		}
		seen[s.Symbol()] = true
		series = append(series, s)
	}
	return domain.NewHistoricalTable(series...)
}
