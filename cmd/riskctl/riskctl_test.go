package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aristath/riskdesk/internal/config"
	"github.com/aristath/riskdesk/internal/di"
	"github.com/aristath/riskdesk/internal/domain"
	"github.com/aristath/riskdesk/internal/modules/risk"
	testingpkg "github.com/aristath/riskdesk/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContainer(t *testing.T) *di.Container {
	t.Helper()
	cfg := &config.Config{
		DataDir: t.TempDir(),
		Risk: config.RiskConfig{
			RiskFreeRate:  0.02,
			VaRConfidence: 0.05,
			Benchmark:     "SPY",
			TradingDays:   252,
			LookbackDays:  252,
		},
	}
	container, _, err := di.Wire(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })
	return container
}

func fixtureDocument(t *testing.T) []byte {
	t.Helper()
	doc := importDocument{
		Holdings: testingpkg.NewHoldingFixtures(),
		Prices:   testingpkg.NewPriceFixtures(),
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func TestDecodeImport(t *testing.T) {
	doc, err := decodeImport(strings.NewReader(`{
		"holdings": [{"symbol": "aapl", "quantity": "10", "current_value": 1500.5}],
		"prices": {"AAPL": [{"date": "2024-01-02", "close": 185.6}]}
	}`))
	require.NoError(t, err)
	require.Len(t, doc.Holdings, 1)
	assert.Equal(t, "aapl", doc.Holdings[0].Symbol)
	assert.Equal(t, "1500.5", doc.Holdings[0].CurrentValue.String())
	assert.Equal(t, domain.Date("2024-01-02"), doc.Prices["AAPL"][0].Date)

	_, err = decodeImport(strings.NewReader(`{"positions": []}`))
	assert.Error(t, err)
}

func TestApplyImportAndAnalyze(t *testing.T) {
	ctx := context.Background()
	container := newContainer(t)

	doc, err := decodeImport(bytes.NewReader(fixtureDocument(t)))
	require.NoError(t, err)

	holdings, symbols, err := applyImport(ctx, container, doc, "test")
	require.NoError(t, err)
	assert.Equal(t, 2, holdings)
	assert.Equal(t, 3, symbols)

	report, err := container.RiskService.Run(ctx)
	require.NoError(t, err)
	require.Len(t, report.Profiles, 2)

	var table bytes.Buffer
	require.NoError(t, writeReport(&table, report, "table"))
	out := table.String()
	assert.Contains(t, out, "Symbol")
	assert.Contains(t, out, "PORTFOLIO")
	assert.Contains(t, out, "Highest volatility:")
	assert.NotContains(t, out, "warning:")

	var encoded bytes.Buffer
	require.NoError(t, writeReport(&encoded, report, "msgpack"))
	snap, err := risk.DecodeSnapshot(&encoded, risk.FormatMsgpack)
	require.NoError(t, err)
	assert.Equal(t, report.RunID, snap.RunID)

	assert.Error(t, writeReport(&encoded, report, "xml"))
}

func TestApplyImport_InvalidPrices(t *testing.T) {
	container := newContainer(t)

	doc := importDocument{
		Prices: map[string][]domain.PricePoint{
			"BAD": {{Date: "2024-01-03", Close: 10}, {Date: "2024-01-02", Close: 11}},
		},
	}
	_, _, err := applyImport(context.Background(), container, doc, "test")
	assert.ErrorIs(t, err, domain.ErrUnorderedDates)
}

func TestRenderTable_MissingSymbol(t *testing.T) {
	table, err := testingpkg.NewHistoricalTableFixture()
	require.NoError(t, err)
	assessor, err := risk.NewAssessor(risk.DefaultConfig())
	require.NoError(t, err)

	holdings := append(testingpkg.NewHoldingFixtures(), domain.Holding{Symbol: "ZZZ"})
	report, err := assessor.Assess(holdings, table)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderTable(&buf, report))
	assert.Contains(t, buf.String(), "warning: no price history for ZZZ")
	assert.Contains(t, buf.String(), "N/A")
}

func TestCommandsRegistered(t *testing.T) {
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"analyze", "import", "export", "prices"}, names)
}

func TestWriteProfile(t *testing.T) {
	ctx := context.Background()
	container := newContainer(t)
	_, _, err := applyImport(ctx, container, importDocument{Prices: testingpkg.NewPriceFixtures()}, "test")
	require.NoError(t, err)

	profile, err := container.RiskService.AssessSymbol(ctx, "b")
	require.NoError(t, err)

	var table bytes.Buffer
	require.NoError(t, writeProfile(&table, profile, "table"))
	assert.Contains(t, table.String(), "Sharpe Level")
	assert.Contains(t, table.String(), "251")
	assert.NotContains(t, table.String(), "warning:")

	var encoded bytes.Buffer
	require.NoError(t, writeProfile(&encoded, profile, "json"))
	var snap risk.AssetSnapshot
	require.NoError(t, json.Unmarshal(encoded.Bytes(), &snap))
	assert.Equal(t, "B", snap.Symbol)
	assert.Equal(t, 251, snap.Observations)
	require.NotNil(t, snap.Metrics[risk.MetricBeta].Value)

	missing, err := container.RiskService.AssessSymbol(ctx, "ZZZ")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, writeProfile(&buf, missing, "table"))
	assert.Contains(t, buf.String(), "warning: no price history for ZZZ")

	assert.Error(t, writeProfile(&buf, profile, "xml"))
}

func TestListAndDeletePrices(t *testing.T) {
	ctx := context.Background()
	container := newContainer(t)
	fixtures := testingpkg.NewPriceFixtures()
	_, _, err := applyImport(ctx, container, importDocument{Prices: fixtures}, "test")
	require.NoError(t, err)

	latest := string(fixtures["A"][len(fixtures["A"])-1].Date)

	var buf bytes.Buffer
	require.NoError(t, listPrices(ctx, &buf, container.HistoryStore))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"Symbol", "Latest"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"A", latest}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"SPY", latest}, strings.Fields(lines[3]))

	n, err := container.HistoryStore.DeleteSymbol(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(len(fixtures["A"])), n)

	buf.Reset()
	require.NoError(t, listPrices(ctx, &buf, container.HistoryStore))
	assert.NotContains(t, buf.String(), "A ")
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 3)
}
