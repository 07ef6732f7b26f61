package history

import (
	"context"
	"testing"

	"github.com/aristath/riskdesk/internal/database"
	"github.com/aristath/riskdesk/internal/domain"
	testingpkg "github.com/aristath/riskdesk/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistoryDB(t *testing.T) *HistoryDB {
	db, cleanup := testingpkg.NewTestDB(t, database.NameHistory)
	t.Cleanup(cleanup)
	return NewHistoryDB(db.Conn(), zerolog.Nop())
}

func TestSyncAndGetDailyPrices(t *testing.T) {
	h := newTestHistoryDB(t)
	ctx := context.Background()

	points := testingpkg.NewPricePoints(5, testingpkg.WaveStep(0.01, 0.02, 1))
	require.NoError(t, h.SyncHistoricalPrices(ctx, "aapl", "", points))

	prices, err := h.GetDailyPrices(ctx, "AAPL", 0)
	require.NoError(t, err)
	require.Len(t, prices, 5)
	assert.Equal(t, "2023-01-02", prices[0].Date)
	assert.Equal(t, "2023-01-06", prices[4].Date)
	assert.InDelta(t, points[4].Close, prices[4].Close, 1e-12)
	assert.Equal(t, "import", prices[0].Source)

	recent, err := h.GetDailyPrices(ctx, "aapl", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2023-01-05", recent[0].Date)
	assert.Equal(t, "2023-01-06", recent[1].Date)
}

func TestSyncHistoricalPrices_Upserts(t *testing.T) {
	h := newTestHistoryDB(t)
	ctx := context.Background()

	require.NoError(t, h.SyncHistoricalPrices(ctx, "A", "csv", []domain.PricePoint{
		{Date: "2024-01-02", Close: 10},
		{Date: "2024-01-03", Close: 11},
	}))
	require.NoError(t, h.SyncHistoricalPrices(ctx, "A", "fix", []domain.PricePoint{
		{Date: "2024-01-03", Close: 12},
		{Date: "2024-01-04", Close: 13},
	}))

	prices, err := h.GetDailyPrices(ctx, "A", 0)
	require.NoError(t, err)
	require.Len(t, prices, 3)
	assert.Equal(t, 12.0, prices[1].Close)
	assert.Equal(t, "fix", prices[1].Source)
	assert.Equal(t, "csv", prices[0].Source)

	latest, err := h.LatestDate(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.Date("2024-01-04"), latest)
}

func TestSyncHistoricalPrices_RejectsInvalid(t *testing.T) {
	h := newTestHistoryDB(t)

	err := h.SyncHistoricalPrices(context.Background(), "A", "", []domain.PricePoint{{Date: "2024-01-02", Close: -1}})
	assert.ErrorIs(t, err, domain.ErrNonPositivePrice)

	symbols, err := h.Symbols(context.Background())
	require.NoError(t, err)
	assert.Empty(t, symbols)
}

func TestLoadTable(t *testing.T) {
	h := newTestHistoryDB(t)
	ctx := context.Background()

	for sym, pts := range testingpkg.NewPriceFixtures() {
		require.NoError(t, h.SyncHistoricalPrices(ctx, sym, "", pts))
	}

	table, err := h.LoadTable(ctx, []string{"a", "B", "SPY", "MISSING", "A"}, 100)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "SPY"}, table.Symbols())
	a, ok := table.Get("A")
	require.True(t, ok)
	assert.Equal(t, 100, a.Len())

	all, err := h.LoadTable(ctx, []string{"A"}, 0)
	require.NoError(t, err)
	full, _ := all.Get("A")
	assert.Equal(t, 252, full.Len())

	symbols, err := h.Symbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "SPY"}, symbols)
}

func TestLoadSeries_NoPrices(t *testing.T) {
	h := newTestHistoryDB(t)

	_, err := h.LoadSeries(context.Background(), "NOPE", 0)
	assert.ErrorIs(t, err, ErrNoPrices)

	_, err = h.LatestDate(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNoPrices)
}

func TestDeleteSymbol(t *testing.T) {
	h := newTestHistoryDB(t)
	ctx := context.Background()

	require.NoError(t, h.SyncHistoricalPrices(ctx, "A", "", testingpkg.NewPricePoints(3, testingpkg.WaveStep(0, 0.01, 1))))

	n, err := h.DeleteSymbol(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = h.LoadSeries(ctx, "A", 0)
	assert.ErrorIs(t, err, ErrNoPrices)
}
