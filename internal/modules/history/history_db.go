// Package history stores daily closing prices and loads them as a
// domain.HistoricalTable.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/riskdesk/internal/database"
	"github.com/aristath/riskdesk/internal/domain"
	"github.com/aristath/riskdesk/internal/utils"
	"github.com/rs/zerolog"
)

// ErrNoPrices is returned when a symbol has no stored prices.
var ErrNoPrices = errors.New("no price history")

// HistoryDB provides access to historical price data
type HistoryDB struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewHistoryDB creates a new history database accessor
func NewHistoryDB(db *sql.DB, log zerolog.Logger) *HistoryDB {
	return &HistoryDB{
		db:  db,
		log: log.With().Str("component", "history_db").Logger(),
	}
}

// DailyPrice is one stored closing price.
type DailyPrice struct {
	Date   string  `json:"date"`
	Close  float64 `json:"close"`
	Source string  `json:"source,omitempty"`
}

// GetDailyPrices returns the most recent limit prices for symbol in
// ascending date order. limit <= 0 returns all prices.
func (h *HistoryDB) GetDailyPrices(ctx context.Context, symbol string, limit int) ([]DailyPrice, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	query := `
		SELECT date, close, source FROM (
			SELECT date, close, source
			FROM daily_prices
			WHERE symbol = ?
			ORDER BY date DESC
			LIMIT ?
		) ORDER BY date ASC
	`

	done := utils.MeasureDBQuery("get_daily_prices", h.log)
	rows, err := h.db.QueryContext(ctx, query, domain.NormalizeSymbol(symbol), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily prices: %w", err)
	}
	defer rows.Close()

	var prices []DailyPrice
	for rows.Next() {
		var p DailyPrice
		var dateUnix int64
		if err := rows.Scan(&dateUnix, &p.Close, &p.Source); err != nil {
			return nil, fmt.Errorf("failed to scan daily price: %w", err)
		}
		p.Date = string(domain.DateFromUnix(dateUnix))
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily prices: %w", err)
	}

	done(int64(len(prices)))
	return prices, nil
}

// LoadSeries loads a validated price series for symbol.
func (h *HistoryDB) LoadSeries(ctx context.Context, symbol string, limit int) (domain.PriceSeries, error) {
	prices, err := h.GetDailyPrices(ctx, symbol, limit)
	if err != nil {
		return domain.PriceSeries{}, err
	}
	if len(prices) == 0 {
		return domain.PriceSeries{}, fmt.Errorf("%s: %w", domain.NormalizeSymbol(symbol), ErrNoPrices)
	}

	points := make([]domain.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = domain.PricePoint{Date: domain.Date(p.Date), Close: p.Close}
	}
	return domain.NewPriceSeries(symbol, points)
}

// LoadTable loads the series of every symbol that has prices. Symbols without
// history are skipped; a duplicate request for one symbol loads it once.
func (h *HistoryDB) LoadTable(ctx context.Context, symbols []string, lookbackDays int) (domain.HistoricalTable, error) {
	seen := make(map[string]bool, len(symbols))
	series := make([]domain.PriceSeries, 0, len(symbols))

	for _, sym := range symbols {
		sym = domain.NormalizeSymbol(sym)
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true

		s, err := h.LoadSeries(ctx, sym, lookbackDays)
		if errors.Is(err, ErrNoPrices) {
			h.log.Debug().Str("symbol", sym).Msg("No price history")
			continue
		}
		if err != nil {
			return domain.HistoricalTable{}, err
		}
		series = append(series, s)
	}

	return domain.NewHistoricalTable(series...)
}

// SyncHistoricalPrices upserts prices for symbol in one transaction.
// Points are validated as a series first, so they must be in date order.
func (h *HistoryDB) SyncHistoricalPrices(ctx context.Context, symbol, source string, points []domain.PricePoint) error {
	series, err := domain.NewPriceSeries(symbol, points)
	if err != nil {
		return fmt.Errorf("invalid prices: %w", err)
	}
	if source == "" {
		source = "import"
	}

	now := time.Now().Unix()
	err = database.WithTransaction(h.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO daily_prices (symbol, date, close, source, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(symbol, date) DO UPDATE SET
				close = excluded.close,
				source = excluded.source,
				updated_at = excluded.updated_at
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, p := range series.Points() {
			if _, err := stmt.ExecContext(ctx, series.Symbol(), p.Date.Unix(), p.Close, source, now); err != nil {
				return fmt.Errorf("failed to insert price %s %s: %w", series.Symbol(), p.Date, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	h.log.Info().
		Str("symbol", series.Symbol()).
		Int("count", series.Len()).
		Str("source", source).
		Msg("Synced historical prices")

	return nil
}

// Symbols lists every symbol with stored prices.
func (h *HistoryDB) Symbols(ctx context.Context) ([]string, error) {
	rows, err := h.db.QueryContext(ctx, "SELECT DISTINCT symbol FROM daily_prices ORDER BY symbol")
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

// LatestDate returns the date of the newest price for symbol.
func (h *HistoryDB) LatestDate(ctx context.Context, symbol string) (domain.Date, error) {
	var dateUnix sql.NullInt64
	err := h.db.QueryRowContext(ctx, "SELECT MAX(date) FROM daily_prices WHERE symbol = ?", domain.NormalizeSymbol(symbol)).Scan(&dateUnix)
	if err != nil {
		return "", fmt.Errorf("failed to query latest date: %w", err)
	}
	if !dateUnix.Valid {
		return "", fmt.Errorf("%s: %w", domain.NormalizeSymbol(symbol), ErrNoPrices)
	}
	return domain.DateFromUnix(dateUnix.Int64), nil
}

// DeleteSymbol removes all prices for symbol.
func (h *HistoryDB) DeleteSymbol(ctx context.Context, symbol string) (int64, error) {
	res, err := h.db.ExecContext(ctx, "DELETE FROM daily_prices WHERE symbol = ?", domain.NormalizeSymbol(symbol))
	if err != nil {
		return 0, fmt.Errorf("failed to delete prices: %w", err)
	}
	return res.RowsAffected()
}
