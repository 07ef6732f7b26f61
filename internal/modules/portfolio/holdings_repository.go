// Package portfolio stores the current holdings.
package portfolio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/riskdesk/internal/database"
	"github.com/aristath/riskdesk/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrHoldingNotFound is returned when a symbol is not held.
var ErrHoldingNotFound = errors.New("holding not found")

// HoldingsRepositoryInterface defines the holdings store contract.
type HoldingsRepositoryInterface interface {
	GetAll(ctx context.Context) ([]domain.Holding, error)
	GetBySymbol(ctx context.Context, symbol string) (domain.Holding, error)
	Upsert(ctx context.Context, h domain.Holding) error
	ReplaceAll(ctx context.Context, holdings []domain.Holding) error
	Delete(ctx context.Context, symbol string) error
}

// HoldingsRepository handles holdings database operations.
// Decimals are stored as TEXT to avoid float rounding.
type HoldingsRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewHoldingsRepository creates a new holdings repository
func NewHoldingsRepository(db *sql.DB, log zerolog.Logger) *HoldingsRepository {
	return &HoldingsRepository{
		db:  db,
		log: log.With().Str("repo", "holdings").Logger(),
	}
}

// GetAll returns all holdings in insertion order.
func (r *HoldingsRepository) GetAll(ctx context.Context) ([]domain.Holding, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT symbol, quantity, current_value FROM holdings ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var holdings []domain.Holding
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// GetBySymbol returns one holding.
func (r *HoldingsRepository) GetBySymbol(ctx context.Context, symbol string) (domain.Holding, error) {
	symbol = domain.NormalizeSymbol(symbol)
	row := r.db.QueryRowContext(ctx, "SELECT symbol, quantity, current_value FROM holdings WHERE symbol = ?", symbol)

	h, err := scanHolding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Holding{}, fmt.Errorf("%s: %w", symbol, ErrHoldingNotFound)
	}
	return h, err
}

// Upsert inserts or replaces a holding.
func (r *HoldingsRepository) Upsert(ctx context.Context, h domain.Holding) error {
	return database.WithTransaction(r.db, func(tx *sql.Tx) error {
		return upsert(ctx, tx, h)
	})
}

// ReplaceAll replaces every holding in one transaction. Duplicate symbols
// are merged first.
func (r *HoldingsRepository) ReplaceAll(ctx context.Context, holdings []domain.Holding) error {
	merged, err := domain.MergeHoldings(holdings)
	if err != nil {
		return err
	}

	err = database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM holdings"); err != nil {
			return fmt.Errorf("failed to clear holdings: %w", err)
		}
		for _, h := range merged {
			if err := upsert(ctx, tx, h); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Info().Int("count", len(merged)).Msg("Replaced holdings")
	return nil
}

// Delete removes a holding.
func (r *HoldingsRepository) Delete(ctx context.Context, symbol string) error {
	symbol = domain.NormalizeSymbol(symbol)
	res, err := r.db.ExecContext(ctx, "DELETE FROM holdings WHERE symbol = ?", symbol)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", symbol, ErrHoldingNotFound)
	}
	return nil
}

func upsert(ctx context.Context, tx *sql.Tx, h domain.Holding) error {
	symbol := domain.NormalizeSymbol(h.Symbol)
	if symbol == "" {
		return domain.ErrEmptySymbol
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO holdings (symbol, quantity, current_value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			quantity = excluded.quantity,
			current_value = excluded.current_value,
			updated_at = excluded.updated_at
	`, symbol, h.Quantity.String(), h.CurrentValue.String(), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert holding %s: %w", symbol, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHolding(row rowScanner) (domain.Holding, error) {
	var h domain.Holding
	var quantity, value string
	if err := row.Scan(&h.Symbol, &quantity, &value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return h, err
		}
		return h, fmt.Errorf("failed to scan holding: %w", err)
	}

	var err error
	if h.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return h, fmt.Errorf("invalid quantity for %s: %w", h.Symbol, err)
	}
	if h.CurrentValue, err = decimal.NewFromString(value); err != nil {
		return h, fmt.Errorf("invalid current value for %s: %w", h.Symbol, err)
	}
	return h, nil
}
