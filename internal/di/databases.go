package di

import (
	"fmt"

	"github.com/aristath/riskdesk/internal/config"
	"github.com/aristath/riskdesk/internal/database"
	"github.com/rs/zerolog"
)

// InitializeDatabases opens both databases under cfg.DataDir and applies their schemas
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	// history.db - daily closes, re-importable so the faster profile is used
	historyDB, err := database.Open(cfg.DataDir, database.NameHistory, database.ProfileCache)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history database: %w", err)
	}
	container.HistoryDB = historyDB

	// portfolio.db - current holdings
	portfolioDB, err := database.Open(cfg.DataDir, database.NamePortfolio, database.ProfileStandard)
	if err != nil {
		historyDB.Close()
		return nil, fmt.Errorf("failed to initialize portfolio database: %w", err)
	}
	container.PortfolioDB = portfolioDB

	log.Info().Str("data_dir", cfg.DataDir).Msg("Databases initialized and schemas applied")

	return container, nil
}
