package di

import (
	"fmt"

	"github.com/aristath/riskdesk/internal/modules/history"
	"github.com/aristath/riskdesk/internal/modules/portfolio"
	"github.com/rs/zerolog"
)

// InitializeRepositories creates the stores on top of the open databases
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	if container == nil || container.HistoryDB == nil || container.PortfolioDB == nil {
		return fmt.Errorf("databases must be initialized before repositories")
	}

	container.HistoryStore = history.NewHistoryDB(container.HistoryDB.Conn(), log)
	container.HoldingsRepo = portfolio.NewHoldingsRepository(container.PortfolioDB.Conn(), log)

	log.Debug().Msg("Repositories initialized")
	return nil
}
