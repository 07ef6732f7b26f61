/**
 * Package di provides dependency injection type definitions.
 *
 * The Container holds every long-lived dependency of the risk service and
 * is the single source of truth handed to the HTTP server and the CLI.
 */
package di

import (
	"errors"

	"github.com/aristath/riskdesk/internal/database"
	"github.com/aristath/riskdesk/internal/exporter"
	"github.com/aristath/riskdesk/internal/modules/history"
	"github.com/aristath/riskdesk/internal/modules/portfolio"
	"github.com/aristath/riskdesk/internal/modules/risk"
	"github.com/aristath/riskdesk/internal/scheduler"
)

// Container holds all dependencies for the application.
type Container struct {
	// Databases
	HistoryDB   *database.DB // Daily close prices
	PortfolioDB *database.DB // Current holdings

	// Repositories
	HistoryStore *history.HistoryDB
	HoldingsRepo *portfolio.HoldingsRepository

	// Services
	Assessor    *risk.Assessor
	RiskService *risk.Service
	Exporter    exporter.Exporter // nil when export is not configured

	// Scheduling
	Scheduler *scheduler.Scheduler
}

// JobInstances holds the registered jobs for manual triggering
type JobInstances struct {
	RiskReport    *scheduler.RiskReportJob
	WALCheckpoint *scheduler.WALCheckpointJob
}

// Databases returns the open databases in a fixed order.
func (c *Container) Databases() []*database.DB {
	var dbs []*database.DB
	for _, db := range []*database.DB{c.HistoryDB, c.PortfolioDB} {
		if db != nil {
			dbs = append(dbs, db)
		}
	}
	return dbs
}

// Close stops the scheduler and closes all databases.
func (c *Container) Close() error {
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}

	var errs []error
	for _, db := range c.Databases() {
		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
