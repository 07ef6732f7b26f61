package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aristath/riskdesk/internal/config"
	"github.com/aristath/riskdesk/internal/di"
	"github.com/aristath/riskdesk/pkg/logger"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

var commands = []subcommands.Command{
	&analyzeCmd{},
	&importCmd{},
	&exportCmd{},
	&pricesCmd{},
}

// openContainer loads configuration and wires the stores and services.
// Logs go to stderr so stdout carries only the report.
func openContainer(ctx context.Context, dataDir string) (*di.Container, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	// The CLI never runs the report job on a schedule.
	cfg.ReportSchedule = ""

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
		Output: os.Stderr,
	})

	container, _, err := di.Wire(ctx, cfg, log)
	if err != nil {
		return nil, log, err
	}
	return container, log, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
