package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type exportCmd struct {
	dataDir string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "compute the risk report and upload it to S3" }
func (*exportCmd) Usage() string {
	return `riskctl export [-data <dir>]

  Runs an analysis and uploads the report to RISK_EXPORT_BUCKET under
  <prefix>/<yyyy>/<mm>/<dd>/<run-id>.<ext>. Prints the object key.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dataDir, "data", "", "Data directory (defaults to RISK_DATA_DIR).")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	container, _, err := openContainer(ctx, c.dataDir)
	if err != nil {
		return fail(err)
	}
	defer container.Close()

	if container.Exporter == nil {
		return fail(errors.New("export is not configured: set RISK_EXPORT_BUCKET"))
	}

	report, err := container.RiskService.Run(ctx)
	if err != nil {
		return fail(err)
	}

	key, err := container.Exporter.Export(ctx, report)
	if err != nil {
		return fail(err)
	}

	fmt.Println(key)
	return subcommands.ExitSuccess
}
