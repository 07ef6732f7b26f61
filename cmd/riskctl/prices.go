package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/aristath/riskdesk/internal/modules/history"
	"github.com/google/subcommands"
)

type pricesCmd struct {
	dataDir string
	remove  string
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "list stored price histories or delete one" }
func (*pricesCmd) Usage() string {
	return `riskctl prices [-data <dir>] [-delete <sym>]

  Lists every symbol with stored prices and the date of its newest close.
  With -delete all prices of that symbol are removed instead.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dataDir, "data", "", "Data directory (defaults to RISK_DATA_DIR).")
	f.StringVar(&c.remove, "delete", "", "Delete the stored prices of this symbol.")
}

func (c *pricesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	container, log, err := openContainer(ctx, c.dataDir)
	if err != nil {
		return fail(err)
	}
	defer container.Close()

	if c.remove != "" {
		n, err := container.HistoryStore.DeleteSymbol(ctx, c.remove)
		if err != nil {
			return fail(err)
		}
		log.Info().Str("symbol", c.remove).Int64("rows", n).Msg("Deleted price history")
		return subcommands.ExitSuccess
	}

	if err := listPrices(ctx, os.Stdout, container.HistoryStore); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func listPrices(ctx context.Context, w io.Writer, store *history.HistoryDB) error {
	symbols, err := store.Symbols(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Symbol\tLatest\t")
	for _, sym := range symbols {
		latest, err := store.LatestDate(ctx, sym)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", sym, latest)
	}
	return tw.Flush()
}
