package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/aristath/riskdesk/internal/di"
	"github.com/aristath/riskdesk/internal/domain"
	"github.com/google/subcommands"
)

// importDocument is the input of riskctl import.
type importDocument struct {
	Holdings []domain.Holding               `json:"holdings"`
	Prices   map[string][]domain.PricePoint `json:"prices"`
}

type importCmd struct {
	dataDir string
	file    string
	source  string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "load holdings and price history from a JSON document" }
func (*importCmd) Usage() string {
	return `riskctl import [-data <dir>] [-f <file>] [-source <name>]

  Reads {"holdings": [...], "prices": {"SYM": [{"date", "close"}]}} from the
  file (or stdin). Holdings replace the stored ones when present; prices are
  upserted per symbol.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dataDir, "data", "", "Data directory (defaults to RISK_DATA_DIR).")
	f.StringVar(&c.file, "f", "-", "Input file, - for stdin.")
	f.StringVar(&c.source, "source", "import", "Source name recorded with the prices.")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var in io.Reader = os.Stdin
	if c.file != "-" {
		file, err := os.Open(c.file)
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		in = file
	}

	doc, err := decodeImport(in)
	if err != nil {
		return fail(err)
	}

	container, log, err := openContainer(ctx, c.dataDir)
	if err != nil {
		return fail(err)
	}
	defer container.Close()

	holdings, symbols, err := applyImport(ctx, container, doc, c.source)
	if err != nil {
		return fail(err)
	}

	log.Info().Int("holdings", holdings).Int("symbols", symbols).Msg("Import completed")
	return subcommands.ExitSuccess
}

func decodeImport(r io.Reader) (importDocument, error) {
	var doc importDocument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return importDocument{}, fmt.Errorf("failed to decode import document: %w", err)
	}
	return doc, nil
}

// applyImport stores the document and returns the number of holdings and
// price symbols written. Symbols are imported in sorted order.
func applyImport(ctx context.Context, container *di.Container, doc importDocument, source string) (int, int, error) {
	if len(doc.Holdings) > 0 {
		if err := container.HoldingsRepo.ReplaceAll(ctx, doc.Holdings); err != nil {
			return 0, 0, fmt.Errorf("failed to store holdings: %w", err)
		}
	}

	symbols := make([]string, 0, len(doc.Prices))
	for sym := range doc.Prices {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	for _, sym := range symbols {
		if err := container.HistoryStore.SyncHistoricalPrices(ctx, sym, source, doc.Prices[sym]); err != nil {
			return 0, 0, fmt.Errorf("failed to store prices for %s: %w", sym, err)
		}
	}

	return len(doc.Holdings), len(symbols), nil
}
