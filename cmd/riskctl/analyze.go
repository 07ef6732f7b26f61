package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/aristath/riskdesk/internal/modules/risk"
	"github.com/google/subcommands"
)

type analyzeCmd struct {
	dataDir string
	format  string
	output  string
	symbol  string
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "compute the risk report for the stored holdings" }
func (*analyzeCmd) Usage() string {
	return `riskctl analyze [-data <dir>] [-format table|json|msgpack] [-o <file>] [-symbol <sym>]

  Loads holdings and price history from the data directory, computes
  volatility, beta, VaR, Sharpe and maximum drawdown for every holding
  and prints the report. With -symbol only that symbol is assessed
  against the benchmark; holdings are not read.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dataDir, "data", "", "Data directory (defaults to RISK_DATA_DIR).")
	f.StringVar(&c.format, "format", "table", "Output format: table, json or msgpack.")
	f.StringVar(&c.output, "o", "", "Write the report to this file instead of stdout.")
	f.StringVar(&c.symbol, "symbol", "", "Assess a single symbol instead of the holdings.")
}

func (c *analyzeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	container, _, err := openContainer(ctx, c.dataDir)
	if err != nil {
		return fail(err)
	}
	defer container.Close()

	var write func(io.Writer) error
	if c.symbol != "" {
		profile, err := container.RiskService.AssessSymbol(ctx, c.symbol)
		if err != nil {
			return fail(err)
		}
		write = func(w io.Writer) error { return writeProfile(w, profile, c.format) }
	} else {
		report, err := container.RiskService.Run(ctx)
		if err != nil {
			return fail(err)
		}
		write = func(w io.Writer) error { return writeReport(w, report, c.format) }
	}

	var out io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		out = file
	}

	if err := write(out); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func writeProfile(w io.Writer, p risk.AssetRiskProfile, format string) error {
	if format != "table" {
		f, err := risk.ParseFormat(format)
		if err != nil {
			return err
		}
		return risk.Encode(w, risk.NewProfileSnapshot(p), f)
	}

	labels := risk.Classify(p)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Symbol\tObs\tVolatility\tBeta\tVaR\tSharpe\tMax DD\tVol Level\tBeta Level\tSharpe Level\t")
	fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
		p.Symbol, p.Observations,
		p.Volatility, p.Beta, p.VaR, p.Sharpe, p.MaxDrawdown,
		labels.Volatility.Label, labels.Beta.Label, labels.Sharpe.Label,
	)
	if err := tw.Flush(); err != nil {
		return err
	}
	if p.Missing {
		fmt.Fprintf(w, "warning: no price history for %s\n", p.Symbol)
	}
	return nil
}

func writeReport(w io.Writer, report *risk.RiskReport, format string) error {
	if format == "table" {
		return renderTable(w, report)
	}
	f, err := risk.ParseFormat(format)
	if err != nil {
		return err
	}
	return risk.Encode(w, report.Snapshot(), f)
}

// renderTable prints the per-asset table, the rankings and the highlights.
func renderTable(w io.Writer, report *risk.RiskReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "Symbol\tWeight\tVolatility\tBeta\tVaR\tSharpe\tMax DD\tVol Level\tBeta Level\tSharpe Level\t")
	for _, p := range report.Profiles {
		labels := report.Labels[p.Symbol]
		fmt.Fprintf(tw, "%s\t%.2f%%\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			p.Symbol, p.Weight*100,
			p.Volatility, p.Beta, p.VaR, p.Sharpe, p.MaxDrawdown,
			labels.Volatility.Label, labels.Beta.Label, labels.Sharpe.Label,
		)
	}
	if p := report.Portfolio; p != nil {
		fmt.Fprintf(tw, "%s\t%.2f%%\t%s\t%s\t%s\t%s\t%s\t\t\t\t\n",
			"PORTFOLIO", 100.0,
			p.Volatility, p.Beta, p.VaR, p.Sharpe, p.MaxDrawdown,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, m := range risk.AllMetrics {
		fmt.Fprintf(w, "%-13s %v\n", m+":", report.Ranking(m))
	}

	h := report.Highlights
	fmt.Fprintln(w)
	printExtreme(w, "Highest volatility", h.HighestVolatility)
	printExtreme(w, "Lowest volatility", h.LowestVolatility)
	printExtreme(w, "Best Sharpe", h.BestSharpe)
	printExtreme(w, "Worst Sharpe", h.WorstSharpe)
	printExtreme(w, "Largest drawdown", h.LargestDrawdown)
	printExtreme(w, "Smallest drawdown", h.SmallestDrawdown)

	for _, sym := range report.MissingSymbols() {
		fmt.Fprintf(w, "warning: no price history for %s\n", sym)
	}
	return nil
}

func printExtreme(w io.Writer, label string, e *risk.Extreme) {
	if e == nil {
		fmt.Fprintf(w, "%-19s N/A\n", label+":")
		return
	}
	fmt.Fprintf(w, "%-19s %s (%.4f)\n", label+":", e.Symbol, e.Value)
}
