package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-data/internal/export"
	"github.com/rxtech-lab/argo-data/internal/store"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/urfave/cli/v3"
)

func newOverviewCommand() *cli.Command {
	return &cli.Command{
		Name:  "overview",
		Usage: "List every stored bar series",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "instruments",
				Aliases: []string{"o"},
				Usage:   "Write the instrument list (SYMBOL.EXCHANGE per line) to this file",
			},
			&cli.StringFlag{
				Name:  "summary",
				Usage: "Write a per-series summary report to this file",
			},
		},
		Action: overviewAction,
	}
}

// overviewAction prints one line per stored series and optionally
// renders the instrument list and summary report artifacts.
func overviewAction(ctx context.Context, cmd *cli.Command) error {
	cfg, appLogger, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	barStore, err := openStore(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open bar store: %w", err)
	}
	defer barStore.Close()

	overviews, err := barStore.Overviews()
	if err != nil {
		return fmt.Errorf("failed to read overviews: %w", err)
	}

	if len(overviews) == 0 {
		fmt.Println("The bar store is empty")

		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "Instrument\tInterval\tBars\tFirst\tLast")

	for _, overview := range overviews {
		fmt.Fprintf(writer, "%s\t%s\t%d\t%s\t%s\n",
			overview.VtSymbol(),
			overview.Interval,
			overview.Count,
			overview.Start.Format("2006-01-02 15:04"),
			overview.End.Format("2006-01-02 15:04"),
		)
	}

	if err := writer.Flush(); err != nil {
		return err
	}

	if listPath := cmd.String("instruments"); listPath != "" {
		if err := export.WriteInstrumentList(listPath, overviews); err != nil {
			return err
		}

		fmt.Printf("Wrote instrument list to %s\n", listPath)
	}

	if summaryPath := cmd.String("summary"); summaryPath != "" {
		if err := writeSummary(barStore, overviews, summaryPath); err != nil {
			return err
		}

		fmt.Printf("Wrote summary report to %s\n", summaryPath)
	}

	return nil
}

// writeSummary loads each series back and renders the summary report.
func writeSummary(barStore store.BarStore, overviews []types.BarOverview, path string) error {
	summaries := make([]export.SymbolSummary, 0, len(overviews))

	for _, overview := range overviews {
		series := store.Series{
			Symbol:   overview.Symbol,
			Exchange: overview.Exchange,
			Interval: overview.Interval,
		}

		bars, err := barStore.LoadBars(series, optional.None[time.Time](), optional.None[time.Time]())
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", series.VtSymbol(), err)
		}

		summary, err := export.Summarize(bars)
		if err != nil {
			return err
		}

		summaries = append(summaries, summary)
	}

	return export.WriteSummaryReport(path, summaries)
}
