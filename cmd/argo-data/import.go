package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rxtech-lab/argo-data/internal/importer"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func newImportCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import a delimited vendor file into the bar store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the vendor file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "profile",
				Aliases: []string{"p"},
				Usage:   "Path to a YAML import profile. Inline flags override its fields.",
			},
			&cli.StringFlag{
				Name:  "symbol",
				Usage: "Instrument identifier the bars belong to",
			},
			&cli.StringFlag{
				Name:  "exchange",
				Usage: "Venue the instrument trades on (e.g. SHFE, BINANCE)",
			},
			&cli.StringFlag{
				Name:  "interval",
				Usage: "Bar period of the file (1m, 5m, 15m, 30m, 1h, 4h, 1d, 1w)",
				Value: string(types.Interval1m),
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "Provenance tag stored on every bar",
				Value: importer.DefaultSource,
			},
			&cli.StringFlag{
				Name:  "layout",
				Usage: "Go reference-time layout of the timestamp column",
				Value: "2006-01-02 15:04:05",
			},
			&cli.StringFlag{
				Name:  "timezone",
				Usage: "IANA timezone the timestamps are local to",
				Value: "UTC",
			},
			&cli.StringSliceFlag{
				Name:    "column",
				Aliases: []string{"c"},
				Usage:   "Column override as field=header (datetime, open, high, low, close, volume, open_interest)",
			},
			&cli.StringFlag{
				Name:  "delimiter",
				Usage: "Field separator of the file (comma or tab)",
				Value: string(importer.DelimiterComma),
			},
			&cli.IntFlag{
				Name:  "trim",
				Usage: "Number of rows at the end of the file that are never imported",
			},
			&cli.StringFlag{
				Name:  "on-error",
				Usage: "Row failure policy (fail or skip)",
				Value: string(importer.RowErrorFail),
			},
		},
		Action: importAction,
	}
}

// importAction reads the vendor file named by --file and streams it
// into the bar store in one transaction.
func importAction(ctx context.Context, cmd *cli.Command) error {
	cfg, appLogger, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	importConfig, err := buildImportConfig(cmd)
	if err != nil {
		return err
	}

	onSkip := func(row int, cause error) {
		appLogger.Warn("row skipped", zap.Int("row", row), zap.Error(cause))
	}

	imp, err := importer.NewBarImporter(importConfig, appLogger, onSkip)
	if err != nil {
		return err
	}

	barStore, err := openStore(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open bar store: %w", err)
	}
	defer barStore.Close()

	file := cmd.String("file")

	saved, err := barStore.SaveStream(imp.ReadAll(ctx, file))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	report := imp.Report()
	appLogger.Info("import finished",
		zap.String("file", file),
		zap.String("symbol", importConfig.Symbol),
		zap.String("exchange", string(importConfig.Exchange)),
		zap.String("interval", string(importConfig.Interval)),
		zap.Int("rows_read", report.RowsRead),
		zap.Int("bars_emitted", report.BarsEmitted),
		zap.Int("trimmed", report.Trimmed),
		zap.Int("skipped", len(report.Skipped)),
	)

	fmt.Printf("Imported %d bars for %s.%s (%s) from %s\n",
		saved, importConfig.Symbol, importConfig.Exchange, importConfig.Interval, file)

	if len(report.Skipped) > 0 {
		fmt.Printf("Skipped %d malformed rows, see log for details\n", len(report.Skipped))
	}

	return nil
}

// buildImportConfig assembles the import mapping from the profile
// document and the inline flags. Explicitly set flags win over the
// profile.
func buildImportConfig(cmd *cli.Command) (importer.ImportConfig, error) {
	config := importer.ImportConfig{
		Interval:   types.Interval(cmd.String("interval")),
		Source:     cmd.String("source"),
		TimeLayout: cmd.String("layout"),
		Timezone:   cmd.String("timezone"),
		Columns: importer.ColumnMap{
			Datetime: "Datetime",
			Open:     "Open",
			High:     "High",
			Low:      "Low",
			Close:    "Close",
			Volume:   "Volume",
		},
		Delimiter: importer.Delimiter(cmd.String("delimiter")),
		OnError:   importer.RowErrorPolicy(cmd.String("on-error")),
	}

	if profilePath := cmd.String("profile"); profilePath != "" {
		profile, err := importer.LoadProfile(profilePath)
		if err != nil {
			return importer.ImportConfig{}, err
		}

		config = profile.Config
	}

	// Inline flags override the profile only when explicitly given, so
	// one profile can serve many files that differ in symbol alone.
	if cmd.IsSet("symbol") || config.Symbol == "" {
		config.Symbol = cmd.String("symbol")
	}

	if cmd.IsSet("exchange") || config.Exchange == "" {
		config.Exchange = types.Exchange(cmd.String("exchange"))
	}

	if cmd.IsSet("interval") {
		config.Interval = types.Interval(cmd.String("interval"))
	}

	if cmd.IsSet("source") {
		config.Source = cmd.String("source")
	}

	if cmd.IsSet("layout") {
		config.TimeLayout = cmd.String("layout")
	}

	if cmd.IsSet("timezone") {
		config.Timezone = cmd.String("timezone")
	}

	if cmd.IsSet("delimiter") {
		config.Delimiter = importer.Delimiter(cmd.String("delimiter"))
	}

	if cmd.IsSet("trim") {
		config.TrimTrailingRows = int(cmd.Int("trim"))
	}

	if cmd.IsSet("on-error") {
		config.OnError = importer.RowErrorPolicy(cmd.String("on-error"))
	}

	if err := applyColumnOverrides(&config.Columns, cmd.StringSlice("column")); err != nil {
		return importer.ImportConfig{}, err
	}

	return config, nil
}

// applyColumnOverrides applies field=header pairs onto the column map.
func applyColumnOverrides(columns *importer.ColumnMap, pairs []string) error {
	for _, pair := range pairs {
		field, header, found := strings.Cut(pair, "=")
		if !found {
			return fmt.Errorf("column override must be field=header, got %q", pair)
		}

		switch strings.ToLower(strings.TrimSpace(field)) {
		case "datetime":
			columns.Datetime = header
		case "open":
			columns.Open = header
		case "high":
			columns.High = header
		case "low":
			columns.Low = header
		case "close":
			columns.Close = header
		case "volume":
			columns.Volume = header
		case "open_interest", "openinterest":
			columns.OpenInterest = header
		default:
			return fmt.Errorf("unknown column field %q in %q", field, pair)
		}
	}

	return nil
}
