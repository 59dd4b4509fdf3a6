package main

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/argo-data/internal/store"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func newDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete one bar series from the store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "symbol",
				Usage:    "Instrument identifier of the series",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "exchange",
				Usage:    "Venue the series is stored under",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "interval",
				Usage:    "Bar period of the series",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Confirm the deletion. Without it the command only reports what would be deleted.",
			},
		},
		Action: deleteAction,
	}
}

// deleteAction removes one series. It is a dry run unless --yes is
// given.
func deleteAction(ctx context.Context, cmd *cli.Command) error {
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

	series := store.Series{
		Symbol:   cmd.String("symbol"),
		Exchange: types.Exchange(cmd.String("exchange")),
		Interval: types.Interval(cmd.String("interval")),
	}

	if !cmd.Bool("yes") {
		count, err := barStore.Count(series)
		if err != nil {
			return fmt.Errorf("failed to count bars: %w", err)
		}

		fmt.Printf("Would delete %d bars for %s (%s). Rerun with --yes to confirm.\n",
			count, series.VtSymbol(), series.Interval)

		return nil
	}

	deleted, err := barStore.DeleteBars(series)
	if err != nil {
		return fmt.Errorf("failed to delete bars: %w", err)
	}

	appLogger.Info("series deleted",
		zap.String("vt_symbol", series.VtSymbol()),
		zap.String("interval", string(series.Interval)),
		zap.Int64("bars", deleted))

	fmt.Printf("Deleted %d bars for %s (%s)\n", deleted, series.VtSymbol(), series.Interval)

	return nil
}
