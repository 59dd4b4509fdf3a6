package main

import (
	"context"
	"log"
	"os"

	"github.com/rxtech-lab/argo-data/internal/logger"
	"github.com/rxtech-lab/argo-data/internal/settings"
	"github.com/rxtech-lab/argo-data/internal/store"
	"github.com/rxtech-lab/argo-data/internal/version"
	"github.com/urfave/cli/v3"
)

// newRootCommand builds the CLI tree. Kept separate from main so tests
// can run subcommands in-process.
func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "argo-data",
		Usage:   "Import, download and inspect historical bar data",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "settings",
				Aliases: []string{"s"},
				Usage:   "Path to the settings document",
				Value:   "settings.json",
			},
		},
		Commands: []*cli.Command{
			newImportCommand(),
			newDownloadCommand(),
			newOverviewCommand(),
			newDeleteCommand(),
			newSchemaCommand(),
		},
	}
}

// loadEnvironment reads the settings document named by the root
// --settings flag and builds the logger it configures.
func loadEnvironment(cmd *cli.Command) (settings.Settings, *logger.Logger, error) {
	cfg, err := settings.Load(cmd.String("settings"))
	if err != nil {
		return settings.Settings{}, nil, err
	}

	appLogger, err := logger.NewLoggerWithLevel(cfg.Log.Level)
	if err != nil {
		return settings.Settings{}, nil, err
	}

	return cfg, appLogger, nil
}

// openStore opens the bar store configured by the settings document,
// localized to its timezone.
func openStore(cfg settings.Settings, appLogger *logger.Logger) (*store.DuckDBStore, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return store.NewBarStore(store.Config{Path: cfg.Database.Path}, loc, appLogger)
}

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
