package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-data/internal/logger"
	"github.com/rxtech-lab/argo-data/internal/settings"
	"github.com/rxtech-lab/argo-data/internal/store"
	"github.com/urfave/cli/v3"
)

// browseAction opens the configured store and runs the browser UI.
func browseAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := settings.Load(cmd.String("settings"))
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Log at error level only so zap lines do not tear the UI
	appLogger, err := logger.NewLoggerWithLevel("error")
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	barStore, err := store.NewBarStore(store.Config{Path: cfg.Database.Path}, loc, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open bar store: %w", err)
	}
	defer barStore.Close()

	program := tea.NewProgram(NewModel(barStore), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "browse",
		Usage: "Browse stored bar series in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "settings",
				Aliases: []string{"s"},
				Usage:   "Path to the settings document",
				Value:   "settings.json",
			},
		},
		Action: browseAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
