package cmd

import (
	"fmt"
	"log/slog"

	"github.com/abhisek/currimap/internal/app"
	"github.com/abhisek/currimap/internal/logging"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	// The TUI owns the terminal, so logs go to a file or nowhere.
	logger := logging.Discard()
	if cfg.LogFile != "" {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return err
		}
		defer f.Close()
		level, _ := logging.ParseLevel(cfg.LogLevel)
		logger = logging.New(f, level)
	}
	slog.SetDefault(logger)

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	opts := app.Options{
		Catalog: ws.catalog,
		Service: ws.svc,
		History: ws.store.History(),
	}
	if cmd.Flags().Changed("curriculum") {
		cur, err := ws.curriculum()
		if err != nil {
			return err
		}
		opts.Open = cur
	}

	logger.Info("starting tui", "curricula", ws.catalog.Len())
	if err := app.Run(opts); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
