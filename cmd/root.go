package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/currimap/internal/config"
	"github.com/abhisek/currimap/internal/logging"
	"github.com/abhisek/currimap/internal/store"
	"github.com/spf13/cobra"
)

// cfg is the effective configuration, resolved before any command runs.
var cfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "currimap",
	Short: "Curriculum progress tracker",
	Long: "currimap — track course status across a university curriculum and see which\n" +
		"courses you can take next.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/currimap/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides CURRIMAP_DB env var)")
	pf.String("curricula", "", "Directory of curriculum documents (default: built-in curricula)")
	pf.StringP("curriculum", "c", "", "Curriculum ID to operate on")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Write logs to this file while the TUI is running")

	rootCmd.AddCommand(curriculaCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(availableCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup layers flags over env, config file and defaults, then installs the
// default logger.
func setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(path, os.Getenv)
	if err != nil {
		return err
	}
	loaded.Merge(flagConfig(cmd))
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logging.New(cmd.ErrOrStderr(), level))
	return nil
}

// flagConfig returns the settings given explicitly on the command line.
func flagConfig(cmd *cobra.Command) *config.Config {
	get := func(name string) string {
		if !cmd.Flags().Changed(name) {
			return ""
		}
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return &config.Config{
		DBPath:       get("db"),
		CurriculaDir: get("curricula"),
		Curriculum:   get("curriculum"),
		LogLevel:     get("log-level"),
		LogFile:      get("log-file"),
	}
}

// resolveDBPath returns the configured database path (--db flag, then
// CURRIMAP_DB, then the config file), falling back to the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
