package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/user/countdown-timer-cli/config"
	"github.com/user/countdown-timer-cli/db"
)

var Version = "0.1.0"

var (
	// configPath overrides the default config file location
	configPath string
	// dbPath overrides the database location from the config file
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "countdown-timer-cli",
	Short: "A countdown timer for the terminal",
	Long: `countdown-timer-cli counts down from a configured duration in a full-screen
terminal view.

Features:
  - Set hours, minutes and seconds, then start and reset the countdown
  - Amber display under five minutes, red once time is up
  - Named presets and a history of countdown sessions stored in SQLite`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "countdown-timer-cli version %s\n", Version)
	},
}

// loadConfig reads the config file named by --config, or the default one.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Default(), fmt.Errorf("failed to resolve config path: %w", err)
		}
	}
	return config.Load(path)
}

// openDB opens the database named by --db, the config file, or the default location.
func openDB(cfg config.Config) (*sql.DB, error) {
	path := cfg.DBPath
	if dbPath != "" {
		path = dbPath
	}

	var database *sql.DB
	var err error
	if path == "" {
		database, err = db.Open()
	} else {
		database, err = db.OpenPath(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// newLogger returns a logger writing to path at level. The TUI owns the
// terminal, so an empty path discards logs rather than printing them.
func newLogger(path string, level slog.Level) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}

	f, err := tea.LogToFile(path, "countdown")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f.Close, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/countdown-timer-cli/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default ~/.local/share/countdown-timer-cli/data.db)")

	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
