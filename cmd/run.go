package cmd

import (
	"database/sql"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/user/countdown-timer-cli/config"
	"github.com/user/countdown-timer-cli/db"
	"github.com/user/countdown-timer-cli/pkg/timeutil"
	"github.com/user/countdown-timer-cli/tui"
	"github.com/user/countdown-timer-cli/tui/forms"
)

var (
	runHours     int
	runMinutes   int
	runSeconds   int
	runDuration  string
	runPreset    string
	runPrompt    bool
	runLogFile   string
	runLogLevel  string
	runNoHistory bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the countdown timer",
	Long: `Open the countdown timer. The duration comes from the config file (one hour by
default) unless --hours/--minutes/--seconds, --duration, --preset or --prompt is given.

Press S to start, R to reset, E to edit the duration and ? for help.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := applyRunFlags(cmd, &cfg); err != nil {
			return err
		}

		level, err := config.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger, closeLog, err := newLogger(cfg.LogFile, level)
		if err != nil {
			return err
		}
		defer closeLog()

		// The timer works without a database; only presets and history need one
		database, dbErr := openDB(cfg)
		if dbErr != nil {
			logger.Warn("database unavailable", "err", dbErr)
		} else {
			defer database.Close()
		}

		d, err := resolveDuration(cmd, cfg.Duration, database, dbErr)
		if err != nil {
			return err
		}

		var programOpts []tea.ProgramOption
		if cfg.AltScreen {
			programOpts = append(programOpts, tea.WithAltScreen())
		}

		logger.Info("starting timer", "configured", timeutil.FormatClock(d.Total()), "history", cfg.History)
		return tui.Run(tui.Options{
			Configured: d,
			Logger:     logger,
			DB:         database,
			History:    cfg.History,
		}, programOpts...)
	},
}

// applyRunFlags overlays explicitly set flags on the config file settings.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.LogFile = runLogFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = runLogLevel
	}
	if runNoHistory {
		cfg.History = false
	}
	return cfg.Validate()
}

// resolveDuration picks the configured duration: explicit fields, then
// --duration, then --preset, then the config file value, optionally edited
// with --prompt.
func resolveDuration(cmd *cobra.Command, fallback timeutil.Duration, database *sql.DB, dbErr error) (timeutil.Duration, error) {
	flags := cmd.Flags()
	d := fallback

	switch {
	case flags.Changed("hours") || flags.Changed("minutes") || flags.Changed("seconds"):
		fields, err := flagDuration(runHours, runMinutes, runSeconds)
		if err != nil {
			return d, err
		}
		d = fields

	case runDuration != "":
		total, err := timeutil.ParseTimeToSeconds(runDuration)
		if err != nil {
			return d, fmt.Errorf("invalid --duration: %w", err)
		}
		d = timeutil.Split(total)

	case runPreset != "":
		if dbErr != nil {
			return d, dbErr
		}
		p, err := db.SelectPresetByName(database, runPreset)
		if err != nil {
			return d, err
		}
		d = timeutil.Split(p.TotalSeconds)
	}

	if runPrompt {
		result := forms.NewDurationFormResult(d)
		if err := forms.NewDurationForm(result).Run(); err != nil {
			return d, fmt.Errorf("duration prompt: %w", err)
		}
		prompted, err := result.Duration()
		if err != nil {
			return d, err
		}
		if err := prompted.Validate(); err != nil {
			return d, fmt.Errorf("duration prompt: %w", err)
		}
		return prompted, nil
	}
	return d, nil
}

// flagDuration builds a duration from --hours/--minutes/--seconds.
func flagDuration(hours, minutes, seconds int) (timeutil.Duration, error) {
	d := timeutil.Duration{Hours: hours, Minutes: minutes, Seconds: seconds}
	if err := d.Validate(); err != nil {
		return timeutil.Duration{}, fmt.Errorf("invalid --%w", err)
	}
	return d, nil
}

func init() {
	runCmd.Flags().IntVar(&runHours, "hours", 0, "countdown hours")
	runCmd.Flags().IntVar(&runMinutes, "minutes", 0, "countdown minutes")
	runCmd.Flags().IntVar(&runSeconds, "seconds", 0, "countdown seconds")
	runCmd.Flags().StringVarP(&runDuration, "duration", "d", "", "countdown duration as HH:MM:SS, MM:SS or seconds")
	runCmd.Flags().StringVarP(&runPreset, "preset", "p", "", "load the duration from a saved preset")
	runCmd.Flags().BoolVar(&runPrompt, "prompt", false, "ask for the duration before starting")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "write logs to this file")
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	runCmd.Flags().BoolVar(&runNoHistory, "no-history", false, "do not record this session")

	runCmd.MarkFlagsMutuallyExclusive("duration", "preset")
	runCmd.MarkFlagsMutuallyExclusive("duration", "hours")
	runCmd.MarkFlagsMutuallyExclusive("duration", "minutes")
	runCmd.MarkFlagsMutuallyExclusive("duration", "seconds")
	runCmd.MarkFlagsMutuallyExclusive("preset", "hours")
	runCmd.MarkFlagsMutuallyExclusive("preset", "minutes")
	runCmd.MarkFlagsMutuallyExclusive("preset", "seconds")

	rootCmd.AddCommand(runCmd)
}
