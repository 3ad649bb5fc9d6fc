package cmd

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/user/countdown-timer-cli/db"
	"github.com/user/countdown-timer-cli/pkg/timeutil"
	"github.com/user/countdown-timer-cli/tui/forms"
)

var (
	presetDeleteYes bool
	presetAddForce  bool
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage saved durations",
	Long:  `Add, list, and delete named countdown durations. Load one with "run --preset NAME" or ":preset NAME" in the timer.`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all presets",
	Long:  `Display all saved presets with their durations.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		presets, err := db.SelectPresets(database)
		if err != nil {
			return fmt.Errorf("failed to query presets: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(presets) == 0 {
			fmt.Fprintln(out, "No presets found.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Name\tDuration\tSeconds")
		fmt.Fprintln(w, "----\t--------\t-------")
		for _, p := range presets {
			fmt.Fprintf(w, "%s\t%s\t%d\n", p.Name, timeutil.FormatClock(p.TotalSeconds), p.TotalSeconds)
		}
		w.Flush()

		fmt.Fprintf(out, "\n%d preset(s) found.\n", len(presets))
		return nil
	},
}

var presetAddCmd = &cobra.Command{
	Use:   "add [name] [duration]",
	Short: "Add a new preset",
	Long: `Add a named countdown duration. The duration is HH:MM:SS, MM:SS or seconds.
Without arguments a form asks for both. With --force an existing preset of the
same name gets the new duration.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected a name and a duration, or no arguments")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		result := &forms.PresetFormResult{}
		if len(args) == 2 {
			result.Name, result.Duration = args[0], args[1]
		} else if err := forms.NewPresetForm(result).Run(); err != nil {
			return fmt.Errorf("preset form: %w", err)
		}

		name := strings.TrimSpace(result.Name)
		if name == "" {
			return errors.New("preset name is required")
		}
		total, err := result.TotalSeconds()
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if presetAddForce {
			if err := db.UpsertPreset(database, name, total); err != nil {
				return fmt.Errorf("failed to save preset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Preset saved: name '%s' (%s)\n", name, timeutil.FormatClock(total))
			return nil
		}

		id, err := db.InsertPreset(database, name, total)
		if err != nil {
			if isUniqueConstraintError(err) {
				return fmt.Errorf("preset '%s' already exists", name)
			}
			return fmt.Errorf("failed to add preset: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Preset added: ID %d, name '%s' (%s)\n", id, name, timeutil.FormatClock(total))
		return nil
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a preset",
	Long:  `Delete a saved preset by name. Asks for confirmation unless --yes is given.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if !presetDeleteYes {
			confirmed := false
			if err := forms.NewConfirmDeleteForm(name, &confirmed).Run(); err != nil {
				return fmt.Errorf("confirm form: %w", err)
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := db.DeletePreset(database, name); err != nil {
			if errors.Is(err, db.ErrPresetNotFound) {
				return fmt.Errorf("preset '%s' not found", name)
			}
			return fmt.Errorf("failed to delete preset: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Preset '%s' deleted.\n", name)
		return nil
	},
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	// SQLite unique constraint error contains "UNIQUE constraint failed"
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}

func init() {
	presetAddCmd.Flags().BoolVarP(&presetAddForce, "force", "f", false, "replace an existing preset")
	presetDeleteCmd.Flags().BoolVarP(&presetDeleteYes, "yes", "y", false, "delete without asking")

	// Build command tree
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetAddCmd)
	presetCmd.AddCommand(presetDeleteCmd)
	rootCmd.AddCommand(presetCmd)
}
