package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/user/countdown-timer-cli/db"
	"github.com/user/countdown-timer-cli/pkg/timeutil"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent countdown events",
	Long:  `Display the most recent set, start, reset and expired events recorded by the timer, newest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyLimit <= 0 {
			return fmt.Errorf("--limit must be positive, got %d", historyLimit)
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

		events, err := db.SelectRecentSessionEvents(database, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to query history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No history recorded.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Time\tSession\tEvent\tRemaining\tConfigured")
		fmt.Fprintln(w, "----\t-------\t-----\t---------\t----------")
		for _, e := range events {
			// First 8 characters of the uuid are enough to tell sessions apart
			session := e.SessionID
			if len(session) > 8 {
				session = session[:8]
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				session,
				e.Event,
				timeutil.FormatTime(e.RemainingSeconds),
				timeutil.FormatClock(e.ConfiguredSeconds),
			)
		}
		w.Flush()
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of events to show")
	rootCmd.AddCommand(historyCmd)
}
