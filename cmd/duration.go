package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/user/countdown-timer-cli/pkg/timeutil"
)

var formatCmd = &cobra.Command{
	Use:   "format <seconds>",
	Short: "Print a number of seconds as hh:mm:ss",
	Long:  `Print a total number of seconds as zero-padded hours, minutes and seconds. Negative totals print as 00:00:00.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		total, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid seconds %q: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), timeutil.FormatClock(total))
		return nil
	},
}

var flattenCmd = &cobra.Command{
	Use:   "flatten <hours> <minutes> <seconds>",
	Short: "Print hours, minutes and seconds as total seconds",
	Long:  `Print the total number of seconds for the given hours, minutes and seconds. Minutes and seconds above 59 are allowed.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		total, err := timeutil.ParseHMS(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(flattenCmd)
}
