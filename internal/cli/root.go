package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dustlog",
	Short: "Tool runtime charts from the dust collection log",
	Long: `dustlog reads the ON/OFF log written by the shop's dust collection
sensors and reports how long each tool has been running.

Configuration comes from DUSTLOG_* environment variables
(DUSTLOG_DATABASE_URL, DUSTLOG_WINDOW_DAYS, DUSTLOG_TOOLS, ...).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if windowDays < 0 {
			return fmt.Errorf("--days must not be negative, got %d", windowDays)
		}
		return nil
	},
}

// Flags
var windowDays int

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&windowDays, "days", "d", 0, "Trailing window in days (default from DUSTLOG_WINDOW_DAYS)")
}
