package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dustlog/internal/domain"
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print the most recent log rows",
	Long: `Print the N most recent rows of the log, oldest first.

Examples:
  dustlog tail         # DUSTLOG_TAIL_COUNT rows
  dustlog tail -n 20   # Last 20 rows`,
	Args: cobra.NoArgs,
	RunE: runTail,
}

var tailCount int

func init() {
	rootCmd.AddCommand(tailCmd)
	tailCmd.Flags().IntVarP(&tailCount, "lines", "n", 0, "Number of rows (default from DUSTLOG_TAIL_COUNT)")
}

func runTail(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := NewAppContext(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	n := app.Config.Tail.Count
	if cmd.Flags().Changed("lines") {
		n = tailCount
	}

	rows, err := app.LogRepo.Tail(ctx, n)
	if err != nil {
		return err
	}

	printRows(cmd.OutOrStdout(), rows)
	return nil
}

func printRows(w io.Writer, rows []domain.LogRow) {
	for _, r := range rows {
		fmt.Fprintf(w, "%6d  %s  %-24s %-20s %s\n", r.ID, r.Timestamp, r.Topic, r.Tool, r.State)
	}
}
