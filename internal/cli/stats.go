package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dustlog/internal/pkg/tui/components"
	"github.com/emiliopalmerini/dustlog/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/dustlog/internal/usage"
	"github.com/emiliopalmerini/dustlog/internal/util"
)

var statsCmd = &cobra.Command{
	Use:   "stats [tool...]",
	Short: "Show runtime totals per tool",
	Long: `Show runtime totals per tool over the window without writing charts.

Examples:
  dustlog stats                # Configured tools
  dustlog stats --discover     # Every tool present in the log
  dustlog stats -d 7 Planer    # One tool, last week`,
	RunE: runStats,
}

var statsDiscover bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsDiscover, "discover", false, "Report every tool found in the log instead of the configured list")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := NewAppContext(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	tools := app.Tools(args)
	if statsDiscover && len(args) == 0 {
		tools, err = app.LogRepo.ListTools(ctx)
		if err != nil {
			return fmt.Errorf("failed to list tools: %w", err)
		}
	}

	window := app.Window(cmd)
	results := app.Usage.Report(ctx, tools, window)
	printStats(cmd.OutOrStdout(), results, window.Days)

	if n := usage.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d tools failed", n, len(results))
	}
	return nil
}

func printStats(w io.Writer, results []usage.Result, days int) {
	styles := theme.Default()
	sparkDays := min(days+1, 30)

	var total float64
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  dustlog Stats (last %d days)\n", days)
	fmt.Fprintf(w, "  ==========================\n")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-22s %8s  %-10s %6s  %s\n", "Tool", "Hours", "Since", "Events", "Daily")
	fmt.Fprintf(w, "  %-22s %8s  %-10s %6s  %s\n", "----", "-----", "-----", "------", "-----")

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "  %-22s %s\n", r.Tool, styles.Error.Render("error: "+r.Err.Error()))
			continue
		}
		u := r.Usage
		total += u.TotalHours
		spark := styles.Sparkline.Render(components.RenderSparkline(u.DailyHours(sparkDays)))
		fmt.Fprintf(w, "  %-22s %8s  %-10s %6d  %s\n",
			r.Tool, util.FormatHours(u.TotalHours), util.FormatDateISO(u.Since), u.Events, spark)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Total:                 %8s hours\n", util.FormatHours(total))
	fmt.Fprintln(w)
}
