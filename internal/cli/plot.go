package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dustlog/internal/usage"
	"github.com/emiliopalmerini/dustlog/internal/util"
)

var plotCmd = &cobra.Command{
	Use:   "plot [tool...]",
	Short: "Render usage charts per tool",
	Long: `Render one PNG chart per tool showing its ON/OFF state over the window
and the cumulative hours it has been running.

Charts are written to DUSTLOG_PLOT_DIR as <tool>_tool_use_<date>.png.
A tool that fails does not stop the others; the command exits non-zero
once every tool has been processed.

Examples:
  dustlog plot                      # All configured tools, default window
  dustlog plot Planer "Miter Saw"   # Selected tools
  dustlog plot --days 7 --out /tmp  # Last week into /tmp`,
	RunE: runPlot,
}

var plotOutDir string

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVarP(&plotOutDir, "out", "o", "", "Output directory (default from DUSTLOG_PLOT_DIR)")
}

func runPlot(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := NewAppContext(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	dir := app.Config.Usage.PlotDir
	if plotOutDir != "" {
		dir = plotOutDir
	}

	window := app.Window(cmd)
	results, err := app.Usage.Plot(ctx, app.Tools(args), window, dir)
	if err != nil {
		return err
	}

	printPlotResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, window.Days)

	if n := usage.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d tools failed", n, len(results))
	}
	return nil
}

func printPlotResults(out, errOut io.Writer, results []usage.Result, days int) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", r.Tool, r.Err)
			continue
		}
		if r.Usage.Events == 0 {
			fmt.Fprintf(out, "No usable events for %s in the last %d days.\n", r.Tool, days)
		} else {
			fmt.Fprintf(out, "Since %s, the %s has run for %s hours.\n",
				util.FormatTimestamp(r.Usage.Since), r.Tool, util.FormatHours(r.Usage.TotalHours))
		}
		if r.Chart != "" {
			fmt.Fprintf(out, "  chart: %s\n", r.Chart)
		}
	}
}
