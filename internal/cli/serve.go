package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dustlog/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP viewer",
	Long: `Serve usage reports, charts and the log tail over HTTP.

Endpoints:
  GET /health
  GET /api/tools?days=N
  GET /api/tools/{tool}/usage
  GET /tools/{tool}/chart.png
  GET /api/logs/tail?n=N

Examples:
  dustlog serve              # Port from DUSTLOG_PORT (8080)
  dustlog serve --port 3000  # Start on port 3000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from DUSTLOG_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewAppContext(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	port := app.Config.Server.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	h := web.NewHandler(app.Usage, app.LogRepo, app.Config.Usage.Tools, app.Window(cmd), app.Config.Tail.Count, app.Logger)
	srv := web.NewHTTPServer(web.Config{Addr: fmt.Sprintf(":%d", port)}, web.NewRouter(h, app.Logger))

	fmt.Fprintf(cmd.OutOrStdout(), "Starting server at http://localhost:%d\n", port)
	return web.Serve(ctx, srv, app.Config.Server.ShutdownTimeout, app.Logger)
}
