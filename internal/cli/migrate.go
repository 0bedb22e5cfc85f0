package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dustlog/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Create or roll back the logs schema",
	Long: `Create the logs table on an empty database, or move the schema to a
specific version. Production rows are written by the shop's logger; this
is for local and test databases.

Examples:
  dustlog migrate      # Run all pending migrations
  dustlog migrate 0    # Roll back everything`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	target := -1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("invalid version number: %s", args[0])
		}
		target = v
	}

	app, err := NewAppContext(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	m := migrate.New(app.Conn, app.Logger)
	applied, err := m.MigrateTo(ctx, target)
	if err != nil {
		return err
	}

	version, _, err := m.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	out := cmd.OutOrStdout()
	if applied == 0 {
		fmt.Fprintf(out, "Already at version %d\n", version)
		return nil
	}
	fmt.Fprintf(out, "Migrated to version %d (%d migrations applied)\n", version, applied)
	return nil
}
