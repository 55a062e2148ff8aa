package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/tonal/internal/infrastructure/config"
	"github.com/emiliopalmerini/tonal/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Apply database migrations",
	Long: `Apply pending migrations, or migrate up or down to the given version.
Other commands apply pending migrations automatically.

Examples:
  tonal migrate      # Apply all pending migrations
  tonal migrate 1    # Migrate to version 1
  tonal migrate 0    # Roll everything back`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	target := -1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("invalid version %q", args[0])
		}
		target = v
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, owned, err := openDB(cfg)
	if err != nil {
		return err
	}
	if owned {
		defer db.Close()
	}

	out := cmd.OutOrStdout()
	m := migrate.New(db.DB, out)

	if target < 0 {
		n, err := m.Up(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintln(out, "No pending migrations")
			return nil
		}
		fmt.Fprintf(out, "Applied %d migration(s)\n", n)
		return nil
	}

	if err := m.To(ctx, target); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated to version %d\n", target)
	return nil
}
