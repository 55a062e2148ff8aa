package cli

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	_ "github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/tonal/internal/migrate"
)

const bluePalette = `{
  "name": "blue",
  "stops": {
    "100": "#EBF1FA", "200": "#C5D7F2", "300": "#9DBCEA", "400": "#6E9BDF",
    "500": "#2D72D2", "600": "#215DB0", "700": "#184A90", "800": "#10386E",
    "900": "#0A2850", "1000": "#061A35"
  }
}`

const redPalette = `{
  "name": "red",
  "stops": {
    "100": "#FDEBEC", "200": "#F9C9CC", "300": "#F4A3A8", "400": "#EC7379",
    "500": "#E5484D", "600": "#C93C41", "700": "#A53035", "800": "#7E2428",
    "900": "#58181B", "1000": "#3A0F11"
  }
}`

// testDB creates an in-memory database with all migrations applied and
// points the CLI at it for the duration of the test.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := migrate.RunAll(context.Background(), db); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	testDBOverride = db
	t.Cleanup(func() {
		testDBOverride = nil
		_ = db.Close()
	})
	return db
}

// testEnv isolates the CLI from the caller's TONAL_* environment.
func testEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TONAL_DATABASE_URL", "file::memory:")
	t.Setenv("TONAL_LOG_LEVEL", "error")
	t.Setenv("TONAL_WORKERS", "2")
	t.Setenv("TONAL_DEFAULT_PATTERN", "default")
	t.Setenv("TONAL_OTEL_ENABLED", "false")
	t.Setenv("TONAL_AUTH_TOKEN", "")
	_ = os.Unsetenv("TONAL_AUTH_TOKEN")
}

// resetFlags restores every flag to its default so commands can run more
// than once in the same process.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command with args and returns what it wrote to
// stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// mustRun is runCLI that fails the test on error.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("tonal %s failed: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
