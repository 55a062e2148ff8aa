package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/emiliopalmerini/tonal/internal/migrate"
)

func TestMigrate_UpToDate(t *testing.T) {
	testEnv(t)
	testDB(t)

	out := mustRun(t, "migrate")
	if !strings.Contains(out, "No pending migrations") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestMigrate_DownAndUp(t *testing.T) {
	testEnv(t)
	db := testDB(t)

	out := mustRun(t, "migrate", "0")
	if !strings.Contains(out, "Migrated to version 0") {
		t.Errorf("unexpected output:\n%s", out)
	}
	version, _, err := migrate.New(db, nil).CurrentVersion(context.Background())
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("version = %d, want 0", version)
	}

	out = mustRun(t, "migrate")
	if !strings.Contains(out, "Applied 2 migration(s)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestMigrate_InvalidVersion(t *testing.T) {
	testEnv(t)
	testDB(t)

	if _, _, err := runCLI(t, "migrate", "latest"); err == nil {
		t.Error("expected error for a non-numeric version")
	}
}
