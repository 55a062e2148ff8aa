package turso_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/emiliopalmerini/tonal/internal/adapters/turso"
	"github.com/emiliopalmerini/tonal/internal/migrate"
)

// testTursoDB starts a libsql-server container. It is slow and needs Docker,
// so it only runs when TONAL_TEST_TURSO=1.
func testTursoDB(t *testing.T) *turso.DB {
	t.Helper()

	if os.Getenv("TONAL_TEST_TURSO") != "1" {
		t.Skip("set TONAL_TEST_TURSO=1 to run against a libsql-server container")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "ghcr.io/tursodatabase/libsql-server:latest",
		ExposedPorts: []string{"8080/tcp"},
		WaitingFor:   wait.ForHTTP("/health").WithPort("8080/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Turso container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	mappedPort, err := container.MappedPort(ctx, "8080")
	if err != nil {
		t.Fatalf("Failed to get mapped port: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	db, err := turso.NewDB(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()), "")
	if err != nil {
		t.Fatalf("Failed to connect to Turso: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrate.RunAll(ctx, db.DB); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestTurso_PatternRoundTrip(t *testing.T) {
	db := testTursoDB(t)
	repos := turso.NewRepositories(db.DB)
	ctx := context.Background()

	p := testPattern("remote")
	if err := repos.Patterns.Save(ctx, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := repos.Patterns.GetByName(ctx, "remote")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if got == nil || got.Transforms != p.Transforms {
		t.Errorf("round trip mismatch: %+v", got)
	}

	ex := testExample("remote-blue", 255)
	if err := repos.Examples.Save(ctx, ex); err != nil {
		t.Fatalf("Save example failed: %v", err)
	}
	list, err := repos.Examples.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 example palette, got %d", len(list))
	}
}

func TestNewDB_Local(t *testing.T) {
	path := t.TempDir() + "/tonal.db"
	db, err := turso.NewDB("file:"+path, "")
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := migrate.RunAll(context.Background(), db.DB); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}

	var fk int
	if err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatalf("PRAGMA failed: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestNewDB_RequiresURL(t *testing.T) {
	if _, err := turso.NewDB("", ""); err == nil {
		t.Error("expected error for empty URL")
	}
}
