package cli

import (
	"context"
	"testing"

	"github.com/emiliopalmerini/tonal/internal/ports"
)

func TestAppContextFieldTypes(t *testing.T) {
	var a AppContext
	var _ ports.PatternRepository = a.Patterns       //nolint:staticcheck
	var _ ports.ExamplePaletteRepository = a.Examples //nolint:staticcheck
	var _ ports.ColorSpace = a.Space                  //nolint:staticcheck
	var _ ports.PaletteSource = a.Loader              //nolint:staticcheck
	var _ ports.MetricsExporter = a.Metrics           //nolint:staticcheck
}

func TestAppContextClose_NilDB(t *testing.T) {
	a := &AppContext{}
	if err := a.Close(context.Background()); err != nil {
		t.Errorf("Close() on empty context should not error, got: %v", err)
	}
}

func TestNewAppContext_UsesOverride(t *testing.T) {
	testEnv(t)
	db := testDB(t)

	a, err := NewAppContext(context.Background(), storeRequired)
	if err != nil {
		t.Fatalf("NewAppContext failed: %v", err)
	}
	defer func() { _ = a.Close(context.Background()) }()

	if a.DB == nil || a.DB.DB != db {
		t.Error("expected the override database")
	}
	if a.Patterns == nil || a.Examples == nil {
		t.Error("expected repositories to be wired")
	}
	if a.ownsDB {
		t.Error("the override database must not be owned")
	}
}

func TestNewAppContext_InvalidConfig(t *testing.T) {
	testEnv(t)
	t.Setenv("TONAL_WORKERS", "0")

	if _, err := NewAppContext(context.Background(), storeOptional); err == nil {
		t.Error("expected error for zero workers")
	}
}
