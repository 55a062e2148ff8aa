package turso_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/migrate"
)

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

	ctx := context.Background()
	if err := migrate.RunAll(ctx, db); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testPattern(name string) *domain.Pattern {
	p := &domain.Pattern{
		Name:          name,
		ReferenceStop: domain.Stop500,
		Metadata:      domain.PatternMetadata{SourceCount: 3, Confidence: 0.92},
	}
	for i, stop := range domain.AllStops {
		x := stop.Normalized()
		p.Transforms[i] = domain.StopTransform{
			LightnessMultiplier: 1.6 - x,
			ChromaMultiplier:    0.3 + float64(i)*0.1,
			HueShiftDegrees:     float64(i) - 4,
		}
	}
	return p
}

func testExample(name string, hue float64) *domain.AnalyzedPalette {
	p := &domain.AnalyzedPalette{Name: name}
	for i, stop := range domain.AllStops {
		p.Stops = append(p.Stops, domain.PaletteStop{
			Position: stop,
			Color:    domain.NewColor(0.95-float64(i)*0.08, 0.02+float64(i)*0.01, hue),
		})
	}
	return p
}
