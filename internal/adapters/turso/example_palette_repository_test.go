package turso_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/emiliopalmerini/tonal/internal/adapters/turso"
	"github.com/emiliopalmerini/tonal/internal/domain"
)

func TestExamplePaletteRepository_SaveAndGet(t *testing.T) {
	db := testDB(t)
	repo := turso.NewExamplePaletteRepository(db)
	ctx := context.Background()

	want := testExample("blue", 255)
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := repo.GetByName(ctx, "blue")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetByName returned nil")
	}
	if diff := cmp.Diff(want.Stops, got.Stops, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("stops mismatch (-want +got):\n%s", diff)
	}
	if got.ID != want.ID {
		t.Errorf("ID = %s, want %s", got.ID, want.ID)
	}
}

func TestExamplePaletteRepository_RejectsIncomplete(t *testing.T) {
	db := testDB(t)
	repo := turso.NewExamplePaletteRepository(db)
	ctx := context.Background()

	p := testExample("short", 30)
	p.Stops = p.Stops[:9]

	err := repo.Save(ctx, p)
	if !domain.IsKind(err, domain.KindCollection) {
		t.Errorf("expected collection error, got %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected nothing stored, got %d palettes", len(all))
	}
}

func TestExamplePaletteRepository_ListAndDelete(t *testing.T) {
	db := testDB(t)
	repo := turso.NewExamplePaletteRepository(db)
	ctx := context.Background()

	red := testExample("red", 25)
	green := testExample("green", 145)
	for _, p := range []*domain.AnalyzedPalette{red, green} {
		if err := repo.Save(ctx, p); err != nil {
			t.Fatalf("Save(%s) failed: %v", p.Name, err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 || all[0].Name != "green" || all[1].Name != "red" {
		t.Fatalf("unexpected list: %+v", all)
	}
	for _, p := range all {
		if len(p.Stops) != domain.StopCount {
			t.Errorf("%s has %d stops, want %d", p.Name, len(p.Stops), domain.StopCount)
		}
	}

	if err := repo.Delete(ctx, red.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err := repo.GetByName(ctx, "red")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if got != nil {
		t.Error("expected deleted palette to be gone")
	}
}
