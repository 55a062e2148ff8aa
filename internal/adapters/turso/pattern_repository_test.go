package turso_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/emiliopalmerini/tonal/internal/adapters/turso"
	"github.com/emiliopalmerini/tonal/internal/domain"
)

func TestPatternRepository_SaveAndGet(t *testing.T) {
	db := testDB(t)
	repo := turso.NewPatternRepository(db)
	ctx := context.Background()

	want := testPattern("brand")
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want.ID == "" {
		t.Fatal("Save did not assign an ID")
	}
	if want.CreatedAt.IsZero() {
		t.Fatal("Save did not assign CreatedAt")
	}

	got, err := repo.GetByName(ctx, "brand")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetByName returned nil")
	}

	opts := cmp.Options{
		cmpopts.EquateApprox(0, 1e-12),
		cmpopts.IgnoreFields(domain.Pattern{}, "CreatedAt"),
	}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("pattern mismatch (-want +got):\n%s", diff)
	}
	if !got.CreatedAt.Equal(want.CreatedAt.Truncate(1e9)) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}

	byID, err := repo.GetByID(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID == nil || byID.Name != "brand" {
		t.Errorf("GetByID = %+v, want pattern brand", byID)
	}
}

func TestPatternRepository_GetMissing(t *testing.T) {
	db := testDB(t)
	repo := turso.NewPatternRepository(db)
	ctx := context.Background()

	got, err := repo.GetByName(ctx, "nope")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestPatternRepository_SaveReplacesByName(t *testing.T) {
	db := testDB(t)
	repo := turso.NewPatternRepository(db)
	ctx := context.Background()

	first := testPattern("brand")
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := testPattern("brand")
	second.Metadata.Confidence = 0.5
	second.Transforms[0].LightnessMultiplier = 1.9
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 pattern after replace, got %d", len(all))
	}
	if all[0].ID != second.ID {
		t.Errorf("ID = %s, want %s", all[0].ID, second.ID)
	}
	if all[0].Metadata.Confidence != 0.5 {
		t.Errorf("Confidence = %f, want 0.5", all[0].Metadata.Confidence)
	}
	if all[0].Transforms[0].LightnessMultiplier != 1.9 {
		t.Errorf("stop 100 lightness = %f, want 1.9", all[0].Transforms[0].LightnessMultiplier)
	}
}

func TestPatternRepository_ListAndDelete(t *testing.T) {
	db := testDB(t)
	repo := turso.NewPatternRepository(db)
	ctx := context.Background()

	for _, name := range []string{"warm", "cool", "neutral"} {
		if err := repo.Save(ctx, testPattern(name)); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var names []string
	for _, p := range all {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"cool", "neutral", "warm"}, names); diff != "" {
		t.Errorf("List names mismatch (-want +got):\n%s", diff)
	}

	if err := repo.Delete(ctx, all[0].ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	gone, err := repo.GetByName(ctx, "cool")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if gone != nil {
		t.Error("expected deleted pattern to be gone")
	}

	var stops int
	if err := db.QueryRow(`SELECT COUNT(*) FROM pattern_stops WHERE pattern_id = ?`, all[0].ID).Scan(&stops); err != nil {
		t.Fatalf("count stops: %v", err)
	}
	if stops != 0 {
		t.Errorf("expected stops deleted with pattern, %d left", stops)
	}
}

func TestPatternRepository_IncompleteStops(t *testing.T) {
	db := testDB(t)
	repo := turso.NewPatternRepository(db)
	ctx := context.Background()

	p := testPattern("broken")
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := db.Exec(`DELETE FROM pattern_stops WHERE pattern_id = ? AND position = 700`, p.ID); err != nil {
		t.Fatalf("delete stop: %v", err)
	}

	_, err := repo.GetByName(ctx, "broken")
	if !domain.IsKind(err, domain.KindCollection) {
		t.Errorf("expected collection error, got %v", err)
	}
}
