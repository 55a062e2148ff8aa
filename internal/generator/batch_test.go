package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/emiliopalmerini/tonal/internal/adapters/colorful"
	"github.com/emiliopalmerini/tonal/internal/domain"
)

func TestBatch_PartialFailure(t *testing.T) {
	g := New(colorful.NewSpace(), WithWorkers(2))
	pat := testPattern(t)

	reqs := []Request{
		{Name: "blue", Anchor: domain.NewColor(0.55, 0.15, 255), AnchorStop: domain.Stop500, Pattern: pat},
		{Name: "broken", Anchor: domain.NewColor(0.55, 0.15, 255), AnchorStop: 550, Pattern: pat},
		{Name: "red", Anchor: domain.NewColor(0.6, 0.18, 25), AnchorStop: domain.Stop600, Pattern: pat},
	}

	results, err := g.Batch(context.Background(), reqs)
	if err != nil {
		t.Fatalf("Batch returned error for partial failure: %v", err)
	}
	if len(results) != len(reqs) {
		t.Fatalf("got %d results, want %d", len(results), len(reqs))
	}
	for i, r := range results {
		if r.Request.Name != reqs[i].Name {
			t.Errorf("result %d is for %q, want %q", i, r.Request.Name, reqs[i].Name)
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("unexpected failures: %v, %v", results[0].Err, results[2].Err)
	}
	if results[1].Err == nil {
		t.Error("expected failure for non-canonical anchor stop")
	}
	if len(results[2].Palette.Stops) != domain.StopCount {
		t.Errorf("red palette has %d stops", len(results[2].Palette.Stops))
	}
	if Failed(results) != 1 {
		t.Errorf("Failed = %d, want 1", Failed(results))
	}
}

func TestBatch_AllFailed(t *testing.T) {
	g := New(colorful.NewSpace())
	reqs := []Request{
		{Name: "a", Anchor: domain.NewColor(0.5, 0.1, 0), AnchorStop: domain.Stop500},
		{Name: "b", Anchor: domain.NewColor(0.5, 0.1, 0), AnchorStop: domain.Stop500},
	}

	results, err := g.Batch(context.Background(), reqs)
	if !errors.Is(err, ErrAllFailed) {
		t.Fatalf("expected ErrAllFailed, got %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestBatch_Empty(t *testing.T) {
	results, err := New(colorful.NewSpace()).Batch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}
