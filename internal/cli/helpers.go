package cli

import (
	"context"
	"fmt"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/ports"
)

func stopFlag(v int) (domain.StopPosition, error) {
	stop := domain.StopPosition(v)
	if _, err := domain.PositionToIndex(stop); err != nil {
		return 0, err
	}
	return stop, nil
}

// loadPalettes reads every path through src and concatenates the results.
func loadPalettes(ctx context.Context, src ports.PaletteSource, paths []string) ([]domain.AnalyzedPalette, error) {
	var all []domain.AnalyzedPalette
	for _, path := range paths {
		ps, err := src.Load(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load palettes: %w", err)
		}
		all = append(all, ps...)
	}
	return all, nil
}
