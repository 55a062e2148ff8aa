package ports

import (
	"context"

	"github.com/emiliopalmerini/tonal/internal/domain"
)

// PaletteSource loads example palettes from outside the process.
type PaletteSource interface {
	Load(ctx context.Context, path string) ([]domain.AnalyzedPalette, error)
}
