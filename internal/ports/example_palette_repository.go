package ports

import (
	"context"

	"github.com/emiliopalmerini/tonal/internal/domain"
)

type ExamplePaletteRepository interface {
	Save(ctx context.Context, palette *domain.AnalyzedPalette) error
	GetByName(ctx context.Context, name string) (*domain.AnalyzedPalette, error)
	List(ctx context.Context) ([]*domain.AnalyzedPalette, error)
	Delete(ctx context.Context, id string) error
}
