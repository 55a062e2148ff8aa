package ports

import (
	"context"

	"github.com/emiliopalmerini/tonal/internal/domain"
)

// PatternRepository persists transformation patterns. Getters return nil, nil
// when nothing matches.
type PatternRepository interface {
	Save(ctx context.Context, pattern *domain.Pattern) error
	GetByID(ctx context.Context, id string) (*domain.Pattern, error)
	GetByName(ctx context.Context, name string) (*domain.Pattern, error)
	List(ctx context.Context) ([]*domain.Pattern, error)
	Delete(ctx context.Context, id string) error
}
