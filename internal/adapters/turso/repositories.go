package turso

import (
	"database/sql"

	"github.com/emiliopalmerini/tonal/internal/ports"
)

// Repositories holds all turso repository implementations as port interfaces.
type Repositories struct {
	Patterns ports.PatternRepository
	Examples ports.ExamplePaletteRepository
}

// NewRepositories creates all turso repository implementations from a database connection.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Patterns: NewPatternRepository(db),
		Examples: NewExamplePaletteRepository(db),
	}
}
