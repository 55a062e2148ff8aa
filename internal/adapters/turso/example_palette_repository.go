package turso

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/util"
)

type ExamplePaletteRepository struct {
	db *sql.DB
}

func NewExamplePaletteRepository(db *sql.DB) *ExamplePaletteRepository {
	return &ExamplePaletteRepository{db: db}
}

// Save stores palette, replacing any example palette with the same name.
func (r *ExamplePaletteRepository) Save(ctx context.Context, palette *domain.AnalyzedPalette) error {
	if err := palette.Validate(); err != nil {
		return err
	}
	if palette.ID == "" {
		palette.ID = uuid.NewString()
	}
	if palette.CreatedAt.IsZero() {
		palette.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteExamples(ctx, tx, `name = ? OR id = ?`, palette.Name, palette.ID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO example_palettes (id, name, created_at) VALUES (?, ?, ?)`,
		palette.ID, palette.Name, palette.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert example palette: %w", err)
	}

	for _, s := range palette.Stops {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO example_palette_stops (palette_id, position, l, c, h, alpha)
			VALUES (?, ?, ?, ?, ?, ?)
		`, palette.ID, int(s.Position), s.Color.L, s.Color.C, domain.NormalizeHue(s.Color.H), s.Color.Alpha)
		if err != nil {
			return fmt.Errorf("failed to insert example palette stop %d: %w", s.Position, err)
		}
	}

	return tx.Commit()
}

func (r *ExamplePaletteRepository) GetByName(ctx context.Context, name string) (*domain.AnalyzedPalette, error) {
	return withRetry(ctx, readRetries, func() (*domain.AnalyzedPalette, error) {
		return r.getByName(ctx, name)
	})
}

func (r *ExamplePaletteRepository) getByName(ctx context.Context, name string) (*domain.AnalyzedPalette, error) {
	var (
		p         domain.AnalyzedPalette
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM example_palettes WHERE name = ?`, name).
		Scan(&p.ID, &p.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get example palette: %w", err)
	}
	p.CreatedAt = util.ParseTimeRFC3339(createdAt)

	if err := r.loadStops(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ExamplePaletteRepository) List(ctx context.Context) ([]*domain.AnalyzedPalette, error) {
	return withRetry(ctx, readRetries, func() ([]*domain.AnalyzedPalette, error) {
		return r.list(ctx)
	})
}

func (r *ExamplePaletteRepository) list(ctx context.Context) ([]*domain.AnalyzedPalette, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM example_palettes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list example palettes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var palettes []*domain.AnalyzedPalette
	for rows.Next() {
		var (
			p         domain.AnalyzedPalette
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan example palette: %w", err)
		}
		p.CreatedAt = util.ParseTimeRFC3339(createdAt)
		palettes = append(palettes, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list example palettes: %w", err)
	}

	for _, p := range palettes {
		if err := r.loadStops(ctx, p); err != nil {
			return nil, err
		}
	}
	return palettes, nil
}

func (r *ExamplePaletteRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteExamples(ctx, tx, `id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ExamplePaletteRepository) loadStops(ctx context.Context, p *domain.AnalyzedPalette) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT position, l, c, h, alpha FROM example_palette_stops
		WHERE palette_id = ? ORDER BY position
	`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to get example palette stops: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			position int
			c        domain.Color
		)
		if err := rows.Scan(&position, &c.L, &c.C, &c.H, &c.Alpha); err != nil {
			return fmt.Errorf("failed to scan example palette stop: %w", err)
		}
		p.Stops = append(p.Stops, domain.PaletteStop{Position: domain.StopPosition(position), Color: c})
	}
	return rows.Err()
}

func deleteExamples(ctx context.Context, tx *sql.Tx, where string, args ...any) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM example_palette_stops WHERE palette_id IN (SELECT id FROM example_palettes WHERE `+where+`)`, args...); err != nil {
		return fmt.Errorf("failed to delete example palette stops: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM example_palettes WHERE `+where, args...); err != nil {
		return fmt.Errorf("failed to delete example palette: %w", err)
	}
	return nil
}
