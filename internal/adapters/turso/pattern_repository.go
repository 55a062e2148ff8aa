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

type PatternRepository struct {
	db *sql.DB
}

func NewPatternRepository(db *sql.DB) *PatternRepository {
	return &PatternRepository{db: db}
}

// Save stores pattern, replacing any pattern with the same name. A missing ID
// or creation time is filled in on the passed pattern.
func (r *PatternRepository) Save(ctx context.Context, pattern *domain.Pattern) error {
	if pattern.ID == "" {
		pattern.ID = uuid.NewString()
	}
	if pattern.CreatedAt.IsZero() {
		pattern.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deletePatterns(ctx, tx, `name = ? OR id = ?`, pattern.Name, pattern.ID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO patterns (id, name, reference_stop, source_count, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, pattern.ID, pattern.Name, int(pattern.ReferenceStop), pattern.Metadata.SourceCount,
		pattern.Metadata.Confidence, pattern.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert pattern: %w", err)
	}

	for i, t := range pattern.Transforms {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pattern_stops (pattern_id, position, lightness_multiplier, chroma_multiplier, hue_shift_degrees)
			VALUES (?, ?, ?, ?, ?)
		`, pattern.ID, int(domain.AllStops[i]), t.LightnessMultiplier, t.ChromaMultiplier, t.HueShiftDegrees)
		if err != nil {
			return fmt.Errorf("failed to insert pattern stop %d: %w", domain.AllStops[i], err)
		}
	}

	return tx.Commit()
}

func (r *PatternRepository) GetByID(ctx context.Context, id string) (*domain.Pattern, error) {
	return withRetry(ctx, readRetries, func() (*domain.Pattern, error) {
		return r.getOne(ctx, `id = ?`, id)
	})
}

func (r *PatternRepository) GetByName(ctx context.Context, name string) (*domain.Pattern, error) {
	return withRetry(ctx, readRetries, func() (*domain.Pattern, error) {
		return r.getOne(ctx, `name = ?`, name)
	})
}

func (r *PatternRepository) List(ctx context.Context) ([]*domain.Pattern, error) {
	return withRetry(ctx, readRetries, func() ([]*domain.Pattern, error) {
		return r.list(ctx)
	})
}

func (r *PatternRepository) list(ctx context.Context) ([]*domain.Pattern, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, reference_stop, source_count, confidence, created_at
		FROM patterns ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var patterns []*domain.Pattern
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}

	for _, p := range patterns {
		if err := r.loadStops(ctx, p); err != nil {
			return nil, err
		}
	}
	return patterns, nil
}

func (r *PatternRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deletePatterns(ctx, tx, `id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PatternRepository) getOne(ctx context.Context, where string, arg any) (*domain.Pattern, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, reference_stop, source_count, confidence, created_at
		FROM patterns WHERE `+where, arg)

	p, err := scanPattern(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadStops(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// loadStops fills p.Transforms and fails unless all ten canonical stops are stored.
func (r *PatternRepository) loadStops(ctx context.Context, p *domain.Pattern) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT position, lightness_multiplier, chroma_multiplier, hue_shift_degrees
		FROM pattern_stops WHERE pattern_id = ? ORDER BY position
	`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to get pattern stops: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var seen domain.Stops[bool]
	for rows.Next() {
		var position int
		var t domain.StopTransform
		if err := rows.Scan(&position, &t.LightnessMultiplier, &t.ChromaMultiplier, &t.HueShiftDegrees); err != nil {
			return fmt.Errorf("failed to scan pattern stop: %w", err)
		}
		if err := p.Transforms.Set(domain.StopPosition(position), t); err != nil {
			return fmt.Errorf("pattern %q: %w", p.Name, err)
		}
		_ = seen.Set(domain.StopPosition(position), true)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to get pattern stops: %w", err)
	}

	for i, ok := range seen {
		if !ok {
			return domain.NewError(domain.KindCollection,
				fmt.Sprintf("pattern %q has no stored transform for stop %d", p.Name, domain.AllStops[i]), nil)
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPattern(s scanner) (*domain.Pattern, error) {
	var (
		p         domain.Pattern
		refStop   int
		createdAt string
	)
	err := s.Scan(&p.ID, &p.Name, &refStop, &p.Metadata.SourceCount, &p.Metadata.Confidence, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan pattern: %w", err)
	}
	p.ReferenceStop = domain.StopPosition(refStop)
	p.CreatedAt = util.ParseTimeRFC3339(createdAt)
	return &p, nil
}

func deletePatterns(ctx context.Context, tx *sql.Tx, where string, args ...any) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM pattern_stops WHERE pattern_id IN (SELECT id FROM patterns WHERE `+where+`)`, args...); err != nil {
		return fmt.Errorf("failed to delete pattern stops: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM patterns WHERE `+where, args...); err != nil {
		return fmt.Errorf("failed to delete pattern: %w", err)
	}
	return nil
}
