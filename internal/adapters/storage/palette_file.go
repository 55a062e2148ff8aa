package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/ports"
)

// paletteFile is the on-disk shape of an example palette:
//
//	{"name": "blue", "stops": {"100": "#EBF1FA", ..., "1000": "#0C1E38"}}
type paletteFile struct {
	Name  string            `json:"name"`
	Stops map[string]string `json:"stops"`
}

// PaletteFileLoader reads example palettes from JSON files. A file holds
// either one palette object or an array of them; a directory is read file by
// file in name order.
type PaletteFileLoader struct {
	space ports.ColorSpace
}

func NewPaletteFileLoader(space ports.ColorSpace) *PaletteFileLoader {
	return &PaletteFileLoader{space: space}
}

func (l *PaletteFileLoader) Load(ctx context.Context, path string) ([]domain.AnalyzedPalette, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return l.loadFile(path)
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}
	sort.Strings(matches)

	var palettes []domain.AnalyzedPalette
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ps, err := l.loadFile(m)
		if err != nil {
			return nil, err
		}
		palettes = append(palettes, ps...)
	}
	if len(palettes) == 0 {
		return nil, fmt.Errorf("no palettes found in %s", path)
	}
	return palettes, nil
}

func (l *PaletteFileLoader) loadFile(path string) ([]domain.AnalyzedPalette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open palette file: %w", err)
	}
	defer func() { _ = f.Close() }()

	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	palettes, err := l.Decode(f, fallback)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return palettes, nil
}

// Decode parses one palette object or an array of them. Palettes without a
// name are called fallbackName (suffixed with their index inside an array).
func (l *PaletteFileLoader) Decode(r io.Reader, fallbackName string) ([]domain.AnalyzedPalette, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette data: %w", err)
	}

	var files []paletteFile
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &files); err != nil {
			return nil, fmt.Errorf("failed to decode palettes: %w", err)
		}
		for i := range files {
			if files[i].Name == "" {
				files[i].Name = fmt.Sprintf("%s-%d", fallbackName, i+1)
			}
		}
	} else {
		var pf paletteFile
		if err := json.Unmarshal(trimmed, &pf); err != nil {
			return nil, fmt.Errorf("failed to decode palette: %w", err)
		}
		if pf.Name == "" {
			pf.Name = fallbackName
		}
		files = []paletteFile{pf}
	}

	palettes := make([]domain.AnalyzedPalette, 0, len(files))
	for _, pf := range files {
		p, err := l.toDomain(pf)
		if err != nil {
			return nil, err
		}
		palettes = append(palettes, p)
	}
	return palettes, nil
}

func (l *PaletteFileLoader) toDomain(pf paletteFile) (domain.AnalyzedPalette, error) {
	p := domain.AnalyzedPalette{Name: pf.Name}
	for key, literal := range pf.Stops {
		pos, err := domain.ParseStop(key)
		if err != nil {
			return domain.AnalyzedPalette{}, fmt.Errorf("palette %q: %w", pf.Name, err)
		}
		c, err := l.space.Parse(literal)
		if err != nil {
			return domain.AnalyzedPalette{}, fmt.Errorf("palette %q stop %s: %w", pf.Name, key, err)
		}
		p.Stops = append(p.Stops, domain.PaletteStop{Position: pos, Color: c})
	}
	domain.SortStops(p.Stops)

	if err := p.Validate(); err != nil {
		return domain.AnalyzedPalette{}, err
	}
	return p, nil
}
