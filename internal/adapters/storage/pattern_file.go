package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/emiliopalmerini/tonal/internal/domain"
)

// patternFile is the JSON form of a pattern. Transforms are keyed by stop
// ("100" ... "1000") so files stay readable and diffable.
type patternFile struct {
	ID            string                          `json:"id,omitempty"`
	Name          string                          `json:"name"`
	ReferenceStop int                             `json:"referenceStop"`
	Transforms    map[string]domain.StopTransform `json:"transforms"`
	Metadata      domain.PatternMetadata          `json:"metadata"`
	CreatedAt     *time.Time                      `json:"createdAt,omitempty"`
}

// WritePattern encodes p as indented JSON.
func WritePattern(w io.Writer, p *domain.Pattern) error {
	pf := patternFile{
		ID:            p.ID,
		Name:          p.Name,
		ReferenceStop: int(p.ReferenceStop),
		Transforms:    make(map[string]domain.StopTransform, domain.StopCount),
		Metadata:      p.Metadata,
	}
	if !p.CreatedAt.IsZero() {
		t := p.CreatedAt
		pf.CreatedAt = &t
	}
	p.Transforms.Each(func(stop domain.StopPosition, t domain.StopTransform) {
		pf.Transforms[stop.String()] = t
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pf); err != nil {
		return fmt.Errorf("failed to encode pattern: %w", err)
	}
	return nil
}

// ReadPattern decodes a pattern written by WritePattern. Every canonical stop
// must be present.
func ReadPattern(r io.Reader) (*domain.Pattern, error) {
	var pf patternFile
	if err := json.NewDecoder(r).Decode(&pf); err != nil {
		return nil, fmt.Errorf("failed to decode pattern: %w", err)
	}

	ref := domain.StopPosition(pf.ReferenceStop)
	if !ref.Valid() {
		return nil, domain.NewError(domain.KindCollection,
			fmt.Sprintf("pattern %q has non-canonical reference stop %d", pf.Name, pf.ReferenceStop), nil)
	}

	p := &domain.Pattern{
		ID:            pf.ID,
		Name:          pf.Name,
		ReferenceStop: ref,
		Metadata:      pf.Metadata,
	}
	if pf.CreatedAt != nil {
		p.CreatedAt = *pf.CreatedAt
	}

	for key, t := range pf.Transforms {
		stop, err := domain.ParseStop(key)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pf.Name, err)
		}
		_ = p.Transforms.Set(stop, t)
	}
	for _, stop := range domain.AllStops {
		if _, ok := pf.Transforms[stop.String()]; !ok {
			return nil, domain.NewError(domain.KindCollection,
				fmt.Sprintf("pattern %q is missing stop %d", pf.Name, int(stop)), nil)
		}
	}
	return p, nil
}

// SavePatternFile writes p to path, replacing any existing file.
func SavePatternFile(path string, p *domain.Pattern) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create pattern file: %w", err)
	}
	if err := WritePattern(f, p); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// LoadPatternFile reads a pattern from path.
func LoadPatternFile(path string) (*domain.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pattern file: %w", err)
	}
	defer func() { _ = f.Close() }()

	p, err := ReadPattern(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
