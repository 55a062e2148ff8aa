package tonal

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/ports"
)

type memPatterns struct {
	mu     sync.Mutex
	byName map[string]*domain.Pattern
	nextID int
}

func newMemPatterns() *memPatterns {
	return &memPatterns{byName: make(map[string]*domain.Pattern)}
}

func (m *memPatterns) Save(ctx context.Context, p *domain.Pattern) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		m.nextID++
		p.ID = fmt.Sprintf("p%d", m.nextID)
	}
	cp := *p
	m.byName[p.Name] = &cp
	return nil
}

func (m *memPatterns) GetByID(ctx context.Context, id string) (*domain.Pattern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byName {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memPatterns) GetByName(ctx context.Context, name string) (*domain.Pattern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byName[name]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memPatterns) List(ctx context.Context) ([]*domain.Pattern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Pattern
	for _, p := range m.byName {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memPatterns) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, p := range m.byName {
		if p.ID == id {
			delete(m.byName, name)
		}
	}
	return nil
}

type memExamples struct {
	byName map[string]*domain.AnalyzedPalette
}

func newMemExamples() *memExamples {
	return &memExamples{byName: make(map[string]*domain.AnalyzedPalette)}
}

func (m *memExamples) Save(ctx context.Context, p *domain.AnalyzedPalette) error {
	if err := p.Validate(); err != nil {
		return err
	}
	cp := *p
	m.byName[p.Name] = &cp
	return nil
}

func (m *memExamples) GetByName(ctx context.Context, name string) (*domain.AnalyzedPalette, error) {
	return m.byName[name], nil
}

func (m *memExamples) List(ctx context.Context) ([]*domain.AnalyzedPalette, error) {
	var out []*domain.AnalyzedPalette
	for _, p := range m.byName {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memExamples) Delete(ctx context.Context, id string) error {
	for name, p := range m.byName {
		if p.ID == id {
			delete(m.byName, name)
		}
	}
	return nil
}

type recordingMetrics struct {
	mu   sync.Mutex
	seen []ports.GenerationMetrics
}

func (r *recordingMetrics) ExportGeneration(ctx context.Context, m *ports.GenerationMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, *m)
	return nil
}

func (r *recordingMetrics) Close(ctx context.Context) error { return nil }

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Debug(string) {}

func (l *recordingLogger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func examplePalette(name string, hue float64) domain.AnalyzedPalette {
	ls := [domain.StopCount]float64{0.96, 0.9, 0.82, 0.72, 0.62, 0.54, 0.46, 0.38, 0.3, 0.22}
	cs := [domain.StopCount]float64{0.02, 0.05, 0.08, 0.11, 0.14, 0.13, 0.11, 0.09, 0.07, 0.05}
	p := domain.AnalyzedPalette{Name: name}
	for i, stop := range domain.AllStops {
		p.Stops = append(p.Stops, domain.PaletteStop{Position: stop, Color: domain.NewColor(ls[i], cs[i], hue)})
	}
	return p
}

var (
	_ ports.PatternRepository        = (*memPatterns)(nil)
	_ ports.ExamplePaletteRepository = (*memExamples)(nil)
	_ ports.MetricsExporter          = (*recordingMetrics)(nil)
	_ ports.Logger                   = (*recordingLogger)(nil)
)
