// Package tonal wires pattern learning, palette generation and optical
// transfer to storage, metrics and logging.
package tonal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/generator"
	"github.com/emiliopalmerini/tonal/internal/optical"
	"github.com/emiliopalmerini/tonal/internal/pattern"
	"github.com/emiliopalmerini/tonal/internal/ports"
	"github.com/emiliopalmerini/tonal/internal/util"
)

// ErrPatternNotFound is returned when a named pattern is neither stored nor built in.
var ErrPatternNotFound = errors.New("pattern not found")

// ErrNoStore is returned by operations that need a repository the service was built without.
var ErrNoStore = errors.New("no pattern store configured")

type nopLogger struct{}

func (nopLogger) Debug(string) {}
func (nopLogger) Error(string) {}

type nopMetrics struct{}

func (nopMetrics) ExportGeneration(context.Context, *ports.GenerationMetrics) error { return nil }
func (nopMetrics) Close(context.Context) error                                      { return nil }

// Service is the application entry point used by the CLI.
type Service struct {
	space          ports.ColorSpace
	patterns       ports.PatternRepository
	examples       ports.ExamplePaletteRepository
	metrics        ports.MetricsExporter
	logger         ports.Logger
	workers        int
	defaultPattern string

	gen     *generator.Generator
	optical *optical.Transformer
	builtin builtin
}

// Option configures a Service.
type Option func(*Service)

func WithPatternRepository(r ports.PatternRepository) Option {
	return func(s *Service) { s.patterns = r }
}

func WithExampleRepository(r ports.ExamplePaletteRepository) Option {
	return func(s *Service) { s.examples = r }
}

func WithMetrics(m ports.MetricsExporter) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l ports.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithWorkers bounds concurrent stop and palette computations.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithDefaultPattern names the pattern used when a request names none.
func WithDefaultPattern(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.defaultPattern = name
		}
	}
}

func NewService(space ports.ColorSpace, opts ...Option) *Service {
	s := &Service{
		space:          space,
		metrics:        nopMetrics{},
		logger:         nopLogger{},
		workers:        generator.DefaultWorkers,
		defaultPattern: BuiltinName,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.gen = generator.New(space, generator.WithWorkers(s.workers))
	s.optical = optical.NewTransformer(space, s.workers)
	return s
}

// Space exposes the color primitives the service was built with.
func (s *Service) Space() ports.ColorSpace {
	return s.space
}

// ParseColor reads a color literal.
func (s *Service) ParseColor(literal string) (domain.Color, error) {
	return s.space.Parse(literal)
}

// LearnRequest describes a pattern learning run.
type LearnRequest struct {
	Palettes      []domain.AnalyzedPalette
	ReferenceStop domain.StopPosition
	// Name replaces the default "learned-pattern-smoothed" name when set.
	Name string
	// Save stores the smoothed pattern in the pattern repository.
	Save bool
	// SaveExamples stores the source palettes in the example repository.
	SaveExamples bool
}

// LearnResult holds both stages of a learning run.
type LearnResult struct {
	Raw      *domain.Pattern
	Smoothed *domain.Pattern
}

// Learn extracts a raw pattern from the palettes and smooths it.
func (s *Service) Learn(ctx context.Context, req LearnRequest) (*LearnResult, error) {
	var opts []pattern.ExtractOption
	if req.ReferenceStop != 0 {
		opts = append(opts, pattern.WithReferenceStop(req.ReferenceStop))
	}

	raw, err := pattern.Extract(req.Palettes, opts...)
	if err != nil {
		return nil, err
	}
	smoothed, err := pattern.Smooth(raw)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		smoothed.Name = req.Name
	}

	s.logger.Debug(fmt.Sprintf("learned pattern %q from %d palettes, confidence %.3f",
		smoothed.Name, raw.Metadata.SourceCount, raw.Metadata.Confidence))

	if req.SaveExamples {
		if err := s.SaveExamples(ctx, req.Palettes); err != nil {
			return nil, err
		}
	}
	if req.Save {
		if err := s.SavePattern(ctx, smoothed); err != nil {
			return nil, err
		}
	}

	return &LearnResult{Raw: raw, Smoothed: smoothed}, nil
}

// SavePattern stores p, replacing any pattern with the same name.
func (s *Service) SavePattern(ctx context.Context, p *domain.Pattern) error {
	if s.patterns == nil {
		return ErrNoStore
	}
	if err := s.patterns.Save(ctx, p); err != nil {
		return fmt.Errorf("failed to save pattern: %w", err)
	}
	return nil
}

// SaveExamples stores example palettes for later learning.
func (s *Service) SaveExamples(ctx context.Context, palettes []domain.AnalyzedPalette) error {
	if s.examples == nil {
		return ErrNoStore
	}
	for i := range palettes {
		if err := s.examples.Save(ctx, &palettes[i]); err != nil {
			return fmt.Errorf("failed to save example palette %q: %w", palettes[i].Name, err)
		}
	}
	return nil
}

// DeleteExample removes a stored example palette by name.
func (s *Service) DeleteExample(ctx context.Context, name string) error {
	if s.examples == nil {
		return ErrNoStore
	}
	p, err := s.examples.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("example palette %q not found", name)
	}
	return s.examples.Delete(ctx, p.ID)
}

// StoredExamples returns the named example palettes, or all of them when no
// names are given.
func (s *Service) StoredExamples(ctx context.Context, names ...string) ([]domain.AnalyzedPalette, error) {
	if s.examples == nil {
		return nil, ErrNoStore
	}

	if len(names) == 0 {
		all, err := s.examples.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]domain.AnalyzedPalette, 0, len(all))
		for _, p := range all {
			out = append(out, *p)
		}
		return out, nil
	}

	out := make([]domain.AnalyzedPalette, 0, len(names))
	for _, name := range names {
		p, err := s.examples.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("example palette %q not found", name)
		}
		out = append(out, *p)
	}
	return out, nil
}

// ResolvePattern finds a pattern by name. An empty name means the configured
// default. Stored patterns shadow the built-in one.
func (s *Service) ResolvePattern(ctx context.Context, name string) (*domain.Pattern, error) {
	if name == "" {
		name = s.defaultPattern
	}

	if s.patterns != nil {
		p, err := s.patterns.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to get pattern %q: %w", name, err)
		}
		if p != nil {
			return p, nil
		}
	}

	if name == BuiltinName {
		return s.builtin.get(s.space)
	}
	return nil, fmt.Errorf("%w: %q", ErrPatternNotFound, name)
}

// Patterns lists stored patterns followed by the built-in one unless a stored
// pattern shadows it.
func (s *Service) Patterns(ctx context.Context) ([]*domain.Pattern, error) {
	var out []*domain.Pattern
	if s.patterns != nil {
		stored, err := s.patterns.List(ctx)
		if err != nil {
			return nil, err
		}
		out = stored
	}
	for _, p := range out {
		if p.Name == BuiltinName {
			return out, nil
		}
	}
	b, err := s.builtin.get(s.space)
	if err != nil {
		return nil, err
	}
	return append(out, b), nil
}

// DeletePattern removes a stored pattern by name.
func (s *Service) DeletePattern(ctx context.Context, name string) error {
	if s.patterns == nil {
		return ErrNoStore
	}
	p, err := s.patterns.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: %q", ErrPatternNotFound, name)
	}
	return s.patterns.Delete(ctx, p.ID)
}

// GenerateRequest describes one palette to generate.
type GenerateRequest struct {
	Name       string
	Anchor     domain.Color
	AnchorStop domain.StopPosition
	// Pattern names the pattern to use; empty means the default.
	Pattern string
}

func (r GenerateRequest) anchorStop() domain.StopPosition {
	if r.AnchorStop == 0 {
		return domain.Stop500
	}
	return r.AnchorStop
}

// Generate resolves the request's pattern and builds the palette.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (domain.Palette, error) {
	p, err := s.ResolvePattern(ctx, req.Pattern)
	if err != nil {
		return domain.Palette{}, err
	}
	return s.generate(ctx, req, p, false)
}

func (s *Service) generate(ctx context.Context, req GenerateRequest, p *domain.Pattern, fromReference bool) (domain.Palette, error) {
	start := time.Now()
	palette, err := s.gen.FromStop(ctx, req.Anchor, req.anchorStop(), p, req.Name)
	if err != nil {
		return domain.Palette{}, err
	}
	s.record(ctx, req, p, palette, time.Since(start), fromReference)
	return palette, nil
}

func (s *Service) record(ctx context.Context, req GenerateRequest, p *domain.Pattern, palette domain.Palette, d time.Duration, fromReference bool) {
	s.logger.Debug(fmt.Sprintf("generated %q from stop %d with pattern %q in %s, %d stops clamped",
		palette.Name, int(req.anchorStop()), p.Name, util.FormatDuration(d), palette.ClampedCount()))

	err := s.metrics.ExportGeneration(ctx, &ports.GenerationMetrics{
		PaletteName:   palette.Name,
		PatternName:   p.Name,
		AnchorStop:    int(req.anchorStop()),
		ClampedStops:  palette.ClampedCount(),
		Confidence:    p.Metadata.Confidence,
		Duration:      d,
		FromReference: fromReference,
	})
	if err != nil {
		s.logger.Error(fmt.Sprintf("failed to export generation metrics: %v", err))
	}
}

// Transform copies the reference's lightness and chroma onto the target's hue.
func (s *Service) Transform(reference, target domain.Color) (domain.Color, error) {
	return s.optical.Apply(reference, target)
}

// IsViable reports whether Transform would produce a usable color.
func (s *Service) IsViable(reference, target domain.Color) bool {
	return s.optical.IsViable(reference, target)
}

// TransformMany applies Transform to every target.
func (s *Service) TransformMany(ctx context.Context, reference domain.Color, targets []domain.Color) []optical.Result {
	return s.optical.ApplyMany(ctx, reference, targets)
}

// GenerateFromReference transfers the reference's appearance onto target and
// uses the result as the anchor of req.
func (s *Service) GenerateFromReference(ctx context.Context, reference, target domain.Color, req GenerateRequest) (domain.Palette, error) {
	anchor, err := s.optical.Apply(reference, target)
	if err != nil {
		return domain.Palette{}, err
	}
	p, err := s.ResolvePattern(ctx, req.Pattern)
	if err != nil {
		return domain.Palette{}, err
	}
	req.Anchor = anchor
	return s.generate(ctx, req, p, true)
}

// Batch generates every request. Each request fails or succeeds on its own;
// the error is generator.ErrAllFailed only when nothing succeeded.
func (s *Service) Batch(ctx context.Context, reqs []GenerateRequest) ([]generator.Result, error) {
	results := make([]generator.Result, len(reqs))
	genReqs := make([]generator.Request, 0, len(reqs))
	index := make([]int, 0, len(reqs))

	for i, req := range reqs {
		genReq := generator.Request{Name: req.Name, Anchor: req.Anchor, AnchorStop: req.anchorStop()}
		p, err := s.ResolvePattern(ctx, req.Pattern)
		if err != nil {
			results[i] = generator.Result{Request: genReq, Err: err}
			continue
		}
		genReq.Pattern = p
		genReqs = append(genReqs, genReq)
		index = append(index, i)
	}

	start := time.Now()
	generated, _ := s.gen.Batch(ctx, genReqs)
	elapsed := time.Since(start)
	for j, r := range generated {
		results[index[j]] = r
	}

	for i, r := range results {
		if r.Err != nil {
			s.logger.Error(fmt.Sprintf("batch item %d (%q) failed: %v", i, r.Request.Name, r.Err))
			continue
		}
		s.record(ctx, reqs[i], r.Request.Pattern, r.Palette, elapsed, false)
	}

	s.logger.Debug(fmt.Sprintf("batch of %d finished, %d failed", len(reqs), generator.Failed(results)))
	if len(reqs) > 0 && generator.Failed(results) == len(reqs) {
		return results, generator.ErrAllFailed
	}
	return results, nil
}
