package ports

import (
	"context"
	"time"
)

// MetricsExporter exports generation metrics to an external observability system.
type MetricsExporter interface {
	// ExportGeneration records one generated palette.
	ExportGeneration(ctx context.Context, m *GenerationMetrics) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// GenerationMetrics describes a single palette generation.
type GenerationMetrics struct {
	PaletteName   string
	PatternName   string
	AnchorStop    int
	ClampedStops  int
	Confidence    float64
	Duration      time.Duration
	FromReference bool
}
