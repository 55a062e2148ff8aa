package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/tonal/internal/ports"
)

const (
	serviceName    = "tonal"
	serviceVersion = "1.0.0"
)

// Config selects and addresses the OTLP collector. Endpoint is host:port.
type Config struct {
	Enabled  bool
	Endpoint string
	Insecure bool
}

// Exporter exports palette generation metrics to an OTEL Collector.
type Exporter struct {
	provider       *sdkmetric.MeterProvider
	palettesTotal  metric.Int64Counter
	clampedTotal   metric.Int64Counter
	durationHist   metric.Float64Histogram
	confidenceHist metric.Float64Histogram
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return newExporter(provider)
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	palettesTotal, err := meter.Int64Counter(
		"tonal_palettes_generated_total",
		metric.WithDescription("Total palettes generated"),
		metric.WithUnit("{palette}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating palettes counter: %w", err)
	}

	clampedTotal, err := meter.Int64Counter(
		"tonal_gamut_clamped_stops_total",
		metric.WithDescription("Generated stops that were pulled back into sRGB"),
		metric.WithUnit("{stop}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating clamped counter: %w", err)
	}

	durationHist, err := meter.Float64Histogram(
		"tonal_generation_duration_seconds",
		metric.WithDescription("Palette generation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	confidenceHist, err := meter.Float64Histogram(
		"tonal_pattern_confidence",
		metric.WithDescription("Confidence of the pattern used for generation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating confidence histogram: %w", err)
	}

	return &Exporter{
		provider:       provider,
		palettesTotal:  palettesTotal,
		clampedTotal:   clampedTotal,
		durationHist:   durationHist,
		confidenceHist: confidenceHist,
	}, nil
}

// ExportGeneration records one generated palette.
func (e *Exporter) ExportGeneration(ctx context.Context, m *ports.GenerationMetrics) error {
	attrs := []attribute.KeyValue{
		attribute.String("pattern", m.PatternName),
		attribute.Int("anchor_stop", m.AnchorStop),
		attribute.Bool("from_reference", m.FromReference),
	}
	opt := metric.WithAttributes(attrs...)

	e.palettesTotal.Add(ctx, 1, opt)
	e.clampedTotal.Add(ctx, int64(m.ClampedStops), opt)
	e.durationHist.Record(ctx, m.Duration.Seconds(), opt)
	e.confidenceHist.Record(ctx, m.Confidence, metric.WithAttributes(attribute.String("pattern", m.PatternName)))

	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
