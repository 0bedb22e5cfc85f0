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

	"github.com/emiliopalmerini/dustlog/internal/domain"
	"github.com/emiliopalmerini/dustlog/internal/ports"
)

const (
	serviceName    = "dustlog"
	serviceVersion = "1.0.0"
)

// Exporter exports tool runtime metrics to an OTEL Collector.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	runtimeHours  metric.Float64Histogram
	transitions   metric.Int64Counter
	toolsReported metric.Int64Counter
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

	runtimeHours, err := meter.Float64Histogram(
		"dustlog_tool_runtime_hours",
		metric.WithDescription("ON time accumulated by a tool over the reporting window"),
		metric.WithUnit("h"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating runtime histogram: %w", err)
	}

	transitions, err := meter.Int64Counter(
		"dustlog_tool_transitions_total",
		metric.WithDescription("ON/OFF transitions observed per tool"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transitions counter: %w", err)
	}

	toolsReported, err := meter.Int64Counter(
		"dustlog_tool_reports_total",
		metric.WithDescription("Number of tool usage reports produced"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reports counter: %w", err)
	}

	return &Exporter{
		provider:      provider,
		runtimeHours:  runtimeHours,
		transitions:   transitions,
		toolsReported: toolsReported,
	}, nil
}

// NewFromEnv returns the OTLP exporter when enabled, otherwise a no-op.
func NewFromEnv(ctx context.Context) (ports.MetricsExporter, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading OTEL config: %w", err)
	}
	if !cfg.Enabled {
		return NewNoOpExporter(), nil
	}
	return NewExporter(ctx, cfg)
}

// ExportUsage records the reconstructed runtime of one tool.
func (e *Exporter) ExportUsage(ctx context.Context, u *domain.Usage) error {
	opt := metric.WithAttributes(attribute.String("tool", u.Tool))

	e.runtimeHours.Record(ctx, u.TotalHours, opt)
	e.transitions.Add(ctx, int64(u.Transitions), opt)
	e.toolsReported.Add(ctx, 1, opt)

	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
