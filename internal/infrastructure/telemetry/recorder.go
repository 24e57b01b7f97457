package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ciran541/loan-eligibility"

// MetricRecorder reports assessments as OpenTelemetry instruments:
// eligibility_assessments_total and eligibility_assessment_duration_seconds,
// both labelled by variant and outcome.
type MetricRecorder struct {
	assessments metric.Int64Counter
	duration    metric.Float64Histogram
}

func NewMetricRecorder(provider metric.MeterProvider) (*MetricRecorder, error) {
	meter := provider.Meter(meterName)

	assessments, err := meter.Int64Counter("eligibility_assessments_total",
		metric.WithDescription("Eligibility computations by regulatory variant and outcome."))
	if err != nil {
		return nil, fmt.Errorf("create assessment counter: %w", err)
	}
	duration, err := meter.Float64Histogram("eligibility_assessment_duration_seconds",
		metric.WithDescription("Time spent computing one variant."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}
	return &MetricRecorder{assessments: assessments, duration: duration}, nil
}

func (r *MetricRecorder) RecordAssessment(ctx context.Context, variant, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("variant", variant),
		attribute.String("outcome", outcome),
	)
	r.assessments.Add(ctx, 1, attrs)
	r.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// NoopRecorder discards every data point.
type NoopRecorder struct{}

func (NoopRecorder) RecordAssessment(context.Context, string, string, time.Duration) {}
