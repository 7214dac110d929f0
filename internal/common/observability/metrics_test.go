// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newManual(t *testing.T) (*Observability, *metric.ManualReader) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	meter := provider.Meter("test")

	counter, err := meter.Int64Counter("jobs.processed")
	require.NoError(t, err)
	hist, err := meter.Float64Histogram("jobs.duration", otelmetric.WithUnit("ms"))
	require.NoError(t, err)

	return &Observability{meterProvider: provider, jobCounter: counter, jobDuration: hist}, reader
}

func TestRecordJob(t *testing.T) {
	obs, reader := newManual(t)
	ctx := context.Background()

	obs.RecordJob(ctx, "score-applicant", "completed", 12*time.Millisecond)
	obs.RecordJob(ctx, "score-applicant", "completed", 8*time.Millisecond)
	obs.RecordJob(ctx, "score-applicant", "failed", time.Millisecond)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byName := map[string]metricdata.Metrics{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		byName[m.Name] = m
	}

	sum, ok := byName["jobs.processed"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(3), total)
	assert.Len(t, sum.DataPoints, 2)

	hist, ok := byName["jobs.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, hist.DataPoints, 2)

	require.NoError(t, obs.Shutdown(ctx))
}

func TestRecordJob_NilReceiver(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordJob(context.Background(), "score-applicant", "completed", time.Second)
	})
	assert.NoError(t, obs.Shutdown(context.Background()))
}
