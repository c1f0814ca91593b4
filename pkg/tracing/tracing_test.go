package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"skeleton/internal/config"
)

func TestInitDisabledDialsNothing(t *testing.T) {
	tp, err := Init(context.Background(), config.TracingConfig{}, config.AppConfig{})
	require.NoError(t, err)
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes(config.TracingConfig{}, config.AppConfig{Env: "staging"})
	require.Len(t, attrs, 2)
	assert.Equal(t, "skeleton", attrs[0].Value.AsString())
	assert.Equal(t, attribute.String("deployment.environment", "staging"), attrs[1])

	attrs = resourceAttributes(config.TracingConfig{ServiceName: "rules-api"}, config.AppConfig{Name: "app"})
	require.Len(t, attrs, 1)
	assert.Equal(t, "rules-api", attrs[0].Value.AsString())
}

func TestTracedSkipsProbes(t *testing.T) {
	assert.False(t, traced(httptest.NewRequest(http.MethodGet, "/health", nil)))
	assert.False(t, traced(httptest.NewRequest(http.MethodGet, "/metrics", nil)))
	assert.True(t, traced(httptest.NewRequest(http.MethodPost, "/api/validate", nil)))
}

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		cfg  config.SamplerConfig
		want string
	}{
		{cfg: config.SamplerConfig{Type: "always_off"}, want: "AlwaysOffSampler"},
		{cfg: config.SamplerConfig{Type: "always_on"}, want: "AlwaysOnSampler"},
		{cfg: config.SamplerConfig{}, want: "AlwaysOnSampler"},
		{cfg: config.SamplerConfig{Type: "traceidratio", Param: 0.5}, want: "TraceIDRatioBased{0.5}"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, createSampler(tt.cfg).Description())
	}
}

func TestRunRecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	err := Run(context.Background(), "test", "ok", func(context.Context) error { return nil },
		attribute.String("step", "config:cache"))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = Run(context.Background(), "test", "fails", func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "ok", spans[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assert.Equal(t, "fails", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Equal(t, "boom", spans[1].Status.Description)
}
