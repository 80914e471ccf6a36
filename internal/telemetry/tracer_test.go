// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false, ServiceName: "connect4"})
	require.NoError(t, err)
	assert.Nil(t, provider.tp)

	_, span := otel.Tracer("test").Start(context.Background(), "noop-check")
	assert.False(t, span.IsRecording())
	span.End()

	assert.NoError(t, provider.ForceFlush(context.Background()))
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_InvalidExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Enabled: true, ExporterType: "invalid"})
	require.Error(t, err)
	assert.Equal(t, "unsupported exporter type: invalid (supported: grpc, http)", err.Error())
}

func TestProviderWithExporter_RecordsSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	provider, err := NewProviderWithExporter(context.Background(), Config{
		ServiceName:  "connect4",
		SamplingRate: 1,
	}, exp)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = NewProvider(context.Background(), Config{})
	})

	_, span := Tracer("test").Start(context.Background(), "engine.search")
	span.SetAttributes(SearchAttributes("x", "Y", 4)...)
	span.End()

	require.NoError(t, provider.ForceFlush(context.Background()))
	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "engine.search", spans[0].Name)

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	assert.True(t, strings.Contains(Sampler(1).Description(), "AlwaysOnSampler"))
	assert.True(t, strings.Contains(Sampler(0).Description(), "AlwaysOffSampler"))
	assert.True(t, strings.Contains(Sampler(0.5).Description(), "TraceIDRatioBased"))
}
