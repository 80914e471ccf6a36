// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ManuGH/connect4/internal/game"
	"github.com/ManuGH/connect4/internal/telemetry"
)

func TestBestMove_EmitsSearchSpan(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	eng := New(Config{Seed: 1})
	res, err := eng.BestMove(context.Background(), game.NewBoard(), game.Red, 2)
	require.NoError(t, err)

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "engine.search", span.Name)

	attrs := map[string]int64{}
	for _, kv := range span.Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInt64()
	}
	assert.Equal(t, int64(2), attrs[telemetry.SearchDepthKey])
	assert.Equal(t, int64(res.Column), attrs[telemetry.SearchColumnKey])
	assert.Equal(t, res.Nodes, attrs[telemetry.SearchNodesKey])
}
