// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package match

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ManuGH/connect4/internal/engine"
	"github.com/ManuGH/connect4/internal/telemetry"
)

func installExporter(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exp
}

func spanNamed(t *testing.T, spans tracetest.SpanStubs, name string) tracetest.SpanStub {
	t.Helper()
	for _, s := range spans {
		if s.Name == name {
			return s
		}
	}
	require.Failf(t, "span not found", "no span %q", name)
	return tracetest.SpanStub{}
}

func stringAttrs(s tracetest.SpanStub) map[string]string {
	attrs := map[string]string{}
	for _, kv := range s.Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	return attrs
}

func TestBattleSpan(t *testing.T) {
	exp := installExporter(t)

	m, err := Battle(context.Background(), engine.New(engine.Config{Seed: 1}), 1, 1, nil)
	require.NoError(t, err)

	spans := exp.GetSpans()
	battle := spanNamed(t, spans, "match.battle")
	attrs := stringAttrs(battle)
	assert.Equal(t, m.ID, attrs[telemetry.MatchIDKey])
	assert.Equal(t, string(ModeAIVsAI), attrs[telemetry.MatchModeKey])
	assert.Equal(t, m.Outcome().String(), attrs[telemetry.MatchOutcomeKey])
	assert.NotContains(t, attrs, telemetry.MatchDifficultyKey)

	// every search hangs off the battle span
	searches := 0
	for _, s := range spans {
		if s.Name == "engine.search" {
			searches++
			assert.Equal(t, battle.SpanContext.SpanID(), s.Parent.SpanID())
		}
	}
	assert.Equal(t, m.MoveCount(), searches)
}

func TestPlayAISpan(t *testing.T) {
	exp := installExporter(t)

	d, err := engine.LookupDifficulty("3")
	require.NoError(t, err)
	s := NewSession(engine.New(engine.Config{Seed: 1}), d)
	require.NoError(t, s.Apply(3))

	_, err = s.PlayAI(context.Background())
	require.NoError(t, err)

	span := spanNamed(t, exp.GetSpans(), "match.ai_move")
	attrs := stringAttrs(span)
	assert.Equal(t, s.ID, attrs[telemetry.MatchIDKey])
	assert.Equal(t, "3", attrs[telemetry.MatchDifficultyKey])
	assert.NotContains(t, attrs, telemetry.MatchOutcomeKey)
	assert.Equal(t, codes.Unset, span.Status.Code)
}

func TestPlayAISpanRecordsTimeout(t *testing.T) {
	exp := installExporter(t)

	d, err := engine.LookupDifficulty("3")
	require.NoError(t, err)
	s := NewSession(engine.New(engine.Config{Seed: 1}), d)
	require.NoError(t, s.Apply(3))

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	_, err = s.PlayAI(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	span := spanNamed(t, exp.GetSpans(), "match.ai_move")
	assert.Equal(t, codes.Error, span.Status.Code)
	assert.Equal(t, "search_canceled", stringAttrs(span)[telemetry.ErrorTypeKey])
}
