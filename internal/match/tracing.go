// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package match

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/connect4/internal/telemetry"
)

const tracerName = "github.com/ManuGH/connect4/internal/match"

// spanAttributes describes m; the outcome is only set once m is finished.
func (m *Match) spanAttributes() []attribute.KeyValue {
	outcome := ""
	if m.Finished() {
		outcome = m.outcome.String()
	}
	return telemetry.MatchAttributes(m.ID, string(m.Mode), m.Difficulty, outcome)
}

func (m *Match) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(m.spanAttributes()...))
}

// endSpan records err, refreshes the match attributes and ends span.
func (m *Match) endSpan(span trace.Span, err error) {
	if err != nil {
		errType := "match_failed"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			errType = "search_canceled"
		}
		span.SetAttributes(telemetry.ErrorAttributes(err, errType)...)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(m.spanAttributes()...)
	span.End()
}
