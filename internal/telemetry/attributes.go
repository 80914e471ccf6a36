// SPDX-License-Identifier: MIT

// Package telemetry provides OpenTelemetry tracing utilities for connect4.
package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	// Search attributes
	SearchDepthKey  = "connect4.depth"
	SearchPieceKey  = "connect4.piece"
	SearchBoardKey  = "connect4.board"
	SearchColumnKey = "connect4.column"
	SearchScoreKey  = "connect4.score"
	SearchNodesKey  = "connect4.nodes"

	// Match attributes
	MatchIDKey         = "connect4.match_id"
	MatchModeKey       = "connect4.mode"
	MatchDifficultyKey = "connect4.difficulty"
	MatchOutcomeKey    = "connect4.outcome"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// SearchAttributes describes a search request.
func SearchAttributes(board, piece string, depth int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(SearchBoardKey, board),
		attribute.String(SearchPieceKey, piece),
		attribute.Int(SearchDepthKey, depth),
	}
}

// SearchResultAttributes describes the chosen move. Column is 0-based.
func SearchResultAttributes(column, score int, nodes int64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(SearchColumnKey, column),
		attribute.Int(SearchScoreKey, score),
		attribute.Int64(SearchNodesKey, nodes),
	}
}

// MatchAttributes creates match-related span attributes. Empty values are skipped.
func MatchAttributes(id, mode, difficulty, outcome string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 4)
	for _, kv := range []struct{ k, v string }{
		{MatchIDKey, id},
		{MatchModeKey, mode},
		{MatchDifficultyKey, difficulty},
		{MatchOutcomeKey, outcome},
	} {
		if kv.v != "" {
			attrs = append(attrs, attribute.String(kv.k, kv.v))
		}
	}
	return attrs
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(_ error, errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
