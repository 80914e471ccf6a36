// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldMatchID   = "match_id"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Game fields
	FieldColumn     = "column"
	FieldPiece      = "piece"
	FieldDepth      = "depth"
	FieldScore      = "score"
	FieldNodes      = "nodes"
	FieldDifficulty = "difficulty"
	FieldOutcome    = "outcome"
	FieldBoard      = "board"

	// Path / network fields
	FieldPath   = "path"
	FieldAddr   = "addr"
	FieldMethod = "method"
	FieldStatus = "status"
)
