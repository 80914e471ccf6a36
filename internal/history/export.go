// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/renameio/v2"

	xglog "github.com/ManuGH/connect4/internal/log"
)

// Export writes up to limit records (newest first) to path as indented JSON.
// The file is replaced atomically; readers never observe a partial export.
func Export(ctx context.Context, s Store, path string, limit int) (int, error) {
	recs, err := s.List(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("list history: %w", err)
	}
	if err := writeJSON(ctx, path, recs); err != nil {
		return 0, err
	}
	return len(recs), nil
}

// ExportRecord writes a single record to path.
func ExportRecord(ctx context.Context, rec Record, path string) error {
	return writeJSON(ctx, path, rec)
}

func writeJSON(ctx context.Context, path string, v any) error {
	logger := xglog.FromContext(ctx)

	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending export file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending export file")
		}
	}()

	enc := json.NewEncoder(pendingFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write export data: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace export file: %w", err)
	}

	logger.Debug().Str(xglog.FieldPath, path).Msg("history exported")
	return nil
}
