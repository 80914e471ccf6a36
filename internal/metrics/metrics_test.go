// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromhttpExposure(t *testing.T) {
	IncGameStarted("human_vs_ai")
	ObserveSearch(4, 3*time.Millisecond, 1200)

	srv := httptest.NewServer(promhttp.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.True(t, strings.Contains(out, "connect4_games_started_total"))
	assert.True(t, strings.Contains(out, "connect4_search_duration_seconds"))
}

func TestRecordStoreOp(t *testing.T) {
	before := testutil.ToFloat64(storeOperations.WithLabelValues("memory", "save", "error"))
	RecordStoreOp("memory", "save", errors.New("boom"))
	RecordStoreOp("memory", "save", nil)
	after := testutil.ToFloat64(storeOperations.WithLabelValues("memory", "save", "error"))
	assert.Equal(t, before+1, after)
}

func TestGameCounters(t *testing.T) {
	before := testutil.ToFloat64(gamesFinished.WithLabelValues("ai_vs_ai", "", "draw"))
	IncGameFinished("ai_vs_ai", "", "draw")
	assert.Equal(t, before+1, testutil.ToFloat64(gamesFinished.WithLabelValues("ai_vs_ai", "", "draw")))

	SetActiveGames(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(activeGames))

	RecordCacheLookup("memory", true)
	assert.GreaterOrEqual(t, testutil.ToFloat64(cacheRequests.WithLabelValues("memory", "hit")), float64(1))
}
