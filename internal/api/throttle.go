// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/ManuGH/connect4/internal/metrics"
)

// NewAnalyzeLimiter returns the global token bucket shared by all analysis
// requests. A non-positive rate disables throttling.
func NewAnalyzeLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
}

// SetAnalyzeRate retunes l in place, so a config reload takes effect
// without rebuilding the router.
func SetAnalyzeRate(l *rate.Limiter, perSecond float64, burst int) {
	if perSecond <= 0 {
		l.SetLimit(rate.Inf)
		return
	}
	l.SetBurst(max(burst, 1))
	l.SetLimit(rate.Limit(perSecond))
}

// allowAnalyze reports whether a search may start now and answers 429 when not.
func (s *Server) allowAnalyze(w http.ResponseWriter, r *http.Request) bool {
	if s.analyzeLimiter == nil {
		return true
	}
	res := s.analyzeLimiter.Reserve()
	if res.OK() && res.Delay() == 0 {
		return true
	}
	metrics.IncRateLimited("analyze")
	if res.OK() {
		w.Header().Set("Retry-After", strconv.Itoa(int(res.Delay().Seconds())+1))
		res.Cancel()
	}
	writeError(w, r, http.StatusTooManyRequests, codeRateLimited, "analysis capacity exhausted, retry later")
	return false
}
