package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verification-platform/internal/domain/verification"
)

func TestObserveResult(t *testing.T) {
	m := New()
	m.ObserveResult(verification.Result{
		Verdict:       verification.DiscrepancyNotVerified,
		Discrepancies: []verification.Discrepancy{verification.StartDateMismatch, verification.InvalidRank},
	})
	m.ObserveResult(verification.Result{Verdict: verification.CompletelyVerified, Discrepancies: []verification.Discrepancy{}})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verdicts.WithLabelValues("DiscrepancyNotVerified")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verdicts.WithLabelValues("CompletelyVerified")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Discrepancies.WithLabelValues("InvalidRank")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Discrepancies.WithLabelValues("EndDateMismatch")))
}

func TestCountersAndHistogram(t *testing.T) {
	m := New()
	m.IncrementSessionsStarted()
	m.IncrementSessionsStarted()
	m.IncrementSessionsClosed()
	m.IncrementExtractionFailures("unsupported")
	m.ObserveVerifyLatency(120 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsClosed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExtractionFailures.WithLabelValues("unsupported")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.VerifyLatency))
}

func TestHandler_ExposesOwnRegistry(t *testing.T) {
	m := New()
	m.IncrementSessionsStarted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "verification_sessions_started_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_IndependentInstances(t *testing.T) {
	a, b := New(), New()
	a.IncrementSessionsClosed()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.SessionsClosed))
}
