package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"toll-rate-service/internal/adapters/source"
	"toll-rate-service/internal/domain"
	"toll-rate-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{}

func (failingSource) ListObservations(context.Context) ([]domain.DistanceObservation, error) {
	return nil, errors.New("storage offline")
}

func newTestRouter(src ports.ObservationSource) http.Handler {
	return NewRouter(RouterConfig{
		Source:      src,
		Rates:       domain.DefaultVehicleRates(),
		Windows:     domain.DefaultTimeWindows(),
		DefaultSeed: 42,
	})
}

func sampleSource() *source.StaticObservationSource {
	return source.NewStaticObservationSource([]source.StaticObservation{
		{From: 1, To: 2, Distance: 10},
		{From: 2, To: 3, Distance: 20},
		{From: 1, To: 3, Distance: 30},
	})
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(sampleSource()), http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	newTestRouter(sampleSource()).ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestRouter(sampleSource())
	for _, path := range []string{"/health", "/distance-matrix", "/distances", "/neighbors", "/tolls", "/coverage"} {
		rec := do(t, h, http.MethodPost, path)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"), path)
	}
}

func TestDistanceMatrix(t *testing.T) {
	rec := do(t, newTestRouter(sampleSource()), http.MethodGet, "/distance-matrix")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.JSONEq(t, `{"ids":[1,2,3],"rows":[[0,10,30],[10,0,20],[30,20,0]]}`, rec.Body.String())
}

func TestDistanceRecords(t *testing.T) {
	rec := do(t, newTestRouter(sampleSource()), http.MethodGet, "/distances")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[struct {
		Records []struct {
			IDStart  int64   `json:"id_start"`
			IDEnd    int64   `json:"id_end"`
			Distance float64 `json:"distance"`
		} `json:"records"`
	}](t, rec)
	require.Len(t, got.Records, 6)
	assert.Equal(t, int64(1), got.Records[0].IDStart)
	assert.Equal(t, int64(2), got.Records[0].IDEnd)
	assert.Equal(t, 10.0, got.Records[0].Distance)
}

func TestNeighbors(t *testing.T) {
	h := newTestRouter(sampleSource())

	// Averages: 1 -> 20, 2 -> 15, 3 -> 25.
	rec := do(t, h, http.MethodGet, "/neighbors?reference_id=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reference_id":1,"ratio":0.1,"ids":[1]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/neighbors?reference_id=1&ratio=0.25")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reference_id":1,"ratio":0.25,"ids":[1,2,3]}`, rec.Body.String())
}

func TestNeighborsErrors(t *testing.T) {
	h := newTestRouter(sampleSource())

	tests := []struct {
		target string
		status int
	}{
		{"/neighbors", http.StatusBadRequest},
		{"/neighbors?reference_id=x", http.StatusBadRequest},
		{"/neighbors?reference_id=1&ratio=abc", http.StatusBadRequest},
		{"/neighbors?reference_id=1&ratio=-1", http.StatusBadRequest},
		{"/neighbors?reference_id=99", http.StatusNotFound},
	}

	for _, tc := range tests {
		rec := do(t, h, http.MethodGet, tc.target)
		assert.Equal(t, tc.status, rec.Code, tc.target)
		assert.Contains(t, rec.Body.String(), `"error"`, tc.target)
	}
}

func TestTollsAreReproduciblePerSeed(t *testing.T) {
	h := newTestRouter(sampleSource())

	first := do(t, h, http.MethodGet, "/tolls?seed=7")
	second := do(t, h, http.MethodGet, "/tolls?seed=7")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())

	got := decode[struct {
		Seed    uint64           `json:"seed"`
		Records []map[string]any `json:"records"`
	}](t, first)
	assert.Equal(t, uint64(7), got.Seed)
	require.Len(t, got.Records, 6)
	for _, r := range got.Records {
		for _, col := range []string{"id_start", "id_end", "distance", "moto", "car", "rv", "bus", "truck", "start_day", "start_time", "end_day", "end_time"} {
			assert.Contains(t, r, col)
		}
	}
}

func TestTollsDefaultSeedAndBadSeed(t *testing.T) {
	h := newTestRouter(sampleSource())

	rec := do(t, h, http.MethodGet, "/tolls")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(42), decode[struct {
		Seed uint64 `json:"seed"`
	}](t, rec).Seed)

	rec = do(t, h, http.MethodGet, "/tolls?seed=-3")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCoverage(t *testing.T) {
	rec := do(t, newTestRouter(sampleSource()), http.MethodGet, "/coverage?seed=1")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[struct {
		Incomplete int `json:"incomplete"`
		Pairs      []struct {
			DurationSeconds float64 `json:"duration_seconds"`
			Incomplete      bool    `json:"incomplete"`
		} `json:"pairs"`
	}](t, rec)

	// One span per pair covers one hour on one day.
	require.Len(t, got.Pairs, 6)
	assert.Equal(t, 6, got.Incomplete)
	for _, p := range got.Pairs {
		assert.Equal(t, 3600.0, p.DurationSeconds)
		assert.True(t, p.Incomplete)
	}
}

func TestInvalidObservationIsBadRequest(t *testing.T) {
	src := source.NewStaticObservationSource([]source.StaticObservation{{From: 1, To: 2, Distance: -5}})
	rec := do(t, newTestRouter(src), http.MethodGet, "/distance-matrix")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSourceFailureIsInternalError(t *testing.T) {
	rec := do(t, newTestRouter(failingSource{}), http.MethodGet, "/tolls")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
