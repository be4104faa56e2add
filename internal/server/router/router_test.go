package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/frostbyte/internal/observability"
	"github.com/mamadbah2/frostbyte/internal/repository/memory"
	"github.com/mamadbah2/frostbyte/internal/server/handlers"
	"github.com/mamadbah2/frostbyte/internal/service/catalog"
	"github.com/mamadbah2/frostbyte/internal/service/feasibility"
)

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func newTestEngine(t *testing.T, logger *zap.Logger) http.Handler {
	t.Helper()
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	metrics := observability.NewValidationMetrics(reg)

	return New(Handlers{
		Catalog:    handlers.NewCatalogHandler(catalog.NewService(store, nil), nil),
		Validation: handlers.NewValidationHandler(feasibility.NewService(store, metrics, nil), nil),
	}, Options{Store: store, Gatherer: reg}, logger)
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(newTestEngine(t, nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	down := New(Handlers{}, Options{Store: downStore{}}, nil)
	rec = serve(down, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestID(t *testing.T) {
	engine := newTestEngine(t, nil)

	rec := serve(engine, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	engine := newTestEngine(t, zap.New(core))

	serve(engine, http.MethodPost, "/temps/validate", `{}`)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/temps/validate", fields["path"])
	assert.EqualValues(t, http.StatusBadRequest, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRoutesAndMetrics(t *testing.T) {
	engine := newTestEngine(t, nil)

	rec := serve(engine, http.MethodPost, "/network/validate", `{"date":"2026-03-14"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"feasible":true,"issues":[],"violations":[]}`, rec.Body.String())

	rec = serve(engine, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "frostbyte_validation_runs_total")

	rec = serve(engine, http.MethodGet, "/reports?date=2026-03-14", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
