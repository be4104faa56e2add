package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
	"github.com/mamadbah2/frostbyte/internal/repository/memory"
	"github.com/mamadbah2/frostbyte/internal/service/catalog"
	"github.com/mamadbah2/frostbyte/internal/service/feasibility"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(validator Validator, cat Catalog, reporter Reporter) *gin.Engine {
	r := gin.New()
	if cat != nil {
		h := NewCatalogHandler(cat, nil)
		r.POST("/locations", h.CreateLocation)
		r.GET("/locations", h.ListLocations)
		r.POST("/products", h.CreateProduct)
		r.POST("/storage-units", h.CreateStorageUnit)
		r.POST("/routes", h.CreateRoute)
		r.POST("/demands", h.CreateDemand)
		r.GET("/network/summary", h.Summary)
	}
	if validator != nil {
		h := NewValidationHandler(validator, nil)
		r.POST("/temps/validate", h.ValidateTemperatures)
		r.POST("/network/validate", h.ValidateNetwork)
	}
	if reporter != nil {
		h := NewReportHandler(reporter, nil)
		r.POST("/reports", h.Create)
		r.GET("/reports", h.List)
	}
	return r
}

func newStoreEngine() *gin.Engine {
	store := memory.NewStore()
	return newEngine(feasibility.NewService(store, nil, nil), catalog.NewService(store, nil), nil)
}

func do(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func createdID(t *testing.T, rec *httptest.ResponseRecorder) int64 {
	t.Helper()
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var body struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &body)
	return body.ID
}

func TestValidationEndpoints_DateErrors(t *testing.T) {
	engine := newStoreEngine()

	tests := []struct {
		name    string
		path    string
		body    string
		wantErr string
	}{
		{name: "temps missing date", path: "/temps/validate", body: `{}`, wantErr: "Missing date"},
		{name: "temps empty body", path: "/temps/validate", body: "", wantErr: "Missing date"},
		{name: "network missing date", path: "/network/validate", body: `{"date":""}`, wantErr: "Missing date"},
		{name: "temps malformed date", path: "/temps/validate", body: `{"date":"14/03/2026"}`, wantErr: "invalid date"},
		{name: "network trailing garbage", path: "/network/validate", body: `{"date":"2026-03-14garbage"}`, wantErr: "invalid date"},
		{name: "network malformed json", path: "/network/validate", body: `{"date":`, wantErr: "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, engine, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			decode(t, rec, &body)
			if tt.wantErr == "Missing date" {
				assert.Equal(t, tt.wantErr, body["error"])
			} else {
				assert.Contains(t, body["error"], tt.wantErr)
			}
		})
	}
}

func TestValidationEndpoints_EndToEnd(t *testing.T) {
	engine := newStoreEngine()

	warehouse := createdID(t, do(t, engine, http.MethodPost, "/locations", `{"name":"Cold Hub","type":"WAREHOUSE","city":"Oslo"}`))
	createdID(t, do(t, engine, http.MethodPost, "/storage-units",
		jsonBody(t, gin.H{"locationId": warehouse, "minTemperature": -20, "maxTemperature": -15, "capacity": 100})))
	milk := createdID(t, do(t, engine, http.MethodPost, "/products", `{"name":"Milk","minTemperature":2,"maxTemperature":5}`))
	createdID(t, do(t, engine, http.MethodPost, "/demands",
		jsonBody(t, gin.H{"locationId": warehouse, "productId": milk, "date": "2026-03-14", "minQuantity": 5, "maxQuantity": 10})))

	rec := do(t, engine, http.MethodPost, "/temps/validate", `{"date":"2026-03-14"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var temps feasibility.TemperatureResult
	decode(t, rec, &temps)
	assert.False(t, temps.Valid)
	assert.Equal(t, []string{"Product Milk requires temp 2-5 but no suitable storage found at location."}, temps.Issues)

	rec = do(t, engine, http.MethodPost, "/network/validate", `{"date":"2026-03-14"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var network feasibility.NetworkResult
	decode(t, rec, &network)
	assert.True(t, network.Feasible)
	assert.Empty(t, network.Issues)

	rec = do(t, engine, http.MethodPost, "/temps/validate", `{"date":"2026-03-15"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &temps)
	assert.True(t, temps.Valid)
	assert.Empty(t, temps.Issues)
}

type brokenValidator struct{}

func (brokenValidator) CheckTemperatureFeasibility(context.Context, time.Time) (*feasibility.TemperatureResult, error) {
	return nil, &feasibility.StoreError{Op: "load demands by date", Err: errors.New("connection refused")}
}

func (brokenValidator) ValidateNetwork(context.Context, time.Time) (*feasibility.NetworkResult, error) {
	return nil, errors.New("boom")
}

func TestValidationEndpoints_Failures(t *testing.T) {
	engine := newEngine(brokenValidator{}, nil, nil)

	rec := do(t, engine, http.MethodPost, "/temps/validate", `{"date":"2026-03-14"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "entity store unavailable")

	rec = do(t, engine, http.MethodPost, "/network/validate", `{"date":"2026-03-14"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation failed")
}

func TestCatalogEndpoints_ErrorMapping(t *testing.T) {
	engine := newStoreEngine()

	retailer := createdID(t, do(t, engine, http.MethodPost, "/locations", `{"name":"Shop","type":"RETAILER","city":"Oslo"}`))

	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "storage at retailer",
			path:     "/storage-units",
			body:     jsonBody(t, gin.H{"locationId": retailer, "minTemperature": 0, "maxTemperature": 4, "capacity": 10}),
			wantCode: http.StatusBadRequest,
			wantErr:  "Storage units can only be created at WAREHOUSE locations",
		},
		{
			name:     "storage at unknown location",
			path:     "/storage-units",
			body:     `{"locationId":999,"minTemperature":0,"maxTemperature":4,"capacity":10}`,
			wantCode: http.StatusNotFound,
			wantErr:  "Location not found",
		},
		{
			name:     "demand for unknown product",
			path:     "/demands",
			body:     jsonBody(t, gin.H{"locationId": retailer, "productId": 999, "date": "2026-03-14", "minQuantity": 1, "maxQuantity": 2}),
			wantCode: http.StatusNotFound,
			wantErr:  "Product not found",
		},
		{
			name:     "unknown location type",
			path:     "/locations",
			body:     `{"name":"X","type":"FACTORY","city":"Oslo"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed json",
			path:     "/products",
			body:     `{"name":`,
			wantCode: http.StatusBadRequest,
			wantErr:  "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, engine, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			var body map[string]string
			decode(t, rec, &body)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, body["error"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestCatalogEndpoints_ListAndSummary(t *testing.T) {
	engine := newStoreEngine()

	createdID(t, do(t, engine, http.MethodPost, "/locations", `{"name":"Hub","type":"WAREHOUSE","city":"Oslo"}`))
	createdID(t, do(t, engine, http.MethodPost, "/locations", `{"name":"Shop","type":"RETAILER","city":"Oslo"}`))

	rec := do(t, engine, http.MethodGet, "/locations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var locs []models.Location
	decode(t, rec, &locs)
	assert.Len(t, locs, 2)

	rec = do(t, engine, http.MethodGet, "/network/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary map[string]json.RawMessage
	decode(t, rec, &summary)
	for _, key := range []string{"locations", "products", "storageUnits", "routes", "demands"} {
		assert.Contains(t, summary, key)
	}
}

type stubReporter struct {
	runs    []time.Time
	err     error
	history []models.ValidationReport
}

func (r *stubReporter) Run(_ context.Context, date time.Time, trigger string) (*models.ValidationReport, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.runs = append(r.runs, date)
	return &models.ValidationReport{ID: "rep-1", Date: models.FormatDate(date), Trigger: trigger, NetworkFeasible: true, TemperatureValid: true}, nil
}

func (r *stubReporter) History(context.Context, time.Time) ([]models.ValidationReport, error) {
	return r.history, nil
}

func TestReportEndpoints(t *testing.T) {
	reporter := &stubReporter{history: []models.ValidationReport{{ID: "old", Date: "2026-03-14"}}}
	engine := newEngine(nil, nil, reporter)

	rec := do(t, engine, http.MethodPost, "/reports", `{"date":"2026-03-14"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var report models.ValidationReport
	decode(t, rec, &report)
	assert.Equal(t, "rep-1", report.ID)
	assert.Equal(t, TriggerManual, report.Trigger)
	require.Len(t, reporter.runs, 1)

	rec = do(t, engine, http.MethodPost, "/reports", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, engine, http.MethodGet, "/reports?date=2026-03-14", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var reports []models.ValidationReport
	decode(t, rec, &reports)
	require.Len(t, reports, 1)
	assert.Equal(t, "old", reports[0].ID)

	rec = do(t, engine, http.MethodGet, "/reports", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing date")
}

func TestReportEndpoints_StoreFailure(t *testing.T) {
	reporter := &stubReporter{err: &feasibility.StoreError{Op: "sum max quantity by location", Err: errors.New("timeout")}}
	engine := newEngine(nil, nil, reporter)

	rec := do(t, engine, http.MethodPost, "/reports", `{"date":"2026-03-14"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "entity store unavailable")
}

func jsonBody(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
