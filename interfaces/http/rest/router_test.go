package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"railrouter/application/services"
	"railrouter/domain/routing"
	"railrouter/infrastructure/config"
	"railrouter/infrastructure/persistence/memory"
	"railrouter/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiFixture struct {
	handler  http.Handler
	stations *memory.StationRepository
	routes   *memory.RouteRepository
	graph    *services.StationGraphService
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	stations := memory.NewStationRepository()
	distances := memory.NewDistanceRepository()
	routes := memory.NewRouteRepository()
	logger := zap.NewNop()

	ctx := context.Background()
	seed := []routing.Station{
		{ID: "id-mx", ShortName: "MX", LongName: "Montreux", CreatedAt: time.Now()},
		{ID: "id-cge", ShortName: "CGE", LongName: "Montreux-Collège", CreatedAt: time.Now()},
		{ID: "id-vuar", ShortName: "VUAR", LongName: "Vuarennes", CreatedAt: time.Now()},
		{ID: "id-zw", ShortName: "ZW", LongName: "Zweisimmen", CreatedAt: time.Now()},
	}
	for _, s := range seed {
		require.NoError(t, stations.Save(ctx, s))
	}
	segments := []routing.Distance{
		{ID: "d1", LineName: "MOB", ParentShortName: "MX", ChildShortName: "CGE", DistanceKm: 0.65},
		{ID: "d2", LineName: "MOB", ParentShortName: "CGE", ChildShortName: "VUAR", DistanceKm: 0.35},
	}
	for _, d := range segments {
		require.NoError(t, distances.Save(ctx, d))
	}

	graph := services.NewStationGraphService(stations, distances, logger)
	calculator := services.NewRouteCalculatorService(graph, routes, nil, nil, logger)
	stats := services.NewRouteStatsService(routes)

	cfg := &config.Config{Environment: "development", Persistence: "memory", EnableCORS: false}

	router := NewRouter(cfg, calculator, stats, stations, logger)

	return &apiFixture{
		handler:  router.Setup(),
		stations: stations,
		routes:   routes,
		graph:    graph,
	}
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) common.APIResponse {
	t.Helper()

	var envelope struct {
		Success bool              `json:"success"`
		Data    json.RawMessage   `json:"data"`
		Error   *common.ErrorInfo `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if data != nil && len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}
	return common.APIResponse{Success: envelope.Success, Error: envelope.Error}
}

func TestCalculateRoute_PersistsAndReturnsRoute(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/routes", map[string]interface{}{
		"fromStationId": "MX",
		"toStationId":   "VUAR",
		"analyticCode":  "COMMUTE",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var route services.RouteResponse
	envelope := decodeEnvelope(t, rec, &route)
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, route.ID)
	assert.Equal(t, []string{"MX", "CGE", "VUAR"}, route.Path)
	assert.InDelta(t, 1.0, route.DistanceKm, 1e-9)
	assert.NotEmpty(t, route.CreatedAt)

	saved, err := f.routes.GetByID(context.Background(), route.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMMUTE", saved.AnalyticCode)
}

func TestCalculateRoute_PersistFalseSkipsStorage(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/routes", map[string]interface{}{
		"fromStationId": "MX",
		"toStationId":   "CGE",
		"analyticCode":  "LEISURE",
		"persist":       false,
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var route services.RouteResponse
	decodeEnvelope(t, rec, &route)
	assert.Empty(t, route.ID)
	assert.Empty(t, route.CreatedAt)

	stored, err := f.routes.ListCreatedBetween(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCalculateRoute_UnknownDepartureIs422(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/routes", map[string]interface{}{
		"fromStationId": "NOPE",
		"toStationId":   "VUAR",
		"analyticCode":  "COMMUTE",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	envelope := decodeEnvelope(t, rec, nil)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "STATION_NOT_FOUND", envelope.Error.Code)
	assert.Equal(t, "departure", envelope.Error.Details["side"])
	assert.Equal(t, "NOPE", envelope.Error.Details["station"])
}

func TestCalculateRoute_DisconnectedStationsIs422(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/routes", map[string]interface{}{
		"fromStationId": "MX",
		"toStationId":   "ZW",
		"analyticCode":  "COMMUTE",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	envelope := decodeEnvelope(t, rec, nil)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NO_ROUTE", envelope.Error.Code)
}

func TestCalculateRoute_MissingFieldsIs400(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/routes", map[string]interface{}{
		"fromStationId": "MX",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec, nil)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestCalculateRoute_UnknownJSONFieldIs400(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/routes", map[string]interface{}{
		"fromStationId": "MX",
		"toStationId":   "VUAR",
		"analyticCode":  "COMMUTE",
		"bogus":         true,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoute_RoundTrip(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/routes", map[string]interface{}{
		"fromStationId": "MX",
		"toStationId":   "VUAR",
		"analyticCode":  "COMMUTE",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created services.RouteResponse
	decodeEnvelope(t, rec, &created)

	rec = f.do(t, http.MethodGet, "/api/v1/routes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched services.RouteResponse
	decodeEnvelope(t, rec, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Path, fetched.Path)
}

func TestGetRoute_MissingIs404(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/routes/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	envelope := decodeEnvelope(t, rec, nil)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "ROUTE_NOT_FOUND", envelope.Error.Code)
}

func TestListStations_SearchAndOrdering(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/stations", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var all []map[string]string
	decodeEnvelope(t, rec, &all)
	require.Len(t, all, 4)
	// Ordered by long name.
	assert.Equal(t, "MX", all[0]["id"])
	assert.Equal(t, "CGE", all[1]["id"])

	rec = f.do(t, http.MethodGet, "/api/v1/stations?search=montreux", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var filtered []map[string]string
	decodeEnvelope(t, rec, &filtered)
	require.Len(t, filtered, 2)
	for _, item := range filtered {
		assert.Contains(t, []string{"MX", "CGE"}, item["shortName"])
	}
}

func TestGetStation_FoundAndMissing(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/stations/VUAR", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var station map[string]string
	decodeEnvelope(t, rec, &station)
	assert.Equal(t, "Vuarennes", station["longName"])

	rec = f.do(t, http.MethodGet, "/api/v1/stations/NOPE", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	envelope := decodeEnvelope(t, rec, nil)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "STATION_NOT_FOUND", envelope.Error.Code)
}

func TestStatsDistances_GroupsByCode(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()

	day := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seed := []routing.Route{
		{ID: "r1", AnalyticCode: "COMMUTE", DistanceKm: 10.5, CreatedAt: day},
		{ID: "r2", AnalyticCode: "COMMUTE", DistanceKm: 4.25, CreatedAt: day.Add(2 * time.Hour)},
		{ID: "r3", AnalyticCode: "LEISURE", DistanceKm: 33.33, CreatedAt: day.AddDate(0, 1, 14)},
	}
	for _, r := range seed {
		require.NoError(t, f.routes.Save(ctx, r))
	}

	rec := f.do(t, http.MethodGet, "/api/v1/stats/distances", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []services.DistanceStatItem
	decodeEnvelope(t, rec, &items)
	require.Len(t, items, 2)
	assert.Equal(t, "COMMUTE", items[0].AnalyticCode)
	assert.InDelta(t, 14.75, items[0].TotalDistanceKm, 1e-9)
	assert.Equal(t, "LEISURE", items[1].AnalyticCode)
}

func TestStatsDistances_RejectsBadParams(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/stats/distances?from=March-1st", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec, nil)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/stats/distances?from=2026-03-02&to=2026-03-01", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope = decodeEnvelope(t, rec, nil)
	assert.Equal(t, "INVALID_DATE_RANGE", envelope.Error.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/stats/distances?groupBy=week", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope = decodeEnvelope(t, rec, nil)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestHealthAndReadiness(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
