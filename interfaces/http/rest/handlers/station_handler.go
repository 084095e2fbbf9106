package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"railrouter/application/ports"
	"railrouter/domain/routing"
	"railrouter/pkg/common"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StationHandler serves the station reference data.
type StationHandler struct {
	stations ports.StationRepository
	logger   *zap.Logger
}

// NewStationHandler creates a new station handler.
func NewStationHandler(stations ports.StationRepository, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		stations: stations,
		logger:   logger,
	}
}

// StationResponse is the API-facing shape of a station.
type StationResponse struct {
	ID        string `json:"id"`
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
}

// ListStations handles GET /stations. An optional search parameter
// filters by case-insensitive substring match on either name.
func (h *StationHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.stations.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))

	items := make([]StationResponse, 0, len(stations))
	for _, station := range stations {
		if search != "" && !matchesSearch(station, search) {
			continue
		}
		items = append(items, StationResponse{
			ID:        station.ShortName,
			ShortName: station.ShortName,
			LongName:  station.LongName,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].LongName < items[j].LongName
	})

	common.RespondJSON(w, http.StatusOK, items)
}

// GetStation handles GET /stations/{stationID}.
func (h *StationHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationID")
	if stationID == "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Station ID is required")
		return
	}

	station, err := h.stations.GetByShortName(r.Context(), stationID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			common.RespondError(w, http.StatusNotFound, "STATION_NOT_FOUND", "station not found")
			return
		}
		writeServiceError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, StationResponse{
		ID:        station.ShortName,
		ShortName: station.ShortName,
		LongName:  station.LongName,
	})
}

func matchesSearch(station routing.Station, search string) bool {
	return strings.Contains(strings.ToLower(station.ShortName), search) ||
		strings.Contains(strings.ToLower(station.LongName), search)
}
