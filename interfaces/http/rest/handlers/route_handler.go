package handlers

import (
	"errors"
	"net/http"

	"railrouter/application/ports"
	"railrouter/application/services"
	"railrouter/pkg/common"
	"railrouter/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxRequestBody = 1 << 20 // 1 MB

// RouteHandler handles route calculation and retrieval requests.
type RouteHandler struct {
	calculator *services.RouteCalculatorService
	logger     *zap.Logger
}

// NewRouteHandler creates a new route handler.
func NewRouteHandler(calculator *services.RouteCalculatorService, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		calculator: calculator,
		logger:     logger,
	}
}

// CalculateRouteRequest represents the request body for calculating a route.
// Persist defaults to true when omitted.
type CalculateRouteRequest struct {
	FromStationID string  `json:"fromStationId" validate:"required,max=64"`
	ToStationID   string  `json:"toStationId" validate:"required,max=64"`
	AnalyticCode  string  `json:"analyticCode" validate:"required,max=64"`
	Persist       *bool   `json:"persist,omitempty"`
	ActorID       *string `json:"actorId,omitempty" validate:"omitempty,max=64"`
}

// CalculateRoute handles POST /routes.
func (h *RouteHandler) CalculateRoute(w http.ResponseWriter, r *http.Request) {
	var req CalculateRouteRequest
	if err := common.ParseJSONBody(w, r, &req, maxRequestBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	persist := true
	if req.Persist != nil {
		persist = *req.Persist
	}

	result, err := h.calculator.Calculate(r.Context(), services.CalculateInput{
		FromStationID: req.FromStationID,
		ToStationID:   req.ToStationID,
		AnalyticCode:  req.AnalyticCode,
		Persist:       persist,
		ActorID:       req.ActorID,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, result)
}

// GetRoute handles GET /routes/{routeID}.
func (h *RouteHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "routeID")
	if routeID == "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Route ID is required")
		return
	}

	route, err := h.calculator.GetRoute(r.Context(), routeID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			common.RespondError(w, http.StatusNotFound, "ROUTE_NOT_FOUND", "route not found")
			return
		}
		writeServiceError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, route)
}
