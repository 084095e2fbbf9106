package handlers

import (
	"errors"
	"net/http"

	"railrouter/application/ports"
	"railrouter/domain/routing"
	"railrouter/pkg/common"
	apperrors "railrouter/pkg/errors"

	"go.uber.org/zap"
)

// writeServiceError maps a service-layer error to an HTTP response.
// Routing business outcomes become 422s with their kind as the error
// code; ports.ErrNotFound becomes a 404; classified infrastructure
// errors keep their status; anything else is a 500.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if routingErr, ok := routing.AsError(err); ok {
		writeRoutingError(w, routingErr)
		return
	}

	if errors.Is(err, ports.ErrNotFound) {
		common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}

	if appErr := apperrors.GetAppError(err); appErr != nil {
		logger.Error("Request failed", zap.Error(err))
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		common.RespondError(w, status, string(appErr.Type), appErr.Message)
		return
	}

	logger.Error("Request failed", zap.Error(err))
	common.RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func writeRoutingError(w http.ResponseWriter, routingErr *routing.Error) {
	switch routingErr.Kind {
	case routing.KindStationNotFound:
		common.RespondErrorWithDetails(w, http.StatusUnprocessableEntity,
			string(routingErr.Kind),
			"unknown "+string(routingErr.Side)+" station",
			map[string]interface{}{
				"side":    string(routingErr.Side),
				"station": routingErr.Station,
			},
		)
	case routing.KindNoRoute:
		common.RespondErrorWithDetails(w, http.StatusUnprocessableEntity,
			string(routingErr.Kind),
			"no route found",
			map[string]interface{}{
				"from": routingErr.From,
				"to":   routingErr.To,
			},
		)
	default:
		common.RespondError(w, http.StatusUnprocessableEntity, string(routingErr.Kind), routingErr.Error())
	}
}
