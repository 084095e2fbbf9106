package handlers

import (
	"net/http"
	"time"

	"railrouter/application/services"
	"railrouter/pkg/common"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// StatsHandler serves distance aggregation queries over persisted routes.
type StatsHandler struct {
	stats  *services.RouteStatsService
	logger *zap.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(stats *services.RouteStatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		stats:  stats,
		logger: logger,
	}
}

// GetDistances handles GET /stats/distances. from and to are inclusive
// dates (2006-01-02); groupBy is one of none, day, month, year and
// defaults to none.
func (h *StatsHandler) GetDistances(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := parseDateParam(query.Get("from"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid from date, expected YYYY-MM-DD")
		return
	}

	to, err := parseDateParam(query.Get("to"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid to date, expected YYYY-MM-DD")
		return
	}

	if from != nil && to != nil && from.After(*to) {
		common.RespondError(w, http.StatusBadRequest, "INVALID_DATE_RANGE", "from must not be after to")
		return
	}

	groupBy := services.GroupBy(query.Get("groupBy"))
	if groupBy == "" {
		groupBy = services.GroupByNone
	}
	if !groupBy.Valid() {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "groupBy must be one of none, day, month, year")
		return
	}

	items, err := h.stats.DistancesByAnalyticCode(r.Context(), from, to, groupBy)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, items)
}

func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
