package services

import (
	"context"
	"fmt"
	"time"

	"railrouter/application/ports"
	"railrouter/domain/routing"
	"railrouter/pkg/observability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CalculateInput carries one already-validated routing request. ActorID
// is nil for anonymous calculations.
type CalculateInput struct {
	FromStationID string
	ToStationID   string
	AnalyticCode  string
	Persist       bool
	ActorID       *string
}

// RouteResponse is the API-facing shape of a calculation result. ID and
// CreatedAt are empty when the caller did not request persistence.
type RouteResponse struct {
	ID            string   `json:"id,omitempty"`
	FromStationID string   `json:"fromStationId"`
	ToStationID   string   `json:"toStationId"`
	AnalyticCode  string   `json:"analyticCode"`
	DistanceKm    float64  `json:"distanceKm"`
	Path          []string `json:"path"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

// RouteCalculatorService orchestrates a routing request end to end:
// station existence checks, shortest-path search, result shaping and
// optional persistence. Business failures come back as *routing.Error;
// anything else is an infrastructure failure.
type RouteCalculatorService struct {
	graph   *StationGraphService
	routes  ports.RouteRepository
	events  ports.EventPublisher
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewRouteCalculatorService creates a calculator. events and metrics may
// be nil, in which case publishing is skipped.
func NewRouteCalculatorService(
	graph *StationGraphService,
	routes ports.RouteRepository,
	events ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *RouteCalculatorService {
	return &RouteCalculatorService{
		graph:   graph,
		routes:  routes,
		events:  events,
		metrics: metrics,
		logger:  logger,
	}
}

// Calculate computes the shortest route between two stations and, when
// requested, persists it as an immutable record.
//
// The departure station is checked before the arrival station; either
// check failing yields a KindStationNotFound outcome naming that side.
// Two known but disconnected stations yield KindNoRoute. Both are
// expected outcomes, distinct from store failures which propagate as
// plain errors.
func (s *RouteCalculatorService) Calculate(ctx context.Context, in CalculateInput) (*RouteResponse, error) {
	start := time.Now()

	exists, err := s.graph.StationExists(ctx, in.FromStationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.recordOutcome(ctx, "station_not_found", start)
		return nil, routing.NewStationNotFound(routing.SideDeparture, in.FromStationID)
	}

	exists, err = s.graph.StationExists(ctx, in.ToStationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.recordOutcome(ctx, "station_not_found", start)
		return nil, routing.NewStationNotFound(routing.SideArrival, in.ToStationID)
	}

	stations, err := s.graph.AllStations(ctx)
	if err != nil {
		return nil, err
	}

	adjacency := make(routing.Graph, len(stations))
	for _, station := range stations {
		neighbors, err := s.graph.Neighbors(ctx, station)
		if err != nil {
			return nil, err
		}
		adjacency[station] = neighbors
	}

	result, found := routing.ShortestPath(adjacency, in.FromStationID, in.ToStationID)
	if !found {
		s.recordOutcome(ctx, "no_route", start)
		return nil, routing.NewNoRoute(in.FromStationID, in.ToStationID)
	}

	fromID, _, err := s.graph.InternalID(ctx, in.FromStationID)
	if err != nil {
		return nil, err
	}
	toID, _, err := s.graph.InternalID(ctx, in.ToStationID)
	if err != nil {
		return nil, err
	}

	response := &RouteResponse{
		FromStationID: in.FromStationID,
		ToStationID:   in.ToStationID,
		AnalyticCode:  in.AnalyticCode,
		DistanceKm:    result.DistanceKm,
		Path:          result.Path,
	}

	if in.Persist {
		route := routing.Route{
			ID:            uuid.New().String(),
			FromStationID: fromID,
			ToStationID:   toID,
			FromShortName: in.FromStationID,
			ToShortName:   in.ToStationID,
			AnalyticCode:  in.AnalyticCode,
			DistanceKm:    result.DistanceKm,
			Path:          result.Path,
			ActorID:       in.ActorID,
			CreatedAt:     time.Now().UTC(),
		}

		if err := s.routes.Save(ctx, route); err != nil {
			return nil, fmt.Errorf("persist route: %w", err)
		}

		response.ID = route.ID
		response.CreatedAt = route.CreatedAt.Format(time.RFC3339)

		s.publishCalculated(ctx, route)
	}

	s.recordOutcome(ctx, "success", start)

	s.logger.Info("Route calculated",
		zap.String("from", in.FromStationID),
		zap.String("to", in.ToStationID),
		zap.String("analyticCode", in.AnalyticCode),
		zap.Float64("distanceKm", result.DistanceKm),
		zap.Int("hops", len(result.Path)-1),
		zap.Bool("persisted", in.Persist),
	)

	return response, nil
}

// GetRoute fetches one persisted route record. A missing record comes
// back wrapping ports.ErrNotFound.
func (s *RouteCalculatorService) GetRoute(ctx context.Context, id string) (*RouteResponse, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &RouteResponse{
		ID:            route.ID,
		FromStationID: route.FromShortName,
		ToStationID:   route.ToShortName,
		AnalyticCode:  route.AnalyticCode,
		DistanceKm:    route.DistanceKm,
		Path:          route.Path,
		CreatedAt:     route.CreatedAt.Format(time.RFC3339),
	}, nil
}

// publishCalculated emits the calculation event. Failures are logged and
// never fail the request.
func (s *RouteCalculatorService) publishCalculated(ctx context.Context, route routing.Route) {
	if s.events == nil {
		return
	}

	event := routing.RouteCalculated{
		RouteID:       route.ID,
		FromStationID: route.FromShortName,
		ToStationID:   route.ToShortName,
		AnalyticCode:  route.AnalyticCode,
		DistanceKm:    route.DistanceKm,
		CalculatedAt:  route.CreatedAt,
	}

	if err := s.events.PublishRouteCalculated(ctx, event); err != nil {
		s.logger.Warn("Failed to publish route calculated event",
			zap.String("routeID", route.ID),
			zap.Error(err),
		)
	}
}

func (s *RouteCalculatorService) recordOutcome(ctx context.Context, outcome string, start time.Time) {
	s.metrics.RecordCalculation(ctx, outcome, time.Since(start))
}
