package di

import (
	"railrouter/application/ports"
	"railrouter/application/services"
	"railrouter/infrastructure/config"
	"railrouter/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	StationRepo  ports.StationRepository
	DistanceRepo ports.DistanceRepository
	RouteRepo    ports.RouteRepository
	Events       ports.EventPublisher
	Metrics      *observability.Metrics
	Graph        *services.StationGraphService
	Calculator   *services.RouteCalculatorService
	Stats        *services.RouteStatsService
}
