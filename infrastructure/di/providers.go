package di

import (
	"context"

	"railrouter/application/ports"
	"railrouter/application/services"
	"railrouter/infrastructure/config"
	"railrouter/infrastructure/messaging/eventbridge"
	dynamorepo "railrouter/infrastructure/persistence/dynamodb"
	"railrouter/infrastructure/persistence/memory"
	"railrouter/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideStationRepository creates a station repository for the
// configured persistence backend
func ProvideStationRepository(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ports.StationRepository {
	if cfg.Persistence == "memory" {
		return memory.NewStationRepository()
	}
	return dynamorepo.NewStationRepository(client, cfg.StationsTable, logger)
}

// ProvideDistanceRepository creates a distance repository for the
// configured persistence backend
func ProvideDistanceRepository(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ports.DistanceRepository {
	if cfg.Persistence == "memory" {
		return memory.NewDistanceRepository()
	}
	return dynamorepo.NewDistanceRepository(client, cfg.DistancesTable, logger)
}

// ProvideRouteRepository creates a route repository for the configured
// persistence backend
func ProvideRouteRepository(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ports.RouteRepository {
	if cfg.Persistence == "memory" {
		return memory.NewRouteRepository()
	}
	return dynamorepo.NewRouteRepository(client, cfg.RoutesTable, logger)
}

// ProvideEventPublisher creates the calculation event publisher, or nil
// when event publishing is disabled
func ProvideEventPublisher(cfg *config.Config, client *awseventbridge.Client, logger *zap.Logger) ports.EventPublisher {
	if !cfg.EnableEvents || cfg.Persistence == "memory" {
		return nil
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates a metrics recorder; with metrics disabled the
// recorder is a no-op
func ProvideMetrics(cfg *config.Config, client *awscloudwatch.Client, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewMetrics("", nil, logger)
	}
	namespace := "RailRouter/" + cfg.Environment
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideGraphService creates the cached station graph
func ProvideGraphService(
	stations ports.StationRepository,
	distances ports.DistanceRepository,
	logger *zap.Logger,
) *services.StationGraphService {
	return services.NewStationGraphService(stations, distances, logger)
}

// ProvideCalculatorService creates the route calculator
func ProvideCalculatorService(
	graph *services.StationGraphService,
	routes ports.RouteRepository,
	events ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.RouteCalculatorService {
	return services.NewRouteCalculatorService(graph, routes, events, metrics, logger)
}

// ProvideStatsService creates the route stats aggregator
func ProvideStatsService(routes ports.RouteRepository) *services.RouteStatsService {
	return services.NewRouteStatsService(routes)
}
