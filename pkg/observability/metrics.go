package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes application metrics to CloudWatch. With a nil client
// every call is a no-op, which is how tests and the in-memory profile run.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
	logger    *zap.Logger
}

// NewMetrics creates a metrics recorder for the given namespace.
func NewMetrics(namespace string, client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordCalculation records one route calculation with its outcome
// ("success", "station_not_found", "no_route" or "error") and latency.
// Metric delivery is best-effort and never fails the calculation.
func (m *Metrics) RecordCalculation(ctx context.Context, outcome string, latency time.Duration) {
	if m == nil || m.client == nil {
		return
	}

	now := time.Now()
	outcomeDim := types.Dimension{
		Name:  aws.String("Outcome"),
		Value: aws.String(outcome),
	}

	metricData := []types.MetricDatum{
		{
			MetricName: aws.String("RouteCalculations"),
			Dimensions: []types.Dimension{outcomeDim},
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(now),
		},
		{
			MetricName: aws.String("RouteCalculationLatencyMs"),
			Dimensions: []types.Dimension{outcomeDim},
			Value:      aws.Float64(float64(latency.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(now),
		},
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: metricData,
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Warn("Failed to publish metrics", zap.Error(err))
	}
}
