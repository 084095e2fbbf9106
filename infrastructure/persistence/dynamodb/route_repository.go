package dynamodb

import (
	"context"
	"fmt"
	"time"

	"railrouter/application/ports"
	"railrouter/domain/routing"
	apperrors "railrouter/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// RouteRepository implements ports.RouteRepository on DynamoDB. Route
// records are write-once; the only reads are point lookups and the
// date-windowed scans backing the stats API.
type RouteRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewRouteRepository creates a route repository for the given table.
func NewRouteRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *RouteRepository {
	return &RouteRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// routeItem is the DynamoDB item structure for a computed route.
type routeItem struct {
	PK            string   `dynamodbav:"PK"`
	RouteID       string   `dynamodbav:"RouteID"`
	FromStationID string   `dynamodbav:"FromStationID"`
	ToStationID   string   `dynamodbav:"ToStationID"`
	FromShortName string   `dynamodbav:"FromShortName"`
	ToShortName   string   `dynamodbav:"ToShortName"`
	AnalyticCode  string   `dynamodbav:"AnalyticCode"`
	DistanceKm    float64  `dynamodbav:"DistanceKm"`
	Path          []string `dynamodbav:"Path"`
	ActorID       *string  `dynamodbav:"ActorID,omitempty"`
	CreatedAt     string   `dynamodbav:"CreatedAt"`
}

func routeKey(id string) string {
	return fmt.Sprintf("ROUTE#%s", id)
}

func (i routeItem) toDomain() (routing.Route, error) {
	createdAt, err := time.Parse(time.RFC3339, i.CreatedAt)
	if err != nil {
		return routing.Route{}, fmt.Errorf("parse route CreatedAt: %w", err)
	}
	return routing.Route{
		ID:            i.RouteID,
		FromStationID: i.FromStationID,
		ToStationID:   i.ToStationID,
		FromShortName: i.FromShortName,
		ToShortName:   i.ToShortName,
		AnalyticCode:  i.AnalyticCode,
		DistanceKm:    i.DistanceKm,
		Path:          i.Path,
		ActorID:       i.ActorID,
		CreatedAt:     createdAt,
	}, nil
}

// Save inserts one immutable route record.
func (r *RouteRepository) Save(ctx context.Context, route routing.Route) error {
	item := routeItem{
		PK:            routeKey(route.ID),
		RouteID:       route.ID,
		FromStationID: route.FromStationID,
		ToStationID:   route.ToStationID,
		FromShortName: route.FromShortName,
		ToShortName:   route.ToShortName,
		AnalyticCode:  route.AnalyticCode,
		DistanceKm:    route.DistanceKm,
		Path:          route.Path,
		ActorID:       route.ActorID,
		CreatedAt:     route.CreatedAt.Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal route %s: %w", route.ID, err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return apperrors.NewDatabaseError("save route", err)
	}

	r.logger.Debug("Saved route",
		zap.String("routeID", route.ID),
		zap.String("from", route.FromShortName),
		zap.String("to", route.ToShortName),
	)
	return nil
}

// GetByID fetches one route by its key.
func (r *RouteRepository) GetByID(ctx context.Context, id string) (*routing.Route, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: routeKey(id)},
		},
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get route", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("route %q: %w", id, ports.ErrNotFound)
	}

	var item routeItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal route %s: %w", id, err)
	}

	route, err := item.toDomain()
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// ListCreatedBetween scans routes created in [from, until). CreatedAt is
// stored as RFC 3339, so the bounds compare lexicographically.
func (r *RouteRepository) ListCreatedBetween(ctx context.Context, from, until *time.Time) ([]routing.Route, error) {
	var filter *expression.ConditionBuilder
	switch {
	case from != nil && until != nil:
		cond := expression.Name("CreatedAt").GreaterThanEqual(expression.Value(from.Format(time.RFC3339))).
			And(expression.Name("CreatedAt").LessThan(expression.Value(until.Format(time.RFC3339))))
		filter = &cond
	case from != nil:
		cond := expression.Name("CreatedAt").GreaterThanEqual(expression.Value(from.Format(time.RFC3339)))
		filter = &cond
	case until != nil:
		cond := expression.Name("CreatedAt").LessThan(expression.Value(until.Format(time.RFC3339)))
		filter = &cond
	}

	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}

	if filter != nil {
		expr, err := expression.NewBuilder().WithFilter(*filter).Build()
		if err != nil {
			return nil, fmt.Errorf("build route filter: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	var routes []routing.Route
	var startKey map[string]types.AttributeValue

	for {
		input.ExclusiveStartKey = startKey

		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan routes", err)
		}

		var items []routeItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal routes: %w", err)
		}

		for _, item := range items {
			route, err := item.toDomain()
			if err != nil {
				return nil, err
			}
			routes = append(routes, route)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return routes, nil
}
