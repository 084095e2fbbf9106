package dynamodb

import (
	"context"
	"fmt"

	"railrouter/domain/routing"
	apperrors "railrouter/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// DistanceRepository implements ports.DistanceRepository on DynamoDB.
// The routing core only ever bulk-reads this table.
type DistanceRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewDistanceRepository creates a distance repository for the given table.
func NewDistanceRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *DistanceRepository {
	return &DistanceRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// distanceItem is the DynamoDB item structure for a line segment.
type distanceItem struct {
	PK              string  `dynamodbav:"PK"`
	DistanceID      string  `dynamodbav:"DistanceID"`
	LineName        string  `dynamodbav:"LineName"`
	ParentShortName string  `dynamodbav:"ParentShortName"`
	ChildShortName  string  `dynamodbav:"ChildShortName"`
	DistanceKm      float64 `dynamodbav:"DistanceKm"`
}

// List scans all distance records.
func (r *DistanceRepository) List(ctx context.Context) ([]routing.Distance, error) {
	var distances []routing.Distance
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan distances", err)
		}

		var items []distanceItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal distances: %w", err)
		}

		for _, item := range items {
			distances = append(distances, routing.Distance{
				ID:              item.DistanceID,
				LineName:        item.LineName,
				ParentShortName: item.ParentShortName,
				ChildShortName:  item.ChildShortName,
				DistanceKm:      item.DistanceKm,
			})
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return distances, nil
}

// Save creates or replaces a distance record. Used by the seeding CLI.
func (r *DistanceRepository) Save(ctx context.Context, distance routing.Distance) error {
	item := distanceItem{
		PK:              fmt.Sprintf("DISTANCE#%s", distance.ID),
		DistanceID:      distance.ID,
		LineName:        distance.LineName,
		ParentShortName: distance.ParentShortName,
		ChildShortName:  distance.ChildShortName,
		DistanceKm:      distance.DistanceKm,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal distance %s: %w", distance.ID, err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return apperrors.NewDatabaseError("save distance", err)
	}

	r.logger.Debug("Saved distance",
		zap.String("line", distance.LineName),
		zap.String("parent", distance.ParentShortName),
		zap.String("child", distance.ChildShortName),
		zap.Float64("km", distance.DistanceKm),
	)
	return nil
}
