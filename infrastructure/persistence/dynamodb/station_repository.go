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
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// StationRepository implements ports.StationRepository on DynamoDB.
type StationRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewStationRepository creates a station repository for the given table.
func NewStationRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *StationRepository {
	return &StationRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// stationItem is the DynamoDB item structure for a station.
type stationItem struct {
	PK        string `dynamodbav:"PK"`
	StationID string `dynamodbav:"StationID"`
	ShortName string `dynamodbav:"ShortName"`
	LongName  string `dynamodbav:"LongName"`
	CreatedAt string `dynamodbav:"CreatedAt"`
}

func stationKey(shortName string) string {
	return fmt.Sprintf("STATION#%s", shortName)
}

func (i stationItem) toDomain() (routing.Station, error) {
	createdAt, err := time.Parse(time.RFC3339, i.CreatedAt)
	if err != nil {
		return routing.Station{}, fmt.Errorf("parse station CreatedAt: %w", err)
	}
	return routing.Station{
		ID:        i.StationID,
		ShortName: i.ShortName,
		LongName:  i.LongName,
		CreatedAt: createdAt,
	}, nil
}

// List scans the full station table. The station set is small reference
// data, so a paginated scan is the whole read path.
func (r *StationRepository) List(ctx context.Context) ([]routing.Station, error) {
	var stations []routing.Station
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan stations", err)
		}

		var items []stationItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal stations: %w", err)
		}

		for _, item := range items {
			station, err := item.toDomain()
			if err != nil {
				return nil, err
			}
			stations = append(stations, station)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return stations, nil
}

// GetByShortName fetches one station by its key.
func (r *StationRepository) GetByShortName(ctx context.Context, shortName string) (*routing.Station, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: stationKey(shortName)},
		},
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get station", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("station %q: %w", shortName, ports.ErrNotFound)
	}

	var item stationItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal station %s: %w", shortName, err)
	}

	station, err := item.toDomain()
	if err != nil {
		return nil, err
	}
	return &station, nil
}

// Save creates or replaces a station. Used by the seeding CLI only.
func (r *StationRepository) Save(ctx context.Context, station routing.Station) error {
	item := stationItem{
		PK:        stationKey(station.ShortName),
		StationID: station.ID,
		ShortName: station.ShortName,
		LongName:  station.LongName,
		CreatedAt: station.CreatedAt.Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal station %s: %w", station.ShortName, err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return apperrors.NewDatabaseError("save station", err)
	}

	r.logger.Debug("Saved station",
		zap.String("shortName", station.ShortName),
		zap.String("stationID", station.ID),
	)
	return nil
}
