package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"railrouter/domain/routing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

// eventSource identifies this service on the bus.
const eventSource = "railrouter.routing"

// Publisher implements ports.EventPublisher using AWS EventBridge.
type Publisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates an EventBridge publisher for the given bus.
func NewPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

// PublishRouteCalculated sends one RouteCalculated event to the bus.
func (p *Publisher) PublishRouteCalculated(ctx context.Context, event routing.RouteCalculated) error {
	detail, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	entry := types.PutEventsRequestEntry{
		EventBusName: aws.String(p.eventBusName),
		Source:       aws.String(eventSource),
		DetailType:   aws.String(routing.EventTypeRouteCalculated),
		Detail:       aws.String(string(detail)),
		Time:         aws.Time(event.CalculatedAt),
	}

	out, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{entry},
	})
	if err != nil {
		return fmt.Errorf("put events: %w", err)
	}

	if out.FailedEntryCount > 0 {
		for _, result := range out.Entries {
			if result.ErrorCode != nil {
				p.logger.Error("EventBridge rejected event",
					zap.String("errorCode", aws.ToString(result.ErrorCode)),
					zap.String("errorMessage", aws.ToString(result.ErrorMessage)),
					zap.String("routeID", event.RouteID),
				)
			}
		}
		return fmt.Errorf("eventbridge rejected %d entries", out.FailedEntryCount)
	}

	return nil
}
