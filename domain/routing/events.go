package routing

import "time"

// EventTypeRouteCalculated is the detail type used when publishing
// calculation events to the event bus.
const EventTypeRouteCalculated = "RouteCalculated"

// RouteCalculated is emitted after a route has been computed and
// persisted. Publishing is best-effort; consumers must tolerate gaps.
type RouteCalculated struct {
	RouteID       string    `json:"routeId"`
	FromStationID string    `json:"fromStationId"`
	ToStationID   string    `json:"toStationId"`
	AnalyticCode  string    `json:"analyticCode"`
	DistanceKm    float64   `json:"distanceKm"`
	CalculatedAt  time.Time `json:"calculatedAt"`
}
