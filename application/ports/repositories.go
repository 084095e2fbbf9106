package ports

import (
	"context"
	"errors"
	"time"

	"railrouter/domain/routing"
)

// ErrNotFound is returned by lookups when the requested record does not
// exist. Repositories wrap it so callers can test with errors.Is.
var ErrNotFound = errors.New("not found")

// StationRepository reads the station reference table. Save exists for
// the seeding CLI only; the routing core never writes stations.
type StationRepository interface {
	// List returns every station. An empty store is not an error.
	List(ctx context.Context) ([]routing.Station, error)

	// GetByShortName retrieves one station by its short identifier.
	GetByShortName(ctx context.Context, shortName string) (*routing.Station, error)

	// Save persists a station (create or replace).
	Save(ctx context.Context, station routing.Station) error
}

// DistanceRepository reads line-segment distances. The routing core only
// ever bulk-reads this table; Save exists for the seeding CLI.
type DistanceRepository interface {
	// List returns every distance record.
	List(ctx context.Context) ([]routing.Distance, error)

	// Save persists a distance record (create or replace).
	Save(ctx context.Context, distance routing.Distance) error
}

// RouteRepository persists computed routes and serves them back for
// retrieval and statistics.
type RouteRepository interface {
	// Save inserts one immutable route record.
	Save(ctx context.Context, route routing.Route) error

	// GetByID retrieves a persisted route.
	GetByID(ctx context.Context, id string) (*routing.Route, error)

	// ListCreatedBetween returns routes created in the half-open interval
	// [from, until). A nil bound leaves that side unconstrained.
	ListCreatedBetween(ctx context.Context, from, until *time.Time) ([]routing.Route, error)
}

// EventPublisher pushes calculation events to the event bus.
type EventPublisher interface {
	PublishRouteCalculated(ctx context.Context, event routing.RouteCalculated) error
}
