// Package memory provides in-memory implementations of the persistence
// ports. They back the "memory" persistence profile for local development
// and serve as fixtures in service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"railrouter/application/ports"
	"railrouter/domain/routing"
)

// StationRepository is a thread-safe in-memory station store.
type StationRepository struct {
	mu       sync.RWMutex
	stations map[string]routing.Station
}

// NewStationRepository creates an empty station store.
func NewStationRepository() *StationRepository {
	return &StationRepository{stations: make(map[string]routing.Station)}
}

// List returns all stations, ordered by short name for stable output.
func (r *StationRepository) List(ctx context.Context) ([]routing.Station, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stations := make([]routing.Station, 0, len(r.stations))
	for _, station := range r.stations {
		stations = append(stations, station)
	}
	sort.Slice(stations, func(i, j int) bool {
		return stations[i].ShortName < stations[j].ShortName
	})
	return stations, nil
}

// GetByShortName retrieves one station.
func (r *StationRepository) GetByShortName(ctx context.Context, shortName string) (*routing.Station, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	station, ok := r.stations[shortName]
	if !ok {
		return nil, fmt.Errorf("station %q: %w", shortName, ports.ErrNotFound)
	}
	return &station, nil
}

// Save creates or replaces a station.
func (r *StationRepository) Save(ctx context.Context, station routing.Station) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stations[station.ShortName] = station
	return nil
}

// DistanceRepository is a thread-safe in-memory distance store.
type DistanceRepository struct {
	mu        sync.RWMutex
	distances []routing.Distance
}

// NewDistanceRepository creates an empty distance store.
func NewDistanceRepository() *DistanceRepository {
	return &DistanceRepository{}
}

// List returns all distance records in insertion order.
func (r *DistanceRepository) List(ctx context.Context) ([]routing.Distance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	distances := make([]routing.Distance, len(r.distances))
	copy(distances, r.distances)
	return distances, nil
}

// Save appends a distance record.
func (r *DistanceRepository) Save(ctx context.Context, distance routing.Distance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.distances = append(r.distances, distance)
	return nil
}

// RouteRepository is a thread-safe in-memory route store.
type RouteRepository struct {
	mu     sync.RWMutex
	routes map[string]routing.Route
}

// NewRouteRepository creates an empty route store.
func NewRouteRepository() *RouteRepository {
	return &RouteRepository{routes: make(map[string]routing.Route)}
}

// Save inserts one route record.
func (r *RouteRepository) Save(ctx context.Context, route routing.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.routes[route.ID] = route
	return nil
}

// GetByID retrieves one route.
func (r *RouteRepository) GetByID(ctx context.Context, id string) (*routing.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, ok := r.routes[id]
	if !ok {
		return nil, fmt.Errorf("route %q: %w", id, ports.ErrNotFound)
	}
	return &route, nil
}

// ListCreatedBetween returns routes created in [from, until), newest
// first.
func (r *RouteRepository) ListCreatedBetween(ctx context.Context, from, until *time.Time) ([]routing.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]routing.Route, 0, len(r.routes))
	for _, route := range r.routes {
		if from != nil && route.CreatedAt.Before(*from) {
			continue
		}
		if until != nil && !route.CreatedAt.Before(*until) {
			continue
		}
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].CreatedAt.After(routes[j].CreatedAt)
	})
	return routes, nil
}
