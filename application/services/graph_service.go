package services

import (
	"context"
	"fmt"
	"sync"

	"railrouter/application/ports"
	"railrouter/domain/routing"

	"go.uber.org/zap"
)

// StationGraphService materializes the bidirectional weighted station
// graph from the station and distance stores and caches it for the
// process lifetime. Queries trigger the build on first use; Reset
// discards the cache so freshly seeded data becomes visible without a
// restart.
//
// The cache is read-mostly: concurrent queries share an RWMutex read
// lock, and the build runs at most once under the write lock, so no
// reader ever observes a partially populated graph.
type StationGraphService struct {
	stations  ports.StationRepository
	distances ports.DistanceRepository
	logger    *zap.Logger

	mu    sync.RWMutex
	graph routing.Graph
	idMap map[string]string
	built bool
}

// NewStationGraphService creates an unbuilt graph service.
func NewStationGraphService(
	stations ports.StationRepository,
	distances ports.DistanceRepository,
	logger *zap.Logger,
) *StationGraphService {
	return &StationGraphService{
		stations:  stations,
		distances: distances,
		logger:    logger,
	}
}

// Build loads stations and distances and folds them into the adjacency
// mapping. It is idempotent: once built, subsequent calls return
// immediately. An empty store yields an empty graph; only a store read
// failure is an error, and it propagates unchanged.
func (s *StationGraphService) Build(ctx context.Context) error {
	s.mu.RLock()
	built := s.built
	s.mu.RUnlock()
	if built {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.built {
		return nil
	}

	stations, err := s.stations.List(ctx)
	if err != nil {
		return fmt.Errorf("load stations: %w", err)
	}

	graph := make(routing.Graph, len(stations))
	idMap := make(map[string]string, len(stations))
	for _, station := range stations {
		graph[station.ShortName] = map[string]float64{}
		idMap[station.ShortName] = station.ID
	}

	distances, err := s.distances.List(ctx)
	if err != nil {
		return fmt.Errorf("load distances: %w", err)
	}

	for _, d := range distances {
		addEdge(graph, d.ParentShortName, d.ChildShortName, d.DistanceKm)
		addEdge(graph, d.ChildShortName, d.ParentShortName, d.DistanceKm)
	}

	s.graph = graph
	s.idMap = idMap
	s.built = true

	s.logger.Info("Station graph built",
		zap.Int("stations", len(graph)),
		zap.Int("distances", len(distances)),
	)

	return nil
}

// addEdge records one direction of a segment, keeping the minimum weight
// when the pair is already connected by another segment.
func addEdge(graph routing.Graph, from, to string, km float64) {
	row, ok := graph[from]
	if !ok {
		// Distance referencing an unknown station still becomes a node so
		// the two tables cannot disagree about the station set.
		row = map[string]float64{}
		graph[from] = row
	}
	if existing, ok := row[to]; !ok || km < existing {
		row[to] = km
	}
}

// Neighbors returns a copy of the adjacency row for a station, or an
// empty map for an isolated or unknown station.
func (s *StationGraphService) Neighbors(ctx context.Context, shortName string) (map[string]float64, error) {
	if err := s.Build(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.graph[shortName]
	neighbors := make(map[string]float64, len(row))
	for neighbor, km := range row {
		neighbors[neighbor] = km
	}
	return neighbors, nil
}

// AllStations returns every known station short name.
func (s *StationGraphService) AllStations(ctx context.Context) ([]string, error) {
	if err := s.Build(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.graph))
	for name := range s.graph {
		names = append(names, name)
	}
	return names, nil
}

// StationExists reports whether the station is a node of the graph.
func (s *StationGraphService) StationExists(ctx context.Context, shortName string) (bool, error) {
	if err := s.Build(ctx); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.graph[shortName]
	return ok, nil
}

// InternalID maps a station short name to its persistence-layer
// identifier. The second return value is false for unknown stations.
func (s *StationGraphService) InternalID(ctx context.Context, shortName string) (string, bool, error) {
	if err := s.Build(ctx); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.idMap[shortName]
	return id, ok, nil
}

// Reset discards the cached graph. The next query rebuilds from the
// current store contents.
func (s *StationGraphService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.graph = nil
	s.idMap = nil
	s.built = false
}
