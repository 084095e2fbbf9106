package services

import (
	"context"
	"errors"
	"testing"

	"railrouter/domain/routing"
	"railrouter/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedNetwork(t *testing.T, stations *memory.StationRepository, distances *memory.DistanceRepository) {
	t.Helper()
	ctx := context.Background()

	for _, s := range []routing.Station{
		{ID: "id-mx", ShortName: "MX", LongName: "Montreux"},
		{ID: "id-cge", ShortName: "CGE", LongName: "Collège"},
		{ID: "id-vuar", ShortName: "VUAR", LongName: "Vuarennes"},
	} {
		require.NoError(t, stations.Save(ctx, s))
	}

	for _, d := range []routing.Distance{
		{ID: "d1", LineName: "MOB", ParentShortName: "MX", ChildShortName: "CGE", DistanceKm: 0.65},
		{ID: "d2", LineName: "MOB", ParentShortName: "CGE", ChildShortName: "VUAR", DistanceKm: 0.35},
	} {
		require.NoError(t, distances.Save(ctx, d))
	}
}

func TestStationGraphService_BuildAndQuery(t *testing.T) {
	ctx := context.Background()
	stations := memory.NewStationRepository()
	distances := memory.NewDistanceRepository()
	seedNetwork(t, stations, distances)

	svc := NewStationGraphService(stations, distances, zap.NewNop())

	exists, err := svc.StationExists(ctx, "MX")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.StationExists(ctx, "NOPE")
	require.NoError(t, err)
	assert.False(t, exists)

	neighbors, err := svc.Neighbors(ctx, "CGE")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"MX": 0.65, "VUAR": 0.35}, neighbors)

	all, err := svc.AllStations(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"MX", "CGE", "VUAR"}, all)

	id, ok, err := svc.InternalID(ctx, "VUAR")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "id-vuar", id)

	_, ok, err = svc.InternalID(ctx, "NOPE")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStationGraphService_KeepsMinimumWeightPerDirection(t *testing.T) {
	ctx := context.Background()
	stations := memory.NewStationRepository()
	distances := memory.NewDistanceRepository()

	require.NoError(t, stations.Save(ctx, routing.Station{ID: "a", ShortName: "A"}))
	require.NoError(t, stations.Save(ctx, routing.Station{ID: "b", ShortName: "B"}))
	require.NoError(t, distances.Save(ctx, routing.Distance{ID: "d1", LineName: "MOB", ParentShortName: "A", ChildShortName: "B", DistanceKm: 4.0}))
	require.NoError(t, distances.Save(ctx, routing.Distance{ID: "d2", LineName: "GPE", ParentShortName: "A", ChildShortName: "B", DistanceKm: 1.5}))

	svc := NewStationGraphService(stations, distances, zap.NewNop())

	forward, err := svc.Neighbors(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"B": 1.5}, forward)

	backward, err := svc.Neighbors(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 1.5}, backward)
}

func TestStationGraphService_OrderIndependentConstruction(t *testing.T) {
	ctx := context.Background()

	edges := []routing.Distance{
		{ID: "d1", LineName: "MOB", ParentShortName: "A", ChildShortName: "B", DistanceKm: 4.0},
		{ID: "d2", LineName: "GPE", ParentShortName: "A", ChildShortName: "B", DistanceKm: 1.5},
		{ID: "d3", LineName: "MOB", ParentShortName: "B", ChildShortName: "C", DistanceKm: 2.0},
	}
	reversed := []routing.Distance{edges[2], edges[1], edges[0]}

	adjacency := func(order []routing.Distance) map[string]map[string]float64 {
		stations := memory.NewStationRepository()
		distances := memory.NewDistanceRepository()
		for _, name := range []string{"A", "B", "C"} {
			require.NoError(t, stations.Save(ctx, routing.Station{ID: name, ShortName: name}))
		}
		for _, d := range order {
			require.NoError(t, distances.Save(ctx, d))
		}

		svc := NewStationGraphService(stations, distances, zap.NewNop())
		all, err := svc.AllStations(ctx)
		require.NoError(t, err)

		graph := make(map[string]map[string]float64, len(all))
		for _, name := range all {
			row, err := svc.Neighbors(ctx, name)
			require.NoError(t, err)
			graph[name] = row
		}
		return graph
	}

	assert.Equal(t, adjacency(edges), adjacency(reversed))
}

func TestStationGraphService_BuildIsIdempotent(t *testing.T) {
	ctx := context.Background()
	stations := memory.NewStationRepository()
	distances := memory.NewDistanceRepository()
	seedNetwork(t, stations, distances)

	svc := NewStationGraphService(stations, distances, zap.NewNop())
	require.NoError(t, svc.Build(ctx))

	before, err := svc.Neighbors(ctx, "CGE")
	require.NoError(t, err)

	// A record seeded after the build is invisible until reset.
	require.NoError(t, distances.Save(ctx, routing.Distance{ID: "d9", LineName: "MOB", ParentShortName: "CGE", ChildShortName: "MX", DistanceKm: 0.1}))
	require.NoError(t, svc.Build(ctx))

	after, err := svc.Neighbors(ctx, "CGE")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStationGraphService_ResetForcesRebuild(t *testing.T) {
	ctx := context.Background()
	stations := memory.NewStationRepository()
	distances := memory.NewDistanceRepository()
	seedNetwork(t, stations, distances)

	svc := NewStationGraphService(stations, distances, zap.NewNop())
	require.NoError(t, svc.Build(ctx))

	require.NoError(t, stations.Save(ctx, routing.Station{ID: "id-zw", ShortName: "ZW", LongName: "Zweisimmen"}))
	svc.Reset()

	exists, err := svc.StationExists(ctx, "ZW")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStationGraphService_EmptyStoreYieldsEmptyGraph(t *testing.T) {
	ctx := context.Background()
	svc := NewStationGraphService(memory.NewStationRepository(), memory.NewDistanceRepository(), zap.NewNop())

	require.NoError(t, svc.Build(ctx))

	all, err := svc.AllStations(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	neighbors, err := svc.Neighbors(ctx, "MX")
	require.NoError(t, err)
	assert.Empty(t, neighbors)

	exists, err := svc.StationExists(ctx, "MX")
	require.NoError(t, err)
	assert.False(t, exists)
}

type failingStationRepo struct {
	mock.Mock
}

func (m *failingStationRepo) List(ctx context.Context) ([]routing.Station, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *failingStationRepo) GetByShortName(ctx context.Context, shortName string) (*routing.Station, error) {
	args := m.Called(ctx, shortName)
	return nil, args.Error(1)
}

func (m *failingStationRepo) Save(ctx context.Context, station routing.Station) error {
	args := m.Called(ctx, station)
	return args.Error(0)
}

func TestStationGraphService_StoreFailurePropagates(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("dynamodb unavailable")

	stations := new(failingStationRepo)
	stations.On("List", ctx).Return(nil, storeErr)

	svc := NewStationGraphService(stations, memory.NewDistanceRepository(), zap.NewNop())

	_, err := svc.AllStations(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	stations.AssertExpectations(t)
}
