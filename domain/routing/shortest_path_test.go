package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classicGraph() Graph {
	return Graph{
		"A": {"B": 1, "C": 4},
		"B": {"A": 1, "C": 2, "D": 5},
		"C": {"A": 4, "B": 2, "D": 1},
		"D": {"B": 5, "C": 1},
	}
}

func TestShortestPath_ClassicWeightedGraph(t *testing.T) {
	result, found := ShortestPath(classicGraph(), "A", "D")

	require.True(t, found)
	assert.Equal(t, []string{"A", "B", "C", "D"}, result.Path)
	assert.Equal(t, 4.0, result.DistanceKm)
}

func TestShortestPath_SameStartAndEnd(t *testing.T) {
	g := Graph{
		"A": {"A": 3, "B": 1}, // self-loop must be ignored
		"B": {"A": 1},
	}

	for node := range g {
		result, found := ShortestPath(g, node, node)
		require.True(t, found, "node %s", node)
		assert.Equal(t, []string{node}, result.Path)
		assert.Equal(t, 0.0, result.DistanceKm)
	}
}

func TestShortestPath_UnknownNodes(t *testing.T) {
	g := classicGraph()

	tests := []struct {
		name       string
		start, end string
	}{
		{"unknown start", "X", "D"},
		{"unknown end", "A", "X"},
		{"both unknown", "X", "Y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, found := ShortestPath(g, tt.start, tt.end)
			assert.False(t, found)
			assert.Nil(t, result)
		})
	}
}

func TestShortestPath_Unreachable(t *testing.T) {
	g := Graph{
		"A": {"B": 1},
		"B": {"A": 1},
		"Z": {},
	}

	result, found := ShortestPath(g, "A", "Z")
	assert.False(t, found)
	assert.Nil(t, result)
}

func TestShortestPath_DistanceMatchesPathWeights(t *testing.T) {
	g := Graph{
		"MX":   {"CGE": 0.65},
		"CGE":  {"MX": 0.65, "VUAR": 0.35},
		"VUAR": {"CGE": 0.35},
	}

	result, found := ShortestPath(g, "MX", "VUAR")

	require.True(t, found)
	assert.Equal(t, []string{"MX", "CGE", "VUAR"}, result.Path)
	assert.Equal(t, 1.0, result.DistanceKm)

	// Distance must equal the sum of edge weights along the path.
	var sum float64
	for i := 0; i < len(result.Path)-1; i++ {
		sum += g[result.Path[i]][result.Path[i+1]]
	}
	assert.InDelta(t, sum, result.DistanceKm, 0.005)
}

func TestShortestPath_DirectEdgeNotAlwaysShortest(t *testing.T) {
	g := Graph{
		"A": {"B": 10, "C": 1},
		"B": {"A": 10, "C": 1},
		"C": {"A": 1, "B": 1},
	}

	result, found := ShortestPath(g, "A", "B")

	require.True(t, found)
	assert.Equal(t, []string{"A", "C", "B"}, result.Path)
	assert.Equal(t, 2.0, result.DistanceKm)
}

func TestShortestPath_RoundsToTwoDecimals(t *testing.T) {
	g := Graph{
		"A": {"B": 0.333},
		"B": {"A": 0.333, "C": 0.333},
		"C": {"B": 0.333},
	}

	result, found := ShortestPath(g, "A", "C")

	require.True(t, found)
	assert.Equal(t, 0.67, result.DistanceKm)
}

func TestShortestPath_DoesNotMutateInput(t *testing.T) {
	g := classicGraph()

	_, found := ShortestPath(g, "A", "D")
	require.True(t, found)

	assert.Equal(t, classicGraph(), g)
}

func TestShortestPath_EmptyGraph(t *testing.T) {
	result, found := ShortestPath(Graph{}, "A", "B")
	assert.False(t, found)
	assert.Nil(t, result)
}
