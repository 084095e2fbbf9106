package routing

import (
	"container/heap"
	"math"
)

// ShortestPath runs Dijkstra's algorithm over the supplied adjacency
// mapping and returns the minimum-distance path from start to end, with
// the total distance rounded to two decimals.
//
// The second return value is false when start or end is not a key of the
// graph, or when no path connects them. Neither case is an error: both
// are expected outcomes for a caller to handle. The input graph is never
// mutated.
//
// When several shortest paths have equal total weight the returned one
// depends on heap insertion order; callers that need a deterministic path
// (not just distance) must not rely on it.
func ShortestPath(g Graph, start, end string) (*PathResult, bool) {
	if _, ok := g[start]; !ok {
		return nil, false
	}
	if _, ok := g[end]; !ok {
		return nil, false
	}

	if start == end {
		return &PathResult{Path: []string{start}, DistanceKm: 0}, true
	}

	dist := make(map[string]float64, len(g))
	prev := make(map[string]string, len(g))
	for node := range g {
		dist[node] = math.Inf(1)
	}
	dist[start] = 0

	visited := make(map[string]bool, len(g))

	pq := &distanceQueue{{node: start, distance: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		current := heap.Pop(pq).(queueEntry)

		// Stale entries are tolerated on the heap and skipped lazily
		// instead of being removed on relaxation.
		if visited[current.node] {
			continue
		}
		visited[current.node] = true

		if current.node == end {
			break
		}
		if current.distance > dist[current.node] {
			continue
		}

		for neighbor, weight := range g[current.node] {
			if visited[neighbor] {
				continue
			}
			candidate := dist[current.node] + weight
			known, ok := dist[neighbor]
			if !ok {
				known = math.Inf(1)
			}
			if candidate < known {
				dist[neighbor] = candidate
				prev[neighbor] = current.node
				heap.Push(pq, queueEntry{node: neighbor, distance: candidate})
			}
		}
	}

	if math.IsInf(dist[end], 1) {
		return nil, false
	}

	path := []string{end}
	for node := end; node != start; {
		node = prev[node]
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return &PathResult{
		Path:       path,
		DistanceKm: math.Round(dist[end]*100) / 100,
	}, true
}

type queueEntry struct {
	node     string
	distance float64
}

// distanceQueue is a min-heap of tentative distances.
type distanceQueue []queueEntry

func (q distanceQueue) Len() int            { return len(q) }
func (q distanceQueue) Less(i, j int) bool  { return q[i].distance < q[j].distance }
func (q distanceQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *distanceQueue) Push(x interface{}) { *q = append(*q, x.(queueEntry)) }

func (q *distanceQueue) Pop() interface{} {
	old := *q
	n := len(old)
	entry := old[n-1]
	*q = old[:n-1]
	return entry
}
