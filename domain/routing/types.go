package routing

import "time"

// Graph is the in-memory adjacency representation of the station network:
// station short name -> neighbor short name -> distance in kilometers.
// It is bidirectional by construction and keeps the minimum weight per
// direction when several line segments connect the same pair.
type Graph map[string]map[string]float64

// PathResult is the output of a shortest-path search.
type PathResult struct {
	Path       []string
	DistanceKm float64
}

// Station is immutable reference data maintained by an external import
// process. ShortName is the human-facing identifier used throughout the
// routing API; ID is the persistence-layer identifier.
type Station struct {
	ID        string
	ShortName string
	LongName  string
	CreatedAt time.Time
}

// Distance is one segment of a physical line between two stations.
// Several segments may connect the same station pair, on the same line or
// on different lines, with different distances.
type Distance struct {
	ID              string
	LineName        string
	ParentShortName string
	ChildShortName  string
	DistanceKm      float64
}

// Route is a persisted computation record. It is created once per
// successful calculation that requests persistence and never mutated.
type Route struct {
	ID            string
	FromStationID string
	ToStationID   string
	FromShortName string
	ToShortName   string
	AnalyticCode  string
	DistanceKm    float64
	Path          []string
	ActorID       *string
	CreatedAt     time.Time
}
