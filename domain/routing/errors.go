package routing

import (
	"errors"
	"fmt"
)

// ErrorKind identifies an expected business failure of a route calculation.
type ErrorKind string

const (
	// KindStationNotFound means the departure or arrival station is not
	// present in the graph at calculation time.
	KindStationNotFound ErrorKind = "STATION_NOT_FOUND"

	// KindNoRoute means both stations exist but no path connects them.
	KindNoRoute ErrorKind = "NO_ROUTE"
)

// Side distinguishes which endpoint of the requested route failed the
// existence check.
type Side string

const (
	SideDeparture Side = "departure"
	SideArrival   Side = "arrival"
)

// Error is a business outcome of a route calculation, not an
// infrastructure failure. Callers are expected to match on Kind; the HTTP
// layer maps every Kind to a 4xx status.
type Error struct {
	Kind    ErrorKind
	Side    Side   // set for KindStationNotFound
	Station string // set for KindStationNotFound
	From    string // set for KindNoRoute
	To      string // set for KindNoRoute
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStationNotFound:
		return fmt.Sprintf("%s: %s station %q does not exist", e.Kind, e.Side, e.Station)
	case KindNoRoute:
		return fmt.Sprintf("%s: no path exists between %q and %q", e.Kind, e.From, e.To)
	default:
		return string(e.Kind)
	}
}

// NewStationNotFound builds the outcome for an unknown departure or
// arrival station.
func NewStationNotFound(side Side, station string) *Error {
	return &Error{Kind: KindStationNotFound, Side: side, Station: station}
}

// NewNoRoute builds the outcome for two known but disconnected stations.
func NewNoRoute(from, to string) *Error {
	return &Error{Kind: KindNoRoute, From: from, To: to}
}

// AsError extracts a routing business outcome from an error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
