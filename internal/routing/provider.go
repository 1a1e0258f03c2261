// Package routing resolves addresses to coordinates and estimates travel durations.
package routing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spigell/hh-matcher/internal/profile"
)

var (
	// ErrNoResults is returned when an address cannot be geocoded.
	ErrNoResults = errors.New("no geocoding results")
	// ErrRouteUnavailable is returned when no route exists for the requested mode.
	ErrRouteUnavailable = errors.New("route unavailable")
	// ErrDisabled is returned by Disabled.
	ErrDisabled = errors.New("routing provider disabled")
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lng)
}

// Route is a single travel estimate between two points.
type Route struct {
	Duration time.Duration
	// DurationInTraffic is zero when the provider has no live traffic for the mode.
	DurationInTraffic time.Duration
	DistanceMeters    int
}

// Effective is the duration a commuter should expect.
func (r Route) Effective() time.Duration {
	if r.DurationInTraffic > r.Duration {
		return r.DurationInTraffic
	}
	return r.Duration
}

// TrafficDelay is how much longer the trip takes in current traffic.
func (r Route) TrafficDelay() time.Duration {
	if r.DurationInTraffic <= r.Duration {
		return 0
	}
	return r.DurationInTraffic - r.Duration
}

// Provider is the geocoding and routing backend.
type Provider interface {
	Geocode(ctx context.Context, address string) (Coordinates, error)
	Route(ctx context.Context, from, to Coordinates, mode profile.TransportMode) (Route, error)
}

// Disabled is a Provider that always fails, used when no routing backend is configured.
type Disabled struct{}

func (Disabled) Geocode(context.Context, string) (Coordinates, error) {
	return Coordinates{}, ErrDisabled
}

func (Disabled) Route(context.Context, Coordinates, Coordinates, profile.TransportMode) (Route, error) {
	return Route{}, ErrDisabled
}
