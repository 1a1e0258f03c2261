package routing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/spigell/hh-matcher/internal/utils"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

const (
	defaultTimeout      = 20 * time.Second
	defaultRetryBackoff = 250 * time.Millisecond
	defaultRateLimit    = 10
	logAddressLength    = 48
)

// Config configures the Google Maps provider.
type Config struct {
	APIKey       string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	RateLimit    int
	Language     string
	Region       string
	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
}

// GoogleMaps implements Provider on top of the Geocoding and Distance Matrix APIs.
type GoogleMaps struct {
	client *maps.Client
	cfg    Config
	logger *zap.Logger
}

var travelModes = map[profile.TransportMode]maps.Mode{
	profile.ModeDriving:   maps.TravelModeDriving,
	profile.ModeTransit:   maps.TravelModeTransit,
	profile.ModeWalking:   maps.TravelModeWalking,
	profile.ModeBicycling: maps.TravelModeBicycling,
}

// NewGoogleMaps validates the configuration and builds the API client.
func NewGoogleMaps(cfg Config, log *zap.Logger) (*GoogleMaps, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, errors.New("google maps api key is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaultRetryBackoff
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	opts := []maps.ClientOption{
		maps.WithAPIKey(cfg.APIKey),
		maps.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		maps.WithRateLimit(cfg.RateLimit),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create google maps client: %w", err)
	}

	return &GoogleMaps{
		client: client,
		cfg:    cfg,
		logger: logger.WithFields(log, zap.String("provider", "google_maps")),
	}, nil
}

// Geocode returns the coordinates of the best match for address.
func (g *GoogleMaps) Geocode(ctx context.Context, address string) (Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Coordinates{}, fmt.Errorf("geocode empty address: %w", ErrNoResults)
	}

	var results []maps.GeocodingResult
	err := utils.Retry(ctx, g.cfg.MaxRetries, g.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		results, err = g.client.Geocode(ctx, &maps.GeocodingRequest{
			Address:  address,
			Language: g.cfg.Language,
			Region:   g.cfg.Region,
		})
		return err
	})

	short := utils.TruncateForLog(address, logAddressLength)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocode %q: %w", short, err)
	}
	if len(results) == 0 {
		return Coordinates{}, fmt.Errorf("geocode %q: %w", short, ErrNoResults)
	}

	loc := results[0].Geometry.Location
	g.logger.Debug("geocoded address", zap.String("address", short), zap.Float64("lat", loc.Lat), zap.Float64("lng", loc.Lng))

	return Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// Route asks the Distance Matrix API for a single origin/destination pair departing now.
func (g *GoogleMaps) Route(ctx context.Context, from, to Coordinates, mode profile.TransportMode) (Route, error) {
	travelMode, ok := travelModes[mode]
	if !ok {
		return Route{}, fmt.Errorf("unsupported transport mode %q: %w", mode, ErrRouteUnavailable)
	}

	var route Route
	err := utils.Retry(ctx, g.cfg.MaxRetries, g.cfg.RetryBackoff, func(ctx context.Context) error {
		resp, err := g.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
			Origins:       []string{from.String()},
			Destinations:  []string{to.String()},
			Mode:          travelMode,
			Language:      g.cfg.Language,
			DepartureTime: "now",
		})
		if err != nil {
			return err
		}
		if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
			return fmt.Errorf("empty distance matrix: %w: %w", ErrRouteUnavailable, utils.ErrPermanent)
		}

		el := resp.Rows[0].Elements[0]
		if el.Status != "OK" {
			return fmt.Errorf("element status %s: %w: %w", el.Status, ErrRouteUnavailable, utils.ErrPermanent)
		}

		route = Route{
			Duration:          el.Duration,
			DurationInTraffic: el.DurationInTraffic,
			DistanceMeters:    el.Distance.Meters,
		}
		return nil
	})
	if err != nil {
		return Route{}, fmt.Errorf("route %s: %w", mode, err)
	}

	g.logger.Debug("route estimated",
		zap.String("mode", string(mode)),
		zap.Duration("duration", route.Duration),
		zap.Duration("duration_in_traffic", route.DurationInTraffic),
		zap.Int("distance_m", route.DistanceMeters),
	)

	return route, nil
}
