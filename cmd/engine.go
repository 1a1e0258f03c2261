package cmd

import (
	"fmt"

	"github.com/spigell/hh-matcher/internal/location"
	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/routing"
	"github.com/spigell/hh-matcher/internal/secrets"
	"github.com/spigell/hh-matcher/internal/weights"
	"go.uber.org/zap"
)

const mapsKeyEnv = "MAPS_API_KEY"

// newEngine wires the matching engine from the configuration. Routing problems never
// fail the command: the location component falls back to its heuristic instead.
func newEngine(config *Config, logger *zap.Logger) (*matching.Engine, error) {
	matrices := weights.Default()
	if len(config.Weights) > 0 {
		var err error
		matrices, err = matrices.ApplyOverrides(config.Weights)
		if err != nil {
			return nil, fmt.Errorf("weights: %w", err)
		}
	}

	loc := location.New(newProvider(config.Routing, logger), location.Config{
		Timeout:   config.Routing.Timeout,
		CacheSize: config.Location.CacheSize,
		CacheTTL:  config.Location.CacheTTL,
	}, &location.Stats{}, logger)

	return matching.New(matching.Config{
		Weights:     matrices,
		Concurrency: config.Batch.Concurrency,
	}, matching.Deps{
		Logger:   logger,
		Location: loc,
		Stats:    &matching.Stats{},
	}), nil
}

func newProvider(config *RoutingConfig, logger *zap.Logger) routing.Provider {
	if config == nil || !config.Enabled {
		logger.Debug("routing is disabled, location uses the heuristic")
		return nil
	}

	key, err := secrets.Load(secrets.Source{
		Name:  "google maps api key",
		File:  config.APIKeyFile,
		Value: config.APIKey,
		Env:   mapsKeyEnv,
	})
	if err != nil {
		logger.Warn("routing is enabled but no api key is available, location uses the heuristic",
			zap.Error(err),
			zap.String("hint", "set HH_MATCHER_MAPS_API_KEY_FILE, MAPS_API_KEY or the 'routing.api-key-file' key in the configuration file"),
		)
		return nil
	}

	provider, err := routing.NewGoogleMaps(routing.Config{
		APIKey:     key,
		Timeout:    config.Timeout,
		MaxRetries: config.MaxRetries,
		RateLimit:  config.RateLimit,
		Language:   config.Language,
		Region:     config.Region,
	}, logger)
	if err != nil {
		logger.Warn("creating the routing provider, location uses the heuristic", zap.Error(err))
		return nil
	}

	return provider
}
