package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "hh-matcher"
)

type Config struct {
	Routing  *RoutingConfig  `mapstructure:"routing"`
	Location *LocationConfig `mapstructure:"location"`
	Batch    *BatchConfig    `mapstructure:"batch"`
	// Weights overrides individual weights: reason -> component -> weight.
	Weights map[string]map[string]float64 `mapstructure:"weights"`
}

type RoutingConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	APIKey     string        `mapstructure:"api-key"`
	APIKeyFile string        `mapstructure:"api-key-file"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max-retries"`
	RateLimit  int           `mapstructure:"rate-limit"`
	Language   string        `mapstructure:"language"`
	Region     string        `mapstructure:"region"`
}

type LocationConfig struct {
	CacheSize int           `mapstructure:"cache-size"`
	CacheTTL  time.Duration `mapstructure:"cache-ttl"`
}

type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "hh-matcher scores candidates against job positions with weights adapted to why the candidate is listening",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("routing.api-key-file", "HH_MATCHER_MAPS_API_KEY_FILE"); err != nil {
		log.Fatalf("binding HH_MATCHER_MAPS_API_KEY_FILE environment variable: %v", err)
	}
	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hh-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("routing.enabled", false)
	v.SetDefault("routing.timeout", 20*time.Second)
	v.SetDefault("routing.max-retries", 2)
	v.SetDefault("routing.rate-limit", 10)
	v.SetDefault("routing.language", "fr")
	v.SetDefault("routing.region", "fr")
	v.SetDefault("location.cache-size", 1000)
	v.SetDefault("location.cache-ttl", 2*time.Hour)
	v.SetDefault("batch.concurrency", 5)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional, every setting has a default.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.Routing == nil {
		config.Routing = &RoutingConfig{}
	}
	if config.Location == nil {
		config.Location = &LocationConfig{}
	}
	if config.Batch == nil {
		config.Batch = &BatchConfig{}
	}

	return config, nil
}
