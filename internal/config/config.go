package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultDirectionsURL is the XML flavour of the Google Directions API.
const DefaultDirectionsURL = "https://maps.googleapis.com/maps/api/directions/xml"

// ErrMissingAPIKey is returned by Validate when no directions API key is configured.
var ErrMissingAPIKey = errors.New("directions API key is not configured")

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig
	Log          LogConfig
	Directions   DirectionsConfig
	Presentation PresentationConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// DirectionsConfig holds the upstream directions API settings
type DirectionsConfig struct {
	BaseURL        string
	APIKey         string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// PresentationConfig holds the marker titles used when drawing a route
type PresentationConfig struct {
	StartTitle string
	EndTitle   string
}

// Load reads configuration from the default search paths and environment variables
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration from path, or from the default search paths when path
// is empty. Environment variables prefixed with SIMPLE_DIRECTIONS_ override both.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.simple-directions")
	}

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("directions.baseurl", DefaultDirectionsURL)
	v.SetDefault("directions.apikey", "")
	v.SetDefault("directions.connecttimeout", 15*time.Second)
	v.SetDefault("directions.readtimeout", 10*time.Second)
	v.SetDefault("presentation.starttitle", "Start")
	v.SetDefault("presentation.endtitle", "Destination")

	// Read from environment variables, e.g. SIMPLE_DIRECTIONS_DIRECTIONS_APIKEY
	v.SetEnvPrefix("SIMPLE_DIRECTIONS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings needed to reach the directions API
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Directions.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.Directions.ConnectTimeout <= 0 || c.Directions.ReadTimeout <= 0 {
		return fmt.Errorf("directions timeouts must be positive (connect=%s, read=%s)",
			c.Directions.ConnectTimeout, c.Directions.ReadTimeout)
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
