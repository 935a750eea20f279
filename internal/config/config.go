package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mycelian/calculator-mcp/internal/decimalsum"
	"github.com/mycelian/calculator-mcp/internal/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Transport selects how the MCP server is reached.
type Transport string

const (
	TransportAuto  Transport = "auto"
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

// Config holds the configuration for the calculator MCP server.
// Environment variables are parsed with the CALCULATOR_ prefix.
type Config struct {
	ServerName    string `envconfig:"SERVER_NAME" default:"calculator-mcp"`
	ServerVersion string `envconfig:"SERVER_VERSION" default:"0.1.0"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// auto picks stdio when stdin is not a terminal
	Transport Transport `envconfig:"TRANSPORT" default:"auto"`

	// HTTP Configuration
	HTTPPort          int           `envconfig:"HTTP_PORT" default:"11546"`
	EndpointPath      string        `envconfig:"ENDPOINT_PATH" default:"/mcp"`
	HeartbeatInterval time.Duration `envconfig:"HEARTBEAT_INTERVAL" default:"30s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	HTTPReadTimeout   time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPIdleTimeout   time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
	MaxRequestBytes   int64         `envconfig:"MAX_REQUEST_BYTES" default:"1048576"`

	HealthInterval time.Duration `envconfig:"HEALTH_INTERVAL" default:"30s"`

	MaxDecimalPlaces int `envconfig:"MAX_DECIMAL_PLACES" default:"1000000000"`
}

// ResolveDefaults validates enumerated settings and bounds.
func (c *Config) ResolveDefaults() error {
	switch c.Transport {
	case "":
		c.Transport = TransportAuto
	case TransportAuto, TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unsupported TRANSPORT: %s", c.Transport)
	}

	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unsupported LOG_LEVEL: %s", c.LogLevel)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.EndpointPath == "" || c.EndpointPath[0] != '/' {
		return fmt.Errorf("ENDPOINT_PATH must start with '/': %q", c.EndpointPath)
	}
	if c.MaxDecimalPlaces <= 0 || c.MaxDecimalPlaces > decimalsum.MaxDecimalPlacesLimit {
		return fmt.Errorf("MAX_DECIMAL_PLACES must be in 1..%d: %d", decimalsum.MaxDecimalPlacesLimit, c.MaxDecimalPlaces)
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("MAX_REQUEST_BYTES must be > 0: %d", c.MaxRequestBytes)
	}
	return nil
}

// New creates a new Config by parsing environment variables
// Example: CALCULATOR_TRANSPORT=http, CALCULATOR_HTTP_PORT=8080
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("CALCULATOR", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("server_name", cfg.ServerName).
		Str("server_version", cfg.ServerVersion).
		Str("transport", string(cfg.Transport)).
		Int("http_port", cfg.HTTPPort).
		Str("endpoint_path", cfg.EndpointPath).
		Int("max_decimal_places", cfg.MaxDecimalPlaces).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		ServerName:        "calculator-mcp-test",
		ServerVersion:     "0.0.0-test",
		LogLevel:          "debug",
		Transport:         TransportHTTP,
		HTTPPort:          11546,
		EndpointPath:      "/mcp",
		HeartbeatInterval: 30 * time.Second,
		ShutdownTimeout:   time.Second,
		HTTPReadTimeout:   5 * time.Second,
		HTTPIdleTimeout:   30 * time.Second,
		MaxRequestBytes:   1 << 20,
		HealthInterval:    50 * time.Millisecond,
		MaxDecimalPlaces:  1000,
	}
}

// Level returns the parsed log level.
func (c *Config) Level() zerolog.Level {
	lvl, _ := logger.ParseLevel(c.LogLevel)
	return lvl
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
