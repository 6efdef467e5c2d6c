package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the dreams service.
// Environment variables are parsed from the DREAMS_BACKEND_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// MongoDB Configuration. Transactions require the deployment to be a
	// replica set (a single-node replica set is fine for development).
	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"dreamshare"`

	// Auth Configuration. JWTSecret has no default on purpose: the service
	// refuses to start without one, and it is never logged.
	JWTSecret       string `envconfig:"JWT_SECRET" default:""`
	TokenTTLMinutes int    `envconfig:"TOKEN_TTL_MINUTES" default:"60"`
	BcryptCost      int    `envconfig:"BCRYPT_COST" default:"12"`
}

// Validate checks invariants that envconfig defaults cannot express.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("DREAMS_BACKEND_JWT_SECRET is required")
	}
	if c.TokenTTLMinutes <= 0 {
		return fmt.Errorf("TOKEN_TTL_MINUTES must be positive, got %d", c.TokenTTLMinutes)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with DREAMS_BACKEND_
// Example: DREAMS_BACKEND_HTTP_PORT, DREAMS_BACKEND_MONGO_URI
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("DREAMS_BACKEND", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("http_port", cfg.HTTPPort).
		Str("mongo_database", cfg.MongoDatabase).
		Int("token_ttl_minutes", cfg.TokenTTLMinutes).
		Int("bcrypt_cost", cfg.BcryptCost).
		Bool("jwt_secret_present", cfg.JWTSecret != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing. It uses the
// minimum bcrypt cost so password hashing does not dominate test runtime.
func NewForTesting() *Config {
	return &Config{
		Environment:     EnvTesting,
		HTTPPort:        8080,
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "dreamshare_test",
		JWTSecret:       "test-signing-secret",
		TokenTTLMinutes: 60,
		BcryptCost:      bcrypt.MinCost,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
