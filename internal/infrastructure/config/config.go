package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	OTLP     OTLPConfig     `yaml:"otlp"`
	LogLevel string         `yaml:"log_level"`
}

type ServerConfig struct {
	Port         string        `yaml:"port"`
	Host         string        `yaml:"host"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
	SecureCookie bool          `yaml:"secure_cookie"`
}

type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type OTLPConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
	Environment string `yaml:"environment"`
}

// LoadConfig loads configuration from a .env file (if present), environment variables
// and, when CONFIG_FILE is set, a YAML file whose values override the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := FromEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.Overlay(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with. A non-positive session TTL
// would let the sweeper expire every live session on its first pass.
func (c *Config) Validate() error {
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.Server.SessionTTL)
	}
	if c.Upstream.Timeout < 0 {
		return fmt.Errorf("products api timeout must not be negative, got %s", c.Upstream.Timeout)
	}
	return nil
}

// FromEnv builds the configuration from environment variables and defaults
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			SessionTTL:   getEnvDuration("SESSION_TTL", 30*time.Minute),
			SecureCookie: getEnvBool("SECURE_COOKIE", false),
		},
		Upstream: UpstreamConfig{
			BaseURL: getEnv("PRODUCTS_API_URL", "https://fakestoreapi.com"),
			Timeout: getEnvDuration("PRODUCTS_API_TIMEOUT", 10*time.Second),
		},
		OTLP: OTLPConfig{
			Enabled:     getEnvBool("OTEL_ENABLED", true),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "catalog-viewer"),
			Environment: getEnv("OTEL_ENVIRONMENT", "development"),
		},
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}
}

// Overlay reads a YAML file and overrides the fields it sets
func (c *Config) Overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
