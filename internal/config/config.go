package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppAddr          = ":3000"
	defaultBackendTimeout   = 30 * time.Second
	defaultPreviewMaxBytes  = 5 << 20
	defaultWorkspaceIdleTTL = 30 * time.Minute
	defaultServiceName      = "myprofile"
	defaultZipkinURL        = "http://localhost:9411/api/v2/spans"
)

// Provider exposes the application's configuration.
type Provider interface {
	GetAppAddr() string
	GetBackendURL() string
	GetBackendTimeout() time.Duration
	GetSessionSecret() string
	GetPreviewMaxBytes() int64
	GetWorkspaceIdleTTL() time.Duration
	GetProfileToken() string
	GetTracingEnabled() bool
	GetZipkinURL() string
	GetServiceName() string
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr          string
	BackendURL       string
	BackendTimeout   time.Duration
	SessionSecret    string
	PreviewMaxBytes  int64
	WorkspaceIdleTTL time.Duration
	ProfileToken     string
	TracingEnabled   bool
	ZipkinURL        string
	ServiceName      string
}

// New loads configuration from a .env file, if present, and the environment.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv reads configuration from the environment only. Malformed values fall
// back to their defaults with a warning.
func FromEnv() *Config {
	return &Config{
		AppAddr:          getString("APP_ADDR", defaultAppAddr),
		BackendURL:       os.Getenv("BACKEND_URL"),
		BackendTimeout:   getDuration("BACKEND_TIMEOUT", defaultBackendTimeout),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		PreviewMaxBytes:  getInt64("PREVIEW_MAX_BYTES", defaultPreviewMaxBytes),
		WorkspaceIdleTTL: getDuration("WORKSPACE_IDLE_TTL", defaultWorkspaceIdleTTL),
		ProfileToken:     os.Getenv("PROFILE_TOKEN"),
		TracingEnabled:   getBool("TRACING_ENABLED", false),
		ZipkinURL:        getString("TRACING_ZIPKIN_URL", defaultZipkinURL),
		ServiceName:      getString("TRACING_SERVICE_NAME", defaultServiceName),
	}
}

// ValidateServer reports the settings the web server cannot start without.
func (c *Config) ValidateServer() error {
	var errs []error
	if c.BackendURL == "" {
		errs = append(errs, errors.New("BACKEND_URL is not set"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is not set"))
	}
	return errors.Join(errs...)
}

func (c *Config) GetAppAddr() string                 { return c.AppAddr }
func (c *Config) GetBackendURL() string              { return c.BackendURL }
func (c *Config) GetBackendTimeout() time.Duration   { return c.BackendTimeout }
func (c *Config) GetSessionSecret() string           { return c.SessionSecret }
func (c *Config) GetPreviewMaxBytes() int64          { return c.PreviewMaxBytes }
func (c *Config) GetWorkspaceIdleTTL() time.Duration { return c.WorkspaceIdleTTL }
func (c *Config) GetProfileToken() string            { return c.ProfileToken }
func (c *Config) GetTracingEnabled() bool            { return c.TracingEnabled }
func (c *Config) GetZipkinURL() string               { return c.ZipkinURL }
func (c *Config) GetServiceName() string             { return c.ServiceName }

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("Invalid boolean in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}
