package config

import "time"

// Gateway represents the full config for the remote data gateway
type Gateway struct {
	Environment Environment `yaml:"environment"` // production or local
	GraphQL     GraphQL     `yaml:"graphql"`     // GraphQL API transport
	Server      Server      `yaml:"server"`      // Application server (upload, token)
	HTTP        HTTP        `yaml:"http,omitempty"`
	Log         Log         `yaml:"log,omitempty"`
}

// Environment selects where endpoint values come from
type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentLocal      Environment = "local"
)

// IsProduction reports whether endpoint values must come from the environment
func (g *Gateway) IsProduction() bool {
	return g.Environment == EnvironmentProduction
}

// GraphQL holds the GraphQL endpoint and its anonymous API key
type GraphQL struct {
	Endpoint string `yaml:"endpoint" validate:"required,url"`
	APIKey   string `yaml:"api_key" validate:"required"`
}

// Server is the application server hosting /api/upload and /api/auth/token
type Server struct {
	URL string `yaml:"url" validate:"required,url"`
}

// HTTP tunes the shared HTTP client
type HTTP struct {
	Timeout time.Duration `yaml:"timeout,omitempty"` // e.g. "30s"
}

// Log configures the log level (debug, info, warn, error, fatal)
type Log struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn error fatal"`
}

// Local development defaults
const (
	DefaultLocalEndpoint  = "http://127.0.0.1:4000/graphql"
	DefaultLocalAPIKey    = "letmein"
	DefaultLocalServerURL = "http://localhost:3000"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultLogLevel       = "info"
)

// Environment variable names read by FromEnv
const (
	EnvAppEnv      = "APP_ENV"
	EnvGraphQLURL  = "GRAFBASE_API_URL"
	EnvGraphQLKey  = "GRAFBASE_API_KEY"
	EnvServerURL   = "SERVER_URL"
	EnvHTTPTimeout = "HTTP_TIMEOUT"
	EnvLogLevel    = "LOG_LEVEL"
)
