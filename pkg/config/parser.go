package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/saturnines/project-gateway/pkg/errors"
)

type ValidationError struct {
	Field   string
	Message string
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Validator interface {
	Validate(cfg *Gateway) []ValidationError
}

// DefaultValueSetter fills in values the file or environment left empty
type DefaultValueSetter interface {
	SetDefaults(cfg *Gateway)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// Loader builds a Gateway config from YAML
type Loader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewLoader creates a new Loader with the given components
func NewLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *Loader {
	return &Loader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// DefaultLoader returns a Loader with env expansion, defaults and every validator
func DefaultLoader() *Loader {
	return NewLoader(
		&EnvExpander{},
		&GatewayDefaults{},
		&EnvironmentValidator{},
		&StructValidator{},
	)
}

// Load a gateway config from a YAML file
func (l *Loader) Load(path string) (*Gateway, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to read file")
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *Loader) Parse(data []byte) (*Gateway, error) {
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var cfg Gateway
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to parse YAML")
	}

	return l.finish(&cfg)
}

// finish applies defaults then runs every validator
func (l *Loader) finish(cfg *Gateway) (*Gateway, error) {
	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(cfg)
	}

	var all []ValidationError
	for _, v := range l.validators {
		all = append(all, v.Validate(cfg)...)
	}

	if len(all) > 0 {
		return nil, errors.WrapError(
			fmt.Errorf("validation errors: %v", all),
			errors.ErrConfiguration,
			"invalid gateway config",
		)
	}

	return cfg, nil
}

// FromEnv assembles the config from environment variables. Production reads the
// endpoint, API key and server URL from the environment; anything else uses the
// local development defaults.
func (l *Loader) FromEnv() (*Gateway, error) {
	cfg := &Gateway{
		Environment: Environment(strings.TrimSpace(os.Getenv(EnvAppEnv))),
		Log:         Log{Level: strings.TrimSpace(os.Getenv(EnvLogLevel))},
	}

	if cfg.IsProduction() {
		cfg.GraphQL.Endpoint = strings.TrimSpace(os.Getenv(EnvGraphQLURL))
		cfg.GraphQL.APIKey = strings.TrimSpace(os.Getenv(EnvGraphQLKey))
		cfg.Server.URL = strings.TrimSpace(os.Getenv(EnvServerURL))
	}

	if raw := strings.TrimSpace(os.Getenv(EnvHTTPTimeout)); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrConfiguration, EnvHTTPTimeout)
		}
		cfg.HTTP.Timeout = timeout
	}

	return l.finish(cfg)
}

// LoadDotEnv loads .env style files into the process environment.
// Variables already set are left alone.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// GatewayDefaults implements DefaultValueSetter for Gateway
type GatewayDefaults struct{}

// SetDefaults sets default values for Gateway
func (d *GatewayDefaults) SetDefaults(cfg *Gateway) {
	if cfg.Environment == "" {
		cfg.Environment = EnvironmentLocal
	}

	// production never falls back to local endpoints
	if !cfg.IsProduction() {
		if cfg.GraphQL.Endpoint == "" {
			cfg.GraphQL.Endpoint = DefaultLocalEndpoint
		}
		if cfg.GraphQL.APIKey == "" {
			cfg.GraphQL.APIKey = DefaultLocalAPIKey
		}
		if cfg.Server.URL == "" {
			cfg.Server.URL = DefaultLocalServerURL
		}
	}

	cfg.Server.URL = strings.TrimRight(cfg.Server.URL, "/")

	if cfg.HTTP.Timeout <= 0 {
		cfg.HTTP.Timeout = DefaultHTTPTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

// EnvironmentValidator rejects unknown environments
type EnvironmentValidator struct{}

// Validate checks the environment name
func (v *EnvironmentValidator) Validate(cfg *Gateway) []ValidationError {
	switch cfg.Environment {
	case EnvironmentProduction, EnvironmentLocal:
		return nil
	default:
		return []ValidationError{{
			Field:   "environment",
			Message: fmt.Sprintf("unknown environment: %s", cfg.Environment),
		}}
	}
}

// StructValidator checks the validate tags on Gateway
type StructValidator struct{}

var structValidate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs go-playground/validator over the config
func (v *StructValidator) Validate(cfg *Gateway) []ValidationError {
	err := structValidate.Struct(cfg)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Field: "config", Message: err.Error()}}
	}

	var out []ValidationError
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   strings.TrimPrefix(fe.Namespace(), "Gateway."),
			Message: fmt.Sprintf("failed %q check", fe.Tag()),
		})
	}
	return out
}
