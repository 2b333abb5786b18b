package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnines/project-gateway/pkg/errors"
)

func TestLoader_LocalDefaults(t *testing.T) {
	cfg, err := DefaultLoader().Parse([]byte(`environment: local`))
	require.NoError(t, err)

	assert.Equal(t, EnvironmentLocal, cfg.Environment)
	assert.Equal(t, DefaultLocalEndpoint, cfg.GraphQL.Endpoint)
	assert.Equal(t, DefaultLocalAPIKey, cfg.GraphQL.APIKey)
	assert.Equal(t, DefaultLocalServerURL, cfg.Server.URL)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTP.Timeout)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestLoader_EmptyDocumentIsLocal(t *testing.T) {
	cfg, err := DefaultLoader().Parse([]byte(``))
	require.NoError(t, err)
	assert.False(t, cfg.IsProduction())
}

func TestLoader_ProductionConfig(t *testing.T) {
	t.Setenv("TEST_GRAFBASE_KEY", "prod-key")

	yamlContent := `
environment: production
graphql:
  endpoint: https://api.example.com/graphql
  api_key: ${TEST_GRAFBASE_KEY}
server:
  url: https://app.example.com/
http:
  timeout: 5s
log:
  level: debug
`
	cfg, err := DefaultLoader().Parse([]byte(yamlContent))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "prod-key", cfg.GraphQL.APIKey)
	assert.Equal(t, "https://app.example.com", cfg.Server.URL, "trailing slash is trimmed")
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoader_ProductionRequiresEndpoints(t *testing.T) {
	_, err := DefaultLoader().Parse([]byte(`environment: production`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
	assert.Contains(t, err.Error(), "GraphQL.Endpoint")
	assert.Contains(t, err.Error(), "GraphQL.APIKey")
	assert.Contains(t, err.Error(), "Server.URL")
}

func TestLoader_Validation(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		contains string
	}{
		{
			name:     "unknown environment",
			yaml:     `environment: staging`,
			contains: "unknown environment: staging",
		},
		{
			name: "endpoint is not a url",
			yaml: `
graphql:
  endpoint: not a url
`,
			contains: "GraphQL.Endpoint",
		},
		{
			name: "bad log level",
			yaml: `
log:
  level: loud
`,
			contains: "Log.Level",
		},
		{
			name:     "malformed yaml",
			yaml:     "graphql: [",
			contains: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultLoader().Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: local\n"), 0o600))

	cfg, err := DefaultLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultLocalEndpoint, cfg.GraphQL.Endpoint)

	_, err = DefaultLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestLoader_FromEnv(t *testing.T) {
	t.Run("Production", func(t *testing.T) {
		t.Setenv(EnvAppEnv, "production")
		t.Setenv(EnvGraphQLURL, "https://api.example.com/graphql")
		t.Setenv(EnvGraphQLKey, "prod-key")
		t.Setenv(EnvServerURL, "https://app.example.com")
		t.Setenv(EnvHTTPTimeout, "10s")
		t.Setenv(EnvLogLevel, "")

		cfg, err := DefaultLoader().FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/graphql", cfg.GraphQL.Endpoint)
		assert.Equal(t, "prod-key", cfg.GraphQL.APIKey)
		assert.Equal(t, "https://app.example.com", cfg.Server.URL)
		assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	})

	t.Run("LocalIgnoresProductionValues", func(t *testing.T) {
		t.Setenv(EnvAppEnv, "")
		t.Setenv(EnvGraphQLURL, "https://api.example.com/graphql")
		t.Setenv(EnvGraphQLKey, "prod-key")
		t.Setenv(EnvServerURL, "https://app.example.com")
		t.Setenv(EnvHTTPTimeout, "")
		t.Setenv(EnvLogLevel, "")

		cfg, err := DefaultLoader().FromEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultLocalEndpoint, cfg.GraphQL.Endpoint)
		assert.Equal(t, DefaultLocalAPIKey, cfg.GraphQL.APIKey)
		assert.Equal(t, DefaultLocalServerURL, cfg.Server.URL)
	})

	t.Run("ProductionMissingValues", func(t *testing.T) {
		t.Setenv(EnvAppEnv, "production")
		t.Setenv(EnvGraphQLURL, "")
		t.Setenv(EnvGraphQLKey, "")
		t.Setenv(EnvServerURL, "")
		t.Setenv(EnvHTTPTimeout, "")
		t.Setenv(EnvLogLevel, "")

		_, err := DefaultLoader().FromEnv()
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
	})

	t.Run("BadTimeout", func(t *testing.T) {
		t.Setenv(EnvAppEnv, "")
		t.Setenv(EnvHTTPTimeout, "soon")

		_, err := DefaultLoader().FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvHTTPTimeout)
	})
}

func TestLoadDotEnv(t *testing.T) {
	const key = "PROJECT_GATEWAY_DOTENV_TEST"
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv(key))
}
