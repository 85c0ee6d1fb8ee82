package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvAPIKey, EnvBaseURL, EnvModel, EnvHost, EnvPort, EnvScratchDir,
		EnvMaxUploadMB, EnvEnvironment, EnvConfigFile, EnvReadTimeout,
		EnvLogLevel, EnvSweepOlderBy,
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "gsk_test_key")
	t.Setenv(EnvBaseURL, "https://api.groq.com/openai/v1")
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvMaxUploadMB, "10")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gsk_test_key", cfg.Provider.APIKey)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Provider.BaseURL)
	assert.Equal(t, DefaultModel, cfg.Provider.Model)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes())
	assert.Equal(t, ":9090", cfg.Server.Addr())
	assert.Zero(t, cfg.Server.WriteTimeout)
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "relay.yaml")
	content := `
environment: production
log_level: warn
server:
  port: "7000"
  read_timeout: 30s
  max_upload_mb: 50
  allowed_origins:
    - https://notes.example.com
provider:
  name: groq
  api_key: from-file
  model: whisper-large-v3-turbo
scratch:
  dir: /var/tmp/relay
  sweep_older_than: 10m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv(EnvAPIKey, "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(50), cfg.Server.MaxUploadMB)
	assert.Equal(t, []string{"https://notes.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "from-env", cfg.Provider.APIKey)
	assert.Equal(t, "whisper-large-v3-turbo", cfg.Provider.Model)
	assert.Equal(t, "/var/tmp/relay", cfg.Scratch.Dir)
	assert.Equal(t, 10*time.Minute, cfg.Scratch.SweepOlderThan)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name          string
		env           map[string]string
		configFile    string
		errorContains string
	}{
		{
			name:          "missing API key",
			env:           map[string]string{},
			errorContains: "APIKey",
		},
		{
			name:          "bad base URL",
			env:           map[string]string{EnvAPIKey: "k", EnvBaseURL: "ftp://example.com"},
			errorContains: "must start with http",
		},
		{
			name:          "non numeric upload limit",
			env:           map[string]string{EnvAPIKey: "k", EnvMaxUploadMB: "lots"},
			errorContains: EnvMaxUploadMB,
		},
		{
			name:          "unknown environment",
			env:           map[string]string{EnvAPIKey: "k", EnvEnvironment: "staging"},
			errorContains: "Environment",
		},
		{
			name:          "port out of range",
			env:           map[string]string{EnvAPIKey: "k", EnvPort: "70000"},
			errorContains: "port invalid",
		},
		{
			name:          "missing config file",
			env:           map[string]string{EnvAPIKey: "k"},
			configFile:    "/does/not/exist.yaml",
			errorContains: "failed to read config file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(tc.configFile)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestLoadEnv_ReadsDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is already set, even to "".
	require.NoError(t, os.Unsetenv(EnvAPIKey))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GROQ_API_KEY=dotenv-key\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", loaded)
	assert.Equal(t, "dotenv-key", os.Getenv(EnvAPIKey))
}
