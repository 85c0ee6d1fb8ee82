package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names. GROQ_* are the two provider values the relay
// has always been configured with.
const (
	EnvAPIKey       = "GROQ_API_KEY"
	EnvBaseURL      = "GROQ_BASE_URL"
	EnvModel        = "TRANSCRIBE_MODEL"
	EnvHost         = "RELAY_HOST"
	EnvPort         = "RELAY_PORT"
	EnvScratchDir   = "RELAY_SCRATCH_DIR"
	EnvMaxUploadMB  = "RELAY_MAX_UPLOAD_MB"
	EnvEnvironment  = "RELAY_ENV"
	EnvConfigFile   = "RELAY_CONFIG"
	EnvReadTimeout  = "RELAY_READ_TIMEOUT"
	EnvLogLevel     = "RELAY_LOG_LEVEL"
	EnvSweepOlderBy = "RELAY_SCRATCH_SWEEP_AGE"
)

// envPaths are searched in order; the first existing file wins.
var envPaths = []string{
	".env",
	".env.local",
	"../.env",
}

// LoadEnv loads environment variables from the first .env file found.
// A missing file is not an error: variables may be set system-wide.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return "", fmt.Errorf("error loading %s file: %w", envPath, err)
		}
		return envPath, nil
	}
	return "", nil
}

// applyEnv overrides cfg with any environment variable that is set.
func applyEnv(cfg *Config) error {
	if v := lookup(EnvAPIKey); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := lookup(EnvBaseURL); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := lookup(EnvModel); v != "" {
		cfg.Provider.Model = v
	}
	if v := lookup(EnvHost); v != "" {
		cfg.Server.Host = v
	}
	if v := lookup(EnvPort); v != "" {
		cfg.Server.Port = v
	}
	if v := lookup(EnvScratchDir); v != "" {
		cfg.Scratch.Dir = v
	}
	if v := lookup(EnvEnvironment); v != "" {
		cfg.Environment = v
	}
	if v := lookup(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := lookup(EnvMaxUploadMB); v != "" {
		mb, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxUploadMB, err)
		}
		cfg.Server.MaxUploadMB = mb
	}
	if v := lookup(EnvReadTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvReadTimeout, err)
		}
		cfg.Server.ReadTimeout = d
	}
	if v := lookup(EnvSweepOlderBy); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSweepOlderBy, err)
		}
		cfg.Scratch.SweepOlderThan = d
	}
	return nil
}

func lookup(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
