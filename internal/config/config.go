package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel       = "whisper-large-v3"
	DefaultProvider    = "groq"
	DefaultPort        = "8080"
	DefaultMaxUploadMB = 25
)

// Config is read once at process start and passed down explicitly.
type Config struct {
	Environment string         `yaml:"environment" validate:"oneof=development production test"`
	LogLevel    string         `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Server      ServerConfig   `yaml:"server"`
	Provider    ProviderConfig `yaml:"provider"`
	Scratch     ScratchConfig  `yaml:"scratch"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host        string        `yaml:"host"`
	Port        string        `yaml:"port" validate:"required,numeric"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// WriteTimeout stays zero by default: the provider call has no deadline.
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	MaxUploadMB  int64         `yaml:"max_upload_mb" validate:"gte=1,lte=1024"`
	// AllowedOrigins lists the browser origins that may call the API
	// cross-origin. "*" admits any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ProviderConfig identifies the external speech-to-text service.
type ProviderConfig struct {
	Name    string `yaml:"name" validate:"required"`
	APIKey  string `yaml:"api_key" validate:"required"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model" validate:"required"`
}

// ScratchConfig locates the directory holding transient upload files.
type ScratchConfig struct {
	Dir            string        `yaml:"dir" validate:"required"`
	SweepOlderThan time.Duration `yaml:"sweep_older_than"`
}

// MaxUploadBytes returns the upload limit in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// IsProduction reports whether the relay runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Default returns a configuration with every optional value filled in.
func Default() *Config {
	return &Config{
		Environment: "development",
		LogLevel:    "info",
		Server: ServerConfig{
			Host:           "",
			Port:           DefaultPort,
			ReadTimeout:    60 * time.Second,
			IdleTimeout:    120 * time.Second,
			MaxUploadMB:    DefaultMaxUploadMB,
			AllowedOrigins: []string{"*"},
		},
		Provider: ProviderConfig{
			Name:  DefaultProvider,
			Model: DefaultModel,
		},
		Scratch: ScratchConfig{
			Dir:            filepath.Join(os.TempDir(), "audio-relay"),
			SweepOlderThan: time.Hour,
		},
	}
}

// Load builds the configuration: defaults, then the optional YAML file, then
// environment overrides. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	if _, err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if path == "" {
		path = lookup(EnvConfigFile)
	}

	cfg := Default()
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

var validate = validator.New()

// Validate checks struct tags first, then the field-level rules.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid configuration: %s failed on '%s'", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Provider.BaseURL != "" {
		if err := ValidateURL(cfg.Provider.BaseURL, "provider base"); err != nil {
			return err
		}
	}
	if err := ValidatePort(cfg.Server.Port, "server"); err != nil {
		return err
	}
	if cfg.Server.ReadTimeout != 0 {
		if err := ValidateTimeout(cfg.Server.ReadTimeout, "read"); err != nil {
			return err
		}
	}
	return nil
}
