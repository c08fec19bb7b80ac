// Package config resolves CLI configuration from config files, .env files,
// and environment variables, in that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Uploads UploadsConfig `mapstructure:"uploads"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig locates the hiring backend.
type APIConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

// UploadsConfig names the three upload endpoints. Empty values are derived
// from the API base URL.
type UploadsConfig struct {
	DocumentURL string `mapstructure:"document_url"`
	VoiceURL    string `mapstructure:"voice_url"`
	VideoURL    string `mapstructure:"video_url"`
	TimeoutMS   int    `mapstructure:"timeout_ms"`
}

// LoggingConfig selects log verbosity and encoding.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads config.yaml (working directory or ./configs), merges a .env file
// when present, and lets APPFORM_* environment variables override everything.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("APPFORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from an explicit path.
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix("APPFORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = os.Getenv("APPFORM_API_BASE_URL")
	}
	if cfg.API.TimeoutMS == 0 {
		cfg.API.TimeoutMS = 15000
	}
	if cfg.Uploads.TimeoutMS == 0 {
		cfg.Uploads.TimeoutMS = 60000
	}

	base := strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.Uploads.DocumentURL == "" && base != "" {
		cfg.Uploads.DocumentURL = base + "/uploads/documents"
	}
	if cfg.Uploads.VoiceURL == "" && base != "" {
		cfg.Uploads.VoiceURL = base + "/uploads/voice"
	}
	if cfg.Uploads.VideoURL == "" && base != "" {
		cfg.Uploads.VideoURL = base + "/uploads/video"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("config: api.base_url is required")
	}
	return nil
}

// APITimeout returns the request timeout for listing and submission calls.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutMS) * time.Millisecond
}

// UploadTimeout returns the per-upload request timeout.
func (c *Config) UploadTimeout() time.Duration {
	return time.Duration(c.Uploads.TimeoutMS) * time.Millisecond
}
