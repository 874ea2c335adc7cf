package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/reqscribe/requisition-api/internal/model"
	"github.com/reqscribe/requisition-api/pkg/validator"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Source    SourceConfig    `mapstructure:"source"`
	Form      FormConfig      `mapstructure:"form"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port" envconfig:"PORT" validate:"required,min=1,max=65535"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes" envconfig:"MAX_BODY_BYTES"`
}

type SourceConfig struct {
	BaseURL string        `mapstructure:"base_url" envconfig:"BASE_API_URL" validate:"required,url"`
	Tables  []string      `mapstructure:"tables" envconfig:"TABLE_NAMES" validate:"required,min=1"`
	Timeout time.Duration `mapstructure:"timeout" envconfig:"SOURCE_TIMEOUT"`
}

type FormConfig struct {
	TemplatePath    string `mapstructure:"template_path" envconfig:"TEMPLATE_PATH" validate:"required"`
	OutputDir       string `mapstructure:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	FieldConfigPath string `mapstructure:"field_config_path" envconfig:"FIELD_CONFIG_PATH" validate:"required"`
	ValidIDsPath    string `mapstructure:"valid_ids_path" envconfig:"VALID_IDS_PATH" validate:"required"`
	LicenseKey      string `mapstructure:"license_key" envconfig:"UNIDOC_LICENSE_API_KEY" validate:"required"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" envconfig:"RATE_LIMIT_RPS"`
	Burst             int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST"`
}

// LoadConfig reads config.yaml and applies environment overrides.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// environment variables win over the file
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	applyDefaults(&config)

	if err := validator.New().Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 15 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 30 * time.Second
	}
	if config.Server.MaxBodyBytes == 0 {
		config.Server.MaxBodyBytes = 1 << 20
	}
	if config.Source.Timeout == 0 {
		config.Source.Timeout = 10 * time.Second
	}
	if config.RateLimit.RequestsPerSecond == 0 {
		config.RateLimit.RequestsPerSecond = 20
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = 40
	}
}

// LoadFieldConfig reads the field-name to FieldSpec mapping. It is loaded
// once at startup and treated as immutable afterwards.
func LoadFieldConfig(path string) (*model.FieldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field config: %w", err)
	}

	var cfg model.FieldConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse field config: %w", err)
	}
	if len(cfg.Fields) == 0 {
		return nil, fmt.Errorf("field config %s defines no fields", path)
	}
	return &cfg, nil
}

// LoadValidIDs reads the sets of known patient and doctor ids.
func LoadValidIDs(path string) (*model.ValidIDs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read valid ids: %w", err)
	}

	var ids model.ValidIDs
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse valid ids: %w", err)
	}
	return &ids, nil
}
