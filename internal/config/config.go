package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

// BrushConfig represents a generic brush configuration
type BrushConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:",inline"`
}

// JobConfig is one input image and the name its result is saved under
type JobConfig struct {
	Input  string `yaml:"input" validate:"required"`
	Output string `yaml:"output" validate:"required"`
}

type Output struct {
	Directory string `yaml:"directory"`
	Format    string `yaml:"format" validate:"oneof=jpg jpeg png bmp tif tiff"`
	Quality   int    `yaml:"quality" validate:"min=1,max=100"`
}

type Input struct {
	SVGFallbackWidth  int `yaml:"svgFallbackWidth" validate:"min=0"`
	SVGFallbackHeight int `yaml:"svgFallbackHeight" validate:"min=0"`
}

// Database configures the run ledger. An empty type disables it.
type Database struct {
	Type             string `yaml:"type" validate:"omitempty,oneof=sqlite"`
	ConnectionString string `yaml:"connectionString"`
}

// Cache configures the filter result cache. An empty type disables it.
type Cache struct {
	Type     string        `yaml:"type" validate:"omitempty,oneof=memory redis"`
	Address    string        `yaml:"address"`
	PoolSize   int           `yaml:"poolSize" validate:"min=0"`
	TTL        time.Duration `yaml:"ttl" validate:"min=0"`
	MaxEntries int           `yaml:"maxEntries" validate:"min=0"`
}

type Config struct {
	LogLevel string        `yaml:"logLevel" validate:"oneof=debug info warn error"`
	Port     int           `yaml:"port" validate:"min=1,max=65535"`
	Jobs     []JobConfig   `yaml:"jobs" validate:"dive"`
	Brushes  []BrushConfig `yaml:"brushes"`
	Input    Input         `yaml:"input"`
	Output   Output        `yaml:"output"`
	Database Database      `yaml:"database"`
	Cache    Cache         `yaml:"cache"`
}

// DefaultJobs are run when the configuration lists none
func DefaultJobs() []JobConfig {
	return []JobConfig{
		{Input: filepath.Join("data", "flower.jpg"), Output: "flower"},
		{Input: filepath.Join("data", "sunset_small.jpg"), Output: "sunset"},
	}
}

// ConfigPath returns CONFIG_PATH, or config/config.yaml in the working directory
func ConfigPath() string {
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		return configPath
	}
	return filepath.Join("config", "config.yaml")
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration, applies defaults and validates the result
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validateJobs(cfg.Jobs); err != nil {
		return nil, fmt.Errorf("invalid job configuration: %w", err)
	}
	if err := validateBrushes(cfg.Brushes); err != nil {
		return nil, fmt.Errorf("invalid brush configuration: %w", err)
	}
	if cfg.Cache.Type == "redis" && cfg.Cache.Address == "" {
		return nil, fmt.Errorf("invalid cache configuration: redis cache needs an address")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if len(cfg.Jobs) == 0 {
		cfg.Jobs = DefaultJobs()
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "jpg"
	}
	if cfg.Output.Quality == 0 {
		cfg.Output.Quality = 100
	}
	if cfg.Database.Type != "" && cfg.Database.ConnectionString == "" {
		cfg.Database.ConnectionString = ":memory:"
	}
	if cfg.Cache.PoolSize == 0 {
		cfg.Cache.PoolSize = 10
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 256
	}
}

// validateJobs rejects two jobs writing the same output
func validateJobs(jobs []JobConfig) error {
	seenOutputs := make(map[string]bool)

	for _, job := range jobs {
		if seenOutputs[job.Output] {
			return fmt.Errorf("duplicate output name: %s", job.Output)
		}
		seenOutputs[job.Output] = true
	}

	return nil
}

// validateBrushes ensures all brush configurations have a name
func validateBrushes(brushes []BrushConfig) error {
	for i, b := range brushes {
		if b.Name == "" {
			return fmt.Errorf("brush at index %d has empty name", i)
		}
	}
	return nil
}
