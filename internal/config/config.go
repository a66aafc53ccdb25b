package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
	Report   ReportConfig   `yaml:"report" envconfig:"REPORT"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// CleaningConfig contains cleaner run configuration
type CleaningConfig struct {
	InputFile       string `yaml:"input_file" envconfig:"INPUT_FILE"`
	WriteRejections bool   `yaml:"write_rejections" envconfig:"WRITE_REJECTIONS"`
	WriteMetrics    bool   `yaml:"write_metrics" envconfig:"WRITE_METRICS"`
	WriteTraces     bool   `yaml:"write_traces" envconfig:"WRITE_TRACES"`
}

// ReportConfig contains sales report rendering configuration.
// These values are handed to the render functions as explicit parameters;
// nothing reads them as ambient state.
type ReportConfig struct {
	Precision   int `yaml:"precision" envconfig:"PRECISION" validate:"min=0,max=6"`
	ColumnWidth int `yaml:"column_width" envconfig:"COLUMN_WIDTH" validate:"min=8,max=40"`
	TopItems    int `yaml:"top_items" envconfig:"TOP_ITEMS" validate:"min=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
	CatalogFile   string `yaml:"catalog_file" envconfig:"CATALOG_FILE"`
}

// Load loads configuration from a config file and environment variables.
// Precedence: environment variables > file values > defaults. An explicit
// configFile overrides the usual probing locations; pass "" to probe.
func Load(configFile string) (*Config, error) {
	cfg := *Default()

	// Load from config file if exists
	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	// Environment variables override file values and defaults
	if err := envconfig.Process("CAFE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Logging.Format != "json" {
		// Dual-output JSON logging is the only supported mode
		c.Logging.Format = "json"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid value for %s: failed %q check", first.Namespace(), first.Tag())
		}
		return err
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Cleaning: CleaningConfig{
			WriteRejections: true,
			WriteMetrics:    true,
			WriteTraces:     true,
		},
		Report: ReportConfig{
			Precision:   2,
			ColumnWidth: 14,
			TopItems:    5,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir:     "data",
			LogsDir:     "logs",
			CatalogFile: "catalog.yaml",
		},
	}
}
