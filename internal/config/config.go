package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete kornmo configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/kornmo.log"`
}

// PathsConfig contains the locations of the raw cache files. All relative
// paths are resolved against DataDir by ResolvePaths.
type PathsConfig struct {
	DataDir          string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	RawDir           string `yaml:"raw_dir" envconfig:"RAW_DIR" default:"landbruksdir/raw" validate:"required"`
	DeliveriesFile   string `yaml:"deliveries_file" envconfig:"DELIVERIES_FILE" default:"farmer_deliveries.csv" validate:"required"`
	GrantsFile       string `yaml:"grants_file" envconfig:"GRANTS_FILE" default:"farmer_grants.csv" validate:"required"`
	LegacyGrantsFile string `yaml:"legacy_grants_file" envconfig:"LEGACY_GRANTS_FILE" default:"legacy_grants.csv" validate:"required"`
}

// Load loads configuration from environment variables and an optional YAML
// config file. Environment variables take precedence over file values.
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("KORNMO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against the struct-level validation rules.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence).
// envconfig fills defaults, so env values only yield when the file sets a
// field the environment left at its default.
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := envConfig

	defaults := defaultConfig()
	if fileConfig.Logging.Level != "" && envConfig.Logging.Level == defaults.Logging.Level {
		merged.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Output != "" && envConfig.Logging.Output == defaults.Logging.Output {
		merged.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" && envConfig.Logging.FilePath == defaults.Logging.FilePath {
		merged.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if fileConfig.Paths.DataDir != "" && envConfig.Paths.DataDir == defaults.Paths.DataDir {
		merged.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if fileConfig.Paths.RawDir != "" && envConfig.Paths.RawDir == defaults.Paths.RawDir {
		merged.Paths.RawDir = fileConfig.Paths.RawDir
	}
	if fileConfig.Paths.DeliveriesFile != "" && envConfig.Paths.DeliveriesFile == defaults.Paths.DeliveriesFile {
		merged.Paths.DeliveriesFile = fileConfig.Paths.DeliveriesFile
	}
	if fileConfig.Paths.GrantsFile != "" && envConfig.Paths.GrantsFile == defaults.Paths.GrantsFile {
		merged.Paths.GrantsFile = fileConfig.Paths.GrantsFile
	}
	if fileConfig.Paths.LegacyGrantsFile != "" && envConfig.Paths.LegacyGrantsFile == defaults.Paths.LegacyGrantsFile {
		merged.Paths.LegacyGrantsFile = fileConfig.Paths.LegacyGrantsFile
	}

	return merged
}

// defaultConfig returns the configuration produced by envconfig defaults with
// an empty environment.
func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/kornmo.log",
		},
		Paths: PathsConfig{
			DataDir:          "data",
			RawDir:           "landbruksdir/raw",
			DeliveriesFile:   "farmer_deliveries.csv",
			GrantsFile:       "farmer_grants.csv",
			LegacyGrantsFile: "legacy_grants.csv",
		},
	}
}

// getConfigFilePath returns the config file location, overridable via
// KORNMO_CONFIG_FILE.
func getConfigFilePath() string {
	if path := os.Getenv("KORNMO_CONFIG_FILE"); path != "" {
		return path
	}
	return "kornmo.yaml"
}
