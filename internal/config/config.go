package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/harrison/rwc/internal/counter"
	"github.com/harrison/rwc/internal/logger"
)

// EnvConfigPath names the environment variable that overrides the config file location.
const EnvConfigPath = "RWC_CONFIG"

// Config represents rwc configuration options
type Config struct {
	// LogLevel sets the diagnostic verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// ChunkSize is the read size in bytes used when scanning content
	ChunkSize int `yaml:"chunk_size"`

	// ShowDirs prints a "dir <name>" line for directory arguments
	ShowDirs bool `yaml:"show_dirs"`

	// Total prints an aggregate line after all results
	Total bool `yaml:"total"`

	// ReportPath, when set, receives a YAML report of the run
	ReportPath string `yaml:"report_path"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:   logger.DefaultLevel,
		ChunkSize:  counter.DefaultChunkSize,
		ShowDirs:   false,
		Total:      false,
		ReportPath: "",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointer fields tell an explicit false or zero apart from an absent key.
	type yamlConfig struct {
		LogLevel   *string `yaml:"log_level"`
		ChunkSize  *int    `yaml:"chunk_size"`
		ShowDirs   *bool   `yaml:"show_dirs"`
		Total      *bool   `yaml:"total"`
		ReportPath *string `yaml:"report_path"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.MergeWithFlags(yamlCfg.LogLevel, yamlCfg.ChunkSize, yamlCfg.ShowDirs, yamlCfg.Total, yamlCfg.ReportPath)
	return cfg, nil
}

// DefaultPath returns the config file location: $RWC_CONFIG if set,
// otherwise .rwc/config.yaml under dir.
func DefaultPath(dir string) string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(dir, ".rwc", "config.yaml")
}

// LoadConfigFromDir loads configuration from DefaultPath(dir)
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(DefaultPath(dir))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, chunkSize *int, showDirs *bool, total *bool, reportPath *string) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if chunkSize != nil {
		c.ChunkSize = *chunkSize
	}
	if showDirs != nil {
		c.ShowDirs = *showDirs
	}
	if total != nil {
		c.Total = *total
	}
	if reportPath != nil {
		c.ReportPath = *reportPath
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be > 0, got %d", c.ChunkSize)
	}
	return nil
}
