package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default input file names, used when no path is configured
const (
	DefaultFirstPath     = "first.txt"
	DefaultSecondPath    = "second.txt"
	DefaultChecklistPath = "check10.txt"
)

// ConfigMetadata contains information about a saved run configuration
type ConfigMetadata struct {
	// Version of the configuration
	Version string `yaml:"version,omitempty"`

	// Description of what this configuration cross-references
	Description string `yaml:"description,omitempty"`

	// Author of the configuration
	Author string `yaml:"author,omitempty"`

	// Last modification time
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`

	// Hash of the file content, set on load
	Hash string `yaml:"-"`
}

// InputConfig names the three input files and how to read them
type InputConfig struct {
	First     string `yaml:"first" validate:"required"`
	Second    string `yaml:"second" validate:"required"`
	Checklist string `yaml:"checklist" validate:"required"`

	Encoding         string `yaml:"encoding,omitempty" validate:"omitempty,oneof=utf-8 utf-8-sig euc-kr utf-16le utf-16be"`
	TrimFinalNewline bool   `yaml:"trim_final_newline,omitempty"`
}

// OutputConfig controls the report line shapes
type OutputConfig struct {
	Delimiter string `yaml:"delimiter" validate:"required"`
	Marker    string `yaml:"marker" validate:"required"`
	NotFound  string `yaml:"not_found" validate:"required"`
}

// LoggingConfig controls diagnostics and the audit trail
type LoggingConfig struct {
	// Rotating diagnostic log file; stderr only when empty
	File string `yaml:"file,omitempty"`

	// JSON-lines audit log; disabled when empty
	AuditFile string `yaml:"audit_file,omitempty"`

	MaxSizeMB  int  `yaml:"max_size_mb,omitempty" validate:"gte=0"`
	MaxBackups int  `yaml:"max_backups,omitempty" validate:"gte=0"`
	MaxAgeDays int  `yaml:"max_age_days,omitempty" validate:"gte=0"`
	Compress   bool `yaml:"compress,omitempty"`
	Verbose    bool `yaml:"verbose,omitempty"`
}

// Config is a complete cross-reference run configuration
type Config struct {
	Metadata ConfigMetadata `yaml:"metadata,omitempty"`
	Inputs   InputConfig    `yaml:"inputs"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Metadata: ConfigMetadata{Version: "1"},
		Inputs: InputConfig{
			First:     DefaultFirstPath,
			Second:    DefaultSecondPath,
			Checklist: DefaultChecklistPath,
			Encoding:  EncodingUTF8,
		},
		Output: OutputConfig{
			Delimiter: DefaultDelimiter,
			Marker:    DefaultMarker,
			NotFound:  DefaultNotFound,
		},
		Logging: LoggingConfig{
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// LoadConfig reads a YAML configuration file. Fields missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to parse config: %w", err)}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	cfg.Metadata.Hash = calculateConfigHash(data)

	return cfg, nil
}

// SaveConfig writes the configuration as YAML
func SaveConfig(cfg *Config, path string) error {
	cfg.Metadata.UpdatedAt = time.Now().UTC()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cfg.Metadata.Hash = calculateConfigHash(data)
	return nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadOptions returns the loader settings for this configuration
func (c *Config) LoadOptions() LoadOptions {
	return LoadOptions{
		Encoding:         c.Inputs.Encoding,
		TrimFinalNewline: c.Inputs.TrimFinalNewline,
	}
}

// MatchOptions returns the matcher settings for this configuration
func (c *Config) MatchOptions() MatchOptions {
	return MatchOptions{Marker: c.Output.Marker}
}

// ReportFormat returns the line rendering settings for this configuration
func (c *Config) ReportFormat() ReportFormat {
	return ReportFormat{Delimiter: c.Output.Delimiter, NotFound: c.Output.NotFound}
}

// calculateConfigHash identifies the exact configuration a run used
func calculateConfigHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
