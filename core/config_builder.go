package core

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigBuilder provides a fluent interface for creating run configurations
type ConfigBuilder struct {
	config *Config
}

// NewConfigBuilder creates a builder seeded with DefaultConfig
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: DefaultConfig()}
}

// WithMetadata sets the configuration metadata
func (b *ConfigBuilder) WithMetadata(version, description, author string) *ConfigBuilder {
	b.config.Metadata.Version = version
	b.config.Metadata.Description = description
	b.config.Metadata.Author = author
	return b
}

// WithInputs sets the two lookup files and the checklist file
func (b *ConfigBuilder) WithInputs(first, second, checklist string) *ConfigBuilder {
	b.config.Inputs.First = first
	b.config.Inputs.Second = second
	b.config.Inputs.Checklist = checklist
	return b
}

// WithEncoding sets the input encoding
func (b *ConfigBuilder) WithEncoding(encoding string) *ConfigBuilder {
	b.config.Inputs.Encoding = encoding
	return b
}

// WithTrimFinalNewline drops the empty line after a trailing newline
func (b *ConfigBuilder) WithTrimFinalNewline(trim bool) *ConfigBuilder {
	b.config.Inputs.TrimFinalNewline = trim
	return b
}

// WithDelimiter sets the field delimiter of report lines
func (b *ConfigBuilder) WithDelimiter(delimiter string) *ConfigBuilder {
	b.config.Output.Delimiter = delimiter
	return b
}

// WithMarker sets the pass-through marker
func (b *ConfigBuilder) WithMarker(marker string) *ConfigBuilder {
	b.config.Output.Marker = marker
	return b
}

// WithNotFound sets the text printed for unmatched entries
func (b *ConfigBuilder) WithNotFound(notFound string) *ConfigBuilder {
	b.config.Output.NotFound = notFound
	return b
}

// WithLogFile enables the rotating diagnostic log
func (b *ConfigBuilder) WithLogFile(path string) *ConfigBuilder {
	b.config.Logging.File = path
	return b
}

// WithAuditFile enables the JSON-lines audit log
func (b *ConfigBuilder) WithAuditFile(path string) *ConfigBuilder {
	b.config.Logging.AuditFile = path
	return b
}

// WithVerbose enables debug logging
func (b *ConfigBuilder) WithVerbose(verbose bool) *ConfigBuilder {
	b.config.Logging.Verbose = verbose
	return b
}

// Build returns the constructed configuration
func (b *ConfigBuilder) Build() *Config {
	b.config.Metadata.UpdatedAt = time.Now().UTC()
	return b.config
}

// BuildAndValidate returns the configuration or the first constraint it violates
func (b *ConfigBuilder) BuildAndValidate() (*Config, error) {
	cfg := b.Build()
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}
	return cfg, nil
}

// BuildAndSave builds the configuration and writes it to path
func (b *ConfigBuilder) BuildAndSave(path string) (*Config, error) {
	cfg, err := b.BuildAndValidate()
	if err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfg, nil
}
