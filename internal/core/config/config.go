// Package config handles configuration loading and validation for audiotidy.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// Extensions lists recognized audio extensions, lowercased with dots.
	Extensions []string `yaml:"extensions"`
	// Prefix is the default canonical name prefix.
	Prefix string `yaml:"prefix"`
	// StartIndex is the default first index value.
	StartIndex int `yaml:"start_index"`
	// MappingFile is the default path for the rename mapping table.
	MappingFile string `yaml:"mapping_file"`
	// ReportFile is the default path for the scan report.
	ReportFile string `yaml:"report_file"`
	// Exclude holds doublestar glob patterns; matching file names are
	// never considered for renaming or scanning.
	Exclude []string `yaml:"exclude"`
}

// DefaultConfig returns a Config with sensible defaults matching the
// common voice-dataset layout.
func DefaultConfig() Config {
	return Config{
		Extensions:  []string{".wav", ".mp3", ".flac", ".ogg", ".m4a"},
		Prefix:      "speaker",
		StartIndex:  1,
		MappingFile: "rename_mapping.csv",
		ReportFile:  "audio_report.csv",
	}
}

// Load reads configuration from the given path. If the path is empty or
// the file doesn't exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if len(c.Extensions) == 0 {
		c.Extensions = def.Extensions
	}
	if c.Prefix == "" {
		c.Prefix = def.Prefix
	}
	if c.MappingFile == "" {
		c.MappingFile = def.MappingFile
	}
	if c.ReportFile == "" {
		c.ReportFile = def.ReportFile
	}
}
