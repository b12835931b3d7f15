package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "fsinventory.yaml"

type Config struct {
	// Exclude holds scan skip patterns.
	Exclude []string `yaml:"exclude"`
	// OutputFile is where `scan` writes its snapshot when no output argument is given.
	OutputFile string `yaml:"output_file"`
	// Format overrides the snapshot format inferred from the output file extension.
	Format string `yaml:"format"`
	// DigitWidth is the rename counter width used when --digits is not set.
	DigitWidth int    `yaml:"digit_width"`
	LogLevel   string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Exclude:    []string{},
		DigitWidth: 3,
		LogLevel:   "info",
	}
}

// LoadConfig reads path, falling back to DefaultConfig when the file does not exist.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Initialize Exclude slice if nil (for explicit `exclude:` with no items)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}
	if cfg.DigitWidth <= 0 {
		return nil, fmt.Errorf("digit_width must be positive, got %d", cfg.DigitWidth)
	}

	return cfg, nil
}
