package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the global flags in a YAML file, so a document's shape
// parameters can live next to the document instead of on every invocation:
//
//	delimiter: "\n"
//	line_length: 121
//	max_transactions: 20000
//
// Zero values mean "not set" and fall through to the defaults.
type Config struct {
	Delimiter       string `yaml:"delimiter"`
	LineLength      int    `yaml:"line_length"`
	MaxTransactions int    `yaml:"max_transactions"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.LineLength < 0 {
		return nil, fmt.Errorf("config %s: line_length must not be negative", path)
	}
	if cfg.MaxTransactions < 0 {
		return nil, fmt.Errorf("config %s: max_transactions must not be negative", path)
	}

	return &cfg, nil
}
