// Package config loads optional GA-parameter overrides for the CLI
// harness from a JSON file, the way the teacher's internal/project
// package loads AppConfig: read-or-default, never required.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// GAConfig overrides the defaults the adapter would otherwise apply
// (spec.md §6) for each params field the request leaves unset. These are host
// defaults, not core behavior: the optimizer core itself takes no
// configuration beyond its call arguments.
type GAConfig struct {
	Population   int     `json:"population"`
	Generations  int     `json:"generations"`
	MutationRate float64 `json:"mutation_rate"`
	Seed         uint32  `json:"seed"`
}

// DefaultGAConfig mirrors the wire defaults of spec.md §6 exactly.
func DefaultGAConfig() GAConfig {
	return GAConfig{
		Population:   40,
		Generations:  40,
		MutationRate: 0.08,
		Seed:         12345,
	}
}

// DefaultConfigPath returns ~/.truckpack/config.json, following
// DefaultConfigDir/DefaultConfigPath in the teacher's internal/project
// package.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".truckpack", "config.json")
}

// Load reads a GAConfig from path. If the file does not exist, it returns
// DefaultGAConfig with no error.
func Load(path string) (GAConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultGAConfig(), nil
		}
		return GAConfig{}, err
	}

	config := DefaultGAConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return GAConfig{}, err
	}
	return config, nil
}

// Save persists a GAConfig to path as JSON, creating parent directories
// as needed.
func Save(path string, config GAConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
