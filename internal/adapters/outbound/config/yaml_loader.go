// Package config loads engine configuration from .deafcheck.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deaffirst/deafcheck/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".deafcheck.yaml"

// YAMLLoader reads .deafcheck.yaml from a directory.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .deafcheck.yaml from dir. A missing file is not an error:
// the engine defaults apply. Explicit values overlay the defaults, so a
// config file only has to name the knobs it changes.
func (l *YAMLLoader) Load(dir string) (domain.EngineConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.EngineConfig{}, err
	}

	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.EngineConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.EngineConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}
