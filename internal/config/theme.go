package config

import (
	"adventcal/internal/model"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTheme reads a client theme from a YAML file and overlays it on the
// built-in defaults. An empty path returns the defaults.
func LoadTheme(path string) (model.ClientConfig, error) {
	base := model.DefaultClientConfig()
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read theme file: %w", err)
	}

	var theme model.ClientConfig
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return base, fmt.Errorf("failed to parse theme file %s: %w", path, err)
	}
	return model.MergeClientConfig(base, theme), nil
}
