package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadKite loads the kite configuration.
// Search order: customPath -> ~/.skyhop/configs/kite.yaml -> ./configs/kite.yaml -> embedded default.
// A custom path that cannot be read, parsed or validated is an error;
// the other locations fall through silently.
func LoadKite(customPath string) (KiteConfig, error) {
	var cfg KiteConfig

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("kite.yaml"); userCfgPath != "" {
		if c, err := loadFile(userCfgPath); err == nil {
			return c, nil
		}
	}

	if c, err := loadFile(filepath.Join("configs", "kite.yaml")); err == nil {
		return c, nil
	}

	if err := yaml.Unmarshal(defaultKiteYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultKiteConfig(), nil
	}
	return cfg, nil
}

func loadFile(path string) (KiteConfig, error) {
	var cfg KiteConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the per-user config location, or empty if the
// home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skyhop", "configs", filename)
}
