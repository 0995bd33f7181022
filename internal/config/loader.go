package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "sandfall.yaml"

// LoadSandfall loads the sandfall configuration.
// Search order: customPath -> ~/.sandfall/configs/sandfall.yaml -> ./configs/sandfall.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names.
func LoadSandfall(customPath string) (SandfallConfig, error) {
	cfg, _ := decode(defaultSandfallYAML, DefaultSandfallConfig())

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		out, err := decode(data, cfg)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return out, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if out, err := decode(data, cfg); err == nil {
				return out, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if out, err := decode(data, cfg); err == nil {
			return out, nil
		}
	}

	return cfg, nil
}

// decode unmarshals data over a copy of base.
func decode(data []byte, base SandfallConfig) (SandfallConfig, error) {
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg SandfallConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sandfall", "configs", filename)
}

// ApplySandfallPreset selects a difficulty preset. Presets missing from the
// config get their built-in tuning.
func ApplySandfallPreset(cfg *SandfallConfig, preset DifficultyPreset) {
	cfg.Difficulty = preset
	if cfg.Presets == nil {
		cfg.Presets = make(map[DifficultyPreset]DifficultyTuning)
	}
	if _, ok := cfg.Presets[preset]; !ok && preset.Valid() {
		cfg.Presets[preset] = DefaultTuning(preset)
	}
}
