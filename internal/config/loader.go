package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRules loads the rules for a variant.
// Search order: customPath -> ~/.merge2048/rules/<variant>.yaml -> ./rules/<variant>.yaml -> fallback
//
// Files found on the search path are decoded on top of fallback, so a file only
// needs the keys it wants to change. A broken file on the search path is skipped;
// a broken customPath is an error.
func LoadRules(customPath, variant string, fallback Rules) (Rules, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback, fmt.Errorf("failed to read rules %s: %w", customPath, err)
		}
		cfg, err := decodeOver(data, fallback)
		if err != nil {
			return fallback, fmt.Errorf("failed to parse rules %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := variant + ".yaml"

	if userPath := userRulesPath(filename); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if cfg, err := decodeOver(data, fallback); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("rules", filename)); err == nil {
		if cfg, err := decodeOver(data, fallback); err == nil {
			return cfg, nil
		}
	}

	return fallback.Clone(), nil
}

// decodeOver unmarshals data into a copy of base.
// yaml.v3 replaces slices wholesale, so a file listing types swaps the whole table.
func decodeOver(data []byte, base Rules) (Rules, error) {
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

// MarshalRules renders rules as YAML.
func MarshalRules(r Rules) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rules: %w", err)
	}
	return data, nil
}

// userRulesPath returns the path to a user rules file, or empty if home is unavailable.
func userRulesPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".merge2048", "rules", filename)
}
