package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/classic.yaml
var defaultRulesYAML []byte

// DefaultRules returns the hardcoded classic rules.
// Kept in sync with defaults/classic.yaml and used when the embed cannot be parsed.
func DefaultRules() Rules {
	return Rules{
		Width:        4,
		Height:       4,
		WinValue:     2048,
		InitialTiles: 2,
		SpawnCount:   1,
		Spawn: []SpawnWeight{
			{Value: 2, Weight: 0.9},
			{Value: 4, Weight: 0.1},
		},
		Types: []TypeEntry{
			{Value: 2, Style: "#eee4da"},
			{Value: 4, Style: "#ede0c8"},
			{Value: 8, Style: "#f2b179"},
			{Value: 16, Style: "#f59563"},
			{Value: 32, Style: "#f67c5f"},
			{Value: 64, Style: "#f65e3b"},
			{Value: 128, Style: "#edcf72"},
			{Value: 256, Style: "#edcc61"},
			{Value: 512, Style: "#edc850"},
			{Value: 1024, Style: "#edc53f"},
			{Value: 2048, Style: "#edc22e"},
			{Value: 4096, Style: "#5eda92"},
			{Value: 8192, Style: "#39bc78"},
		},
	}
}

// EmbeddedRules parses the embedded classic YAML.
func EmbeddedRules() Rules {
	var r Rules
	if err := yaml.Unmarshal(defaultRulesYAML, &r); err != nil {
		return DefaultRules()
	}
	return r
}

// GetDefaultYAML returns the embedded default rules file.
func GetDefaultYAML() []byte {
	return defaultRulesYAML
}
