// Package config provides YAML-based rule loading and environment-driven
// runtime settings for the merge game.
package config

// Rules contains everything a session needs to generate and run a board.
type Rules struct {
	Width        int           `yaml:"width"`
	Height       int           `yaml:"height"`
	WinValue     int           `yaml:"win_value"`
	InitialTiles int           `yaml:"initial_tiles"` // Tiles placed when the board is generated
	SpawnCount   int           `yaml:"spawn_count"`   // Tiles placed after every successful shift
	Spawn        []SpawnWeight `yaml:"spawn"`
	Types        []TypeEntry   `yaml:"types"`
}

// SpawnWeight is one entry of the spawn-value distribution.
// Weights are relative; they do not need to sum to 1.
type SpawnWeight struct {
	Value  int     `yaml:"value"`
	Weight float64 `yaml:"weight"`
}

// TypeEntry maps a tile value to its style token.
// Style is a lipgloss color ("#eee4da" or an ANSI index like "208").
type TypeEntry struct {
	Value int    `yaml:"value"`
	Style string `yaml:"style"`
}

// Clone returns a deep copy so callers can tweak rules without aliasing slices.
func (r Rules) Clone() Rules {
	out := r
	out.Spawn = append([]SpawnWeight(nil), r.Spawn...)
	out.Types = append([]TypeEntry(nil), r.Types...)
	return out
}

// Values returns the type table values in declaration order.
func (r Rules) Values() []int {
	values := make([]int, len(r.Types))
	for i, t := range r.Types {
		values[i] = t.Value
	}
	return values
}

// TruncateTypes drops type entries above maxValue.
// Used by variants with a lower win value to keep the table tight.
func (r *Rules) TruncateTypes(maxValue int) {
	kept := r.Types[:0]
	for _, t := range r.Types {
		if t.Value <= maxValue {
			kept = append(kept, t)
		}
	}
	r.Types = kept
}
