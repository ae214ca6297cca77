package t2048

import "github.com/vovakirdan/tui-2048/internal/config"

// compiledRules is the validated form of config.Rules.
type compiledRules struct {
	rules config.Rules
	types TypeTable
	dist  Distribution
}

// compileRules checks rules for every condition that would otherwise surface mid-game.
func compileRules(r config.Rules) (compiledRules, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return compiledRules{}, errorf(KindConfig, "grid dimensions must be positive, got %dx%d", r.Width, r.Height)
	}

	types, err := NewTypeTable(r.Types)
	if err != nil {
		return compiledRules{}, err
	}

	if !types.Has(r.WinValue) {
		return compiledRules{}, errorf(KindConfig, "win value %d is not in the type table", r.WinValue)
	}
	if r.SpawnCount <= 0 {
		return compiledRules{}, errorf(KindConfig, "spawn count must be positive, got %d", r.SpawnCount)
	}
	if r.InitialTiles < 0 {
		return compiledRules{}, errorf(KindConfig, "initial tile count must not be negative, got %d", r.InitialTiles)
	}

	dist, err := NewDistribution(r.Spawn, types)
	if err != nil {
		return compiledRules{}, err
	}

	// Merges only ever double a value, so every value on the way from a spawn value
	// to the win value must be known, and the chain must land on the win value exactly.
	for _, start := range dist.Values() {
		v := start
		for v < r.WinValue {
			v *= 2
			if !types.Has(v) {
				return compiledRules{}, errorf(KindConfig, "value %d (reachable from spawn value %d) is not in the type table", v, start)
			}
		}
		if v != r.WinValue {
			return compiledRules{}, errorf(KindConfig, "win value %d is unreachable from spawn value %d", r.WinValue, start)
		}
	}

	return compiledRules{rules: r.Clone(), types: types, dist: dist}, nil
}

// ValidateRules reports whether a session could be created from r.
func ValidateRules(r config.Rules) error {
	_, err := compileRules(r)
	return err
}
