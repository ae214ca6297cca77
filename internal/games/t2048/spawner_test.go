package t2048

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/config"
)

func classicTypes(t *testing.T) TypeTable {
	t.Helper()
	types, err := NewTypeTable(config.DefaultRules().Types)
	if err != nil {
		t.Fatalf("NewTypeTable() error = %v", err)
	}
	return types
}

func TestNewDistribution(t *testing.T) {
	types := classicTypes(t)

	tests := []struct {
		name    string
		weights []config.SpawnWeight
		wantErr bool
	}{
		{"classic", []config.SpawnWeight{{Value: 2, Weight: 0.9}, {Value: 4, Weight: 0.1}}, false},
		{"unnormalized", []config.SpawnWeight{{Value: 2, Weight: 9}, {Value: 4, Weight: 1}}, false},
		{"zero weight entry", []config.SpawnWeight{{Value: 2, Weight: 1}, {Value: 4, Weight: 0}}, false},
		{"empty", nil, true},
		{"zero mass", []config.SpawnWeight{{Value: 2, Weight: 0}}, true},
		{"negative weight", []config.SpawnWeight{{Value: 2, Weight: 1}, {Value: 4, Weight: -0.5}}, true},
		{"unknown value", []config.SpawnWeight{{Value: 3, Weight: 1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDistribution(tt.weights, types)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDistribution() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsKind(err, KindConfig) {
				t.Errorf("NewDistribution() error kind = %q, want %q", KindOf(err), KindConfig)
			}
		})
	}
}

func TestDistributionProbability(t *testing.T) {
	d, err := NewDistribution([]config.SpawnWeight{{Value: 2, Weight: 9}, {Value: 4, Weight: 1}}, classicTypes(t))
	if err != nil {
		t.Fatalf("NewDistribution() error = %v", err)
	}

	tests := []struct {
		value int
		want  float64
	}{
		{2, 0.9},
		{4, 0.1},
		{8, 0},
	}
	for _, tt := range tests {
		if got := d.Probability(tt.value); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Probability(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestDistributionPickFrequency(t *testing.T) {
	d, _ := NewDistribution([]config.SpawnWeight{{Value: 2, Weight: 0.9}, {Value: 4, Weight: 0.1}}, classicTypes(t))
	rng := rand.New(rand.NewSource(7))

	const n = 20000
	fours := 0
	for range n {
		switch d.Pick(rng) {
		case 4:
			fours++
		case 2:
		default:
			t.Fatal("Pick() returned a value outside the distribution")
		}
	}

	if frac := float64(fours) / n; frac < 0.08 || frac > 0.12 {
		t.Errorf("fraction of 4s = %.3f, want about 0.10", frac)
	}
}

func TestSpawn(t *testing.T) {
	d, _ := NewDistribution([]config.SpawnWeight{{Value: 2, Weight: 1}}, classicTypes(t))

	t.Run("places on distinct empty slots", func(t *testing.T) {
		g, _ := NewGrid(4, 4)
		b := newBoard(g)
		b.place(8, Pos(1, 1))

		spawned, shortfall := Spawn(b, 5, d, rand.New(rand.NewSource(3)))
		if shortfall != 0 {
			t.Errorf("shortfall = %d, want 0", shortfall)
		}
		if len(spawned) != 5 {
			t.Fatalf("spawned %d tiles, want 5", len(spawned))
		}
		seen := map[Position]bool{Pos(1, 1): true}
		for _, sp := range spawned {
			if seen[sp.Pos] {
				t.Errorf("spawned twice or on occupied slot %s", sp.Pos)
			}
			seen[sp.Pos] = true
			if sp.Value != 2 {
				t.Errorf("spawned value = %d, want 2", sp.Value)
			}
		}
		if tile, _ := b.TileAt(Pos(1, 1)); tile.Value != 8 {
			t.Error("spawner overwrote an occupied slot")
		}
		checkOccupancy(t, b)
	})

	t.Run("shortfall", func(t *testing.T) {
		g, _ := NewGrid(2, 2)
		b := newBoard(g)
		b.place(8, Pos(0, 0))

		spawned, shortfall := Spawn(b, 5, d, rand.New(rand.NewSource(3)))
		if len(spawned) != 3 || shortfall != 2 {
			t.Errorf("Spawn() = %d tiles, shortfall %d; want 3, 2", len(spawned), shortfall)
		}
		if g.EmptyCount() != 0 {
			t.Errorf("EmptyCount() = %d, want 0", g.EmptyCount())
		}
	})

	t.Run("deterministic for a seed", func(t *testing.T) {
		run := func() []Spawned {
			g, _ := NewGrid(4, 4)
			sp, _ := Spawn(newBoard(g), 3, d, turnRand(99, 4))
			return sp
		}
		a, b := run(), run()
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("spawn %d differs: %+v vs %+v", i, a[i], b[i])
			}
		}
	})
}

func TestSpawnUniformSlots(t *testing.T) {
	d, _ := NewDistribution([]config.SpawnWeight{{Value: 2, Weight: 1}}, classicTypes(t))
	rng := rand.New(rand.NewSource(11))

	counts := map[Position]int{}
	const n = 8000
	for range n {
		g, _ := NewGrid(2, 2)
		sp, _ := Spawn(newBoard(g), 1, d, rng)
		counts[sp[0].Pos]++
	}

	for _, p := range []Position{Pos(0, 0), Pos(1, 0), Pos(0, 1), Pos(1, 1)} {
		if frac := float64(counts[p]) / n; frac < 0.22 || frac > 0.28 {
			t.Errorf("slot %s chosen %.3f of the time, want about 0.25", p, frac)
		}
	}
}
