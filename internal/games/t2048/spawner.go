package t2048

import (
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/config"
)

// Rand is the randomness the spawner needs. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Distribution is a weighted spawn-value table.
type Distribution struct {
	entries []config.SpawnWeight
	total   float64
}

// NewDistribution validates weights against the type table.
func NewDistribution(weights []config.SpawnWeight, types TypeTable) (Distribution, error) {
	d := Distribution{}
	for _, w := range weights {
		if w.Weight < 0 {
			return Distribution{}, errorf(KindConfig, "spawn weight for %d is negative", w.Value)
		}
		if !types.Has(w.Value) {
			return Distribution{}, errorf(KindConfig, "spawn value %d is not in the type table", w.Value)
		}
		if w.Weight == 0 {
			continue
		}
		d.entries = append(d.entries, w)
		d.total += w.Weight
	}
	if d.total <= 0 {
		return Distribution{}, errorf(KindConfig, "spawn distribution has zero probability mass")
	}
	return d, nil
}

// Values returns the values with non-zero weight, in declaration order.
func (d Distribution) Values() []int {
	values := make([]int, len(d.entries))
	for i, e := range d.entries {
		values[i] = e.Value
	}
	return values
}

// Probability returns the normalized probability of a value.
func (d Distribution) Probability(value int) float64 {
	for _, e := range d.entries {
		if e.Value == value {
			return e.Weight / d.total
		}
	}
	return 0
}

// Pick draws one value.
func (d Distribution) Pick(rng Rand) int {
	roll := rng.Float64() * d.total
	cumulative := 0.0
	for _, e := range d.entries {
		cumulative += e.Weight
		if roll < cumulative {
			return e.Value
		}
	}
	return d.entries[len(d.entries)-1].Value
}

// Spawn places up to count new tiles on distinct empty slots chosen uniformly at random.
// When fewer empty slots exist than requested, every empty slot is filled and the
// missing count is returned as shortfall. Occupied slots are never touched.
func Spawn(b *Board, count int, dist Distribution, rng Rand) (spawned []Spawned, shortfall int) {
	if count <= 0 {
		return nil, 0
	}
	empty := b.grid.EmptySlots()
	n := min(count, len(empty))

	// Partial Fisher-Yates over the row-major empty list
	for i := range n {
		j := i + rng.Intn(len(empty)-i)
		empty[i], empty[j] = empty[j], empty[i]

		t := b.place(dist.Pick(rng), empty[i].Pos)
		spawned = append(spawned, Spawned{TileID: t.ID, Pos: t.Pos, Value: t.Value})
	}

	return spawned, count - n
}

// turnRand derives the spawner RNG for a turn from the session seed.
// Spawns depend only on (seed, turn), so a restored snapshot replays identically.
func turnRand(seed int64, turn int) *rand.Rand {
	z := uint64(seed) + uint64(turn+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return rand.New(rand.NewSource(int64(z)))
}
