package tui

import "github.com/vovakirdan/tui-2048/internal/games/t2048"

// replayFramesPerPhase is how many ticks each highlight phase stays on screen.
const replayFramesPerPhase = 3

type replayPhase int

const (
	phaseNone replayPhase = iota
	phaseMerges
	phaseSpawns
)

// highlight marks a cell drawn differently during replay.
type highlight int

const (
	highlightNone highlight = iota
	highlightMerged
	highlightSpawned
)

// replay walks a committed ShiftResult: merge results first, then spawns.
// The session has already moved on; this only drives presentation.
type replay struct {
	phase   replayPhase
	frames  int
	merged  []t2048.Position
	spawned []t2048.Position
}

// start begins replaying res. Returns false when there is nothing to show.
func (r *replay) start(res t2048.ShiftResult) bool {
	*r = replay{}
	for _, m := range res.Merges {
		r.merged = append(r.merged, m.At)
	}
	for _, s := range res.Spawns {
		r.spawned = append(r.spawned, s.Pos)
	}

	switch {
	case len(r.merged) > 0:
		r.phase = phaseMerges
	case len(r.spawned) > 0:
		r.phase = phaseSpawns
	default:
		return false
	}
	return true
}

// advance moves one frame forward. Returns true while the replay is still running.
func (r *replay) advance() bool {
	if r.phase == phaseNone {
		return false
	}
	r.frames++
	if r.frames < replayFramesPerPhase {
		return true
	}

	r.frames = 0
	if r.phase == phaseMerges && len(r.spawned) > 0 {
		r.phase = phaseSpawns
		return true
	}
	r.phase = phaseNone
	return false
}

func (r *replay) active() bool {
	return r.phase != phaseNone
}

// highlights returns the cells to emphasize in the current frame.
func (r *replay) highlights() map[t2048.Position]highlight {
	out := make(map[t2048.Position]highlight)
	switch r.phase {
	case phaseMerges:
		for _, p := range r.merged {
			out[p] = highlightMerged
		}
	case phaseSpawns:
		for _, p := range r.spawned {
			out[p] = highlightSpawned
		}
	}
	return out
}
