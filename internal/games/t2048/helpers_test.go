package t2048

import (
	"testing"

	"github.com/vovakirdan/tui-2048/internal/config"
)

// testRules returns classic rules resized to w x h with a fixed spawn value of 2.
func testRules(w, h, win int) config.Rules {
	r := config.DefaultRules()
	r.Width, r.Height, r.WinValue = w, h, win
	r.Spawn = []config.SpawnWeight{{Value: 2, Weight: 1}}
	return r
}

// fromRows restores a session awaiting input with the given board. 0 is an empty slot.
// Tile ids are assigned row-major starting at 1.
func fromRows(t *testing.T, r config.Rules, rows [][]int) *Session {
	t.Helper()
	snap := Snapshot{Width: r.Width, Height: r.Height, State: StateAwaitingInput, Seed: 1}
	for y, row := range rows {
		for x, v := range row {
			if v != 0 {
				snap.Tiles = append(snap.Tiles, TileSnapshot{X: x, Y: y, Value: v})
			}
		}
	}
	s, err := Restore(r, snap)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	return s
}

func rowsEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for y := range a {
		if len(a[y]) != len(b[y]) {
			return false
		}
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				return false
			}
		}
	}
	return true
}

// checkOccupancy fails when the board's slot table and tile arena disagree.
func checkOccupancy(t *testing.T, b *Board) {
	t.Helper()
	occupied := 0
	for i := range b.grid.slots {
		slot := &b.grid.slots[i]
		id, ok := slot.Occupant()
		if !ok {
			continue
		}
		occupied++
		tile, live := b.tiles[id]
		if !live {
			t.Fatalf("slot %s holds dead tile %d", slot.Pos, id)
		}
		if tile.Pos != slot.Pos {
			t.Fatalf("tile %d thinks it is at %s, slot says %s", id, tile.Pos, slot.Pos)
		}
	}
	if occupied != b.Len() {
		t.Fatalf("occupied slots = %d, live tiles = %d", occupied, b.Len())
	}
}
