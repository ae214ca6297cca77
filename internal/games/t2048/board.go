package t2048

import (
	"cmp"
	"slices"
)

// Tile is a value-bearing piece bound to exactly one slot.
// Merge bookkeeping is not stored here; it lives in the per-turn plan.
type Tile struct {
	ID    TileID
	Value int
	Pos   Position
}

// Board is the arena owning the grid and every live tile.
type Board struct {
	grid   *Grid
	tiles  map[TileID]*Tile
	nextID TileID
}

func newBoard(grid *Grid) *Board {
	return &Board{
		grid:   grid,
		tiles:  make(map[TileID]*Tile),
		nextID: 1,
	}
}

// Grid returns the slot grid.
func (b *Board) Grid() *Grid {
	return b.grid
}

// Tile returns a live tile by id.
func (b *Board) Tile(id TileID) (*Tile, bool) {
	t, ok := b.tiles[id]
	return t, ok
}

// TileAt returns the tile occupying p.
func (b *Board) TileAt(p Position) (*Tile, bool) {
	slot, ok := b.grid.SlotAt(p)
	if !ok {
		return nil, false
	}
	id, ok := slot.Occupant()
	if !ok {
		return nil, false
	}
	return b.Tile(id)
}

// Tiles returns live tiles in row-major position order.
func (b *Board) Tiles() []*Tile {
	out := make([]*Tile, 0, len(b.tiles))
	for _, t := range b.tiles {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, c *Tile) int {
		if n := cmp.Compare(a.Pos.Y, c.Pos.Y); n != 0 {
			return n
		}
		return cmp.Compare(a.Pos.X, c.Pos.X)
	})
	return out
}

// Len returns the number of live tiles.
func (b *Board) Len() int {
	return len(b.tiles)
}

// place creates a tile with the next id and binds it to p.
// p must be empty.
func (b *Board) place(value int, p Position) *Tile {
	t := &Tile{ID: b.nextID, Value: value, Pos: p}
	b.nextID++
	b.tiles[t.ID] = t
	slot, _ := b.grid.SlotAt(p)
	slot.occupant = t.ID
	return t
}

// bind moves a tile to p, clearing its previous slot first.
// Rebinding to the current slot is a no-op.
func (b *Board) bind(t *Tile, p Position) {
	dst, ok := b.grid.SlotAt(p)
	if !ok {
		return
	}
	if t.Pos == p && dst.occupant == t.ID {
		return
	}
	if old, ok := b.grid.SlotAt(t.Pos); ok && old.occupant == t.ID {
		old.occupant = 0
	}
	t.Pos = p
	dst.occupant = t.ID
}

// vacate clears the tile's slot without removing the tile from the arena.
// Merge sources leave their cell this way and are removed at end of turn.
func (b *Board) vacate(t *Tile) {
	if slot, ok := b.grid.SlotAt(t.Pos); ok && slot.occupant == t.ID {
		slot.occupant = 0
	}
}

// remove deletes a tile from the arena and clears its slot if it still holds it.
func (b *Board) remove(t *Tile) {
	b.vacate(t)
	delete(b.tiles, t.ID)
}

// MaxTile returns the maximum tile value on the board.
func (b *Board) MaxTile() int {
	maxVal := 0
	for _, t := range b.tiles {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (b *Board) Sum() int {
	total := 0
	for _, t := range b.tiles {
		total += t.Value
	}
	return total
}

// HasPossibleMerge returns true if any adjacent tiles share a value.
func (b *Board) HasPossibleMerge() bool {
	for _, t := range b.tiles {
		for _, d := range []Direction{DirRight, DirDown} {
			if n, ok := b.TileAt(t.Pos.Step(d)); ok && n.Value == t.Value {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any shift would change the board.
func (b *Board) CanMove() bool {
	return b.grid.EmptyCount() > 0 || b.HasPossibleMerge()
}

// traversalOrder sorts live tiles so the tile nearest the destination edge comes first:
// (x, y) ascending, reversed when travelling toward increasing x or y.
func (b *Board) traversalOrder(d Direction) []*Tile {
	out := make([]*Tile, 0, len(b.tiles))
	for _, t := range b.tiles {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, c *Tile) int {
		if n := cmp.Compare(a.Pos.X, c.Pos.X); n != 0 {
			return n
		}
		return cmp.Compare(a.Pos.Y, c.Pos.Y)
	})
	if d.towardIncreasing() {
		slices.Reverse(out)
	}
	return out
}
