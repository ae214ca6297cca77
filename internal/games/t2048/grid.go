package t2048

// TileID identifies a tile within a session. Zero means "no tile".
type TileID int

// Slot is a fixed grid cell holding at most one tile.
type Slot struct {
	Pos      Position
	occupant TileID
}

// Occupant returns the id of the tile bound to the slot.
func (s *Slot) Occupant() (TileID, bool) {
	return s.occupant, s.occupant != 0
}

// Empty reports whether no tile is bound to the slot.
func (s *Slot) Empty() bool {
	return s.occupant == 0
}

// Grid is the slot arena. Slots are stored in row-major order: index = y*width + x.
// It only tracks occupancy; movement and merging live in the resolver.
type Grid struct {
	width  int
	height int
	slots  []Slot
}

// NewGrid allocates width*height empty slots.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errorf(KindConfig, "grid dimensions must be positive, got %dx%d", width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		slots:  make([]Slot, width*height),
	}
	for y := range height {
		for x := range width {
			g.slots[y*width+x].Pos = Pos(x, y)
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds returns true if the position is within the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// SlotAt returns the slot at p, or false when p is outside the grid.
func (g *Grid) SlotAt(p Position) (*Slot, bool) {
	if !g.InBounds(p) {
		return nil, false
	}
	return &g.slots[p.Y*g.width+p.X], true
}

// EmptySlots returns all empty slots in row-major order.
func (g *Grid) EmptySlots() []*Slot {
	var empty []*Slot
	for i := range g.slots {
		if g.slots[i].Empty() {
			empty = append(empty, &g.slots[i])
		}
	}
	return empty
}

// EmptyCount returns the number of empty slots.
func (g *Grid) EmptyCount() int {
	count := 0
	for i := range g.slots {
		if g.slots[i].Empty() {
			count++
		}
	}
	return count
}

// occupancy returns the occupant of every slot in row-major order.
func (g *Grid) occupancy() []TileID {
	out := make([]TileID, len(g.slots))
	for i := range g.slots {
		out[i] = g.slots[i].occupant
	}
	return out
}
