package t2048

// Move records a tile displacement. Merge sources move onto their target's slot.
type Move struct {
	TileID TileID   `json:"tile_id" yaml:"tile_id"`
	From   Position `json:"from" yaml:"from"`
	To     Position `json:"to" yaml:"to"`
}

// Merge records two equal tiles collapsing into a new tile of double value.
// ResultID is a fresh tile flagged as a merge result for presentation.
type Merge struct {
	SourceID    TileID   `json:"source_id" yaml:"source_id"`
	TargetID    TileID   `json:"target_id" yaml:"target_id"`
	ResultValue int      `json:"result_value" yaml:"result_value"`
	ResultID    TileID   `json:"result_id" yaml:"result_id"`
	At          Position `json:"at" yaml:"at"`
}

// Spawned records a tile created by the spawner.
type Spawned struct {
	TileID TileID   `json:"tile_id" yaml:"tile_id"`
	Pos    Position `json:"pos" yaml:"pos"`
	Value  int      `json:"value" yaml:"value"`
}

// ShiftResult is the full, already-committed outcome of one shift command.
// Presentation layers replay it; they never feed anything back into the session.
type ShiftResult struct {
	Direction Direction `json:"direction" yaml:"direction"`
	Turn      int       `json:"turn" yaml:"turn"`
	Moves     []Move    `json:"moves,omitempty" yaml:"moves,omitempty"`
	Merges    []Merge   `json:"merges,omitempty" yaml:"merges,omitempty"`
	Spawns    []Spawned `json:"spawns,omitempty" yaml:"spawns,omitempty"`
	Shortfall int       `json:"shortfall,omitempty" yaml:"shortfall,omitempty"` // Requested spawns that found no empty slot

	// NoOp is set when the shift was accepted but changed nothing.
	NoOp bool `json:"no_op,omitempty" yaml:"no_op,omitempty"`
	// Ignored is set when the command arrived outside AwaitingInput and was dropped.
	Ignored bool `json:"ignored,omitempty" yaml:"ignored,omitempty"`

	State GameState `json:"state" yaml:"state"`
}

// Changed reports whether the shift displaced or merged anything.
func (r ShiftResult) Changed() bool {
	return !r.NoOp && !r.Ignored
}
