package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/config"
)

// TileSnapshot is one tile in a snapshot.
type TileSnapshot struct {
	ID    TileID `json:"id" yaml:"id"`
	X     int    `json:"x" yaml:"x"`
	Y     int    `json:"y" yaml:"y"`
	Value int    `json:"value" yaml:"value"`
}

// Snapshot captures everything that determines future shift results.
// The session holds no state beyond the board, the game state, the turn counter
// and the seed; restoring a snapshot reproduces every subsequent result.
type Snapshot struct {
	Width      int            `json:"width" yaml:"width"`
	Height     int            `json:"height" yaml:"height"`
	State      GameState      `json:"state" yaml:"state"`
	Turn       int            `json:"turn" yaml:"turn"`
	Seed       int64          `json:"seed" yaml:"seed"`
	NextTileID TileID         `json:"next_tile_id" yaml:"next_tile_id"`
	Tiles      []TileSnapshot `json:"tiles" yaml:"tiles"`
}

// Snapshot returns the current session snapshot. Tiles are in row-major order.
func (s *Session) Snapshot() Snapshot {
	tiles := s.board.Tiles()
	snap := Snapshot{
		Width:      s.board.grid.Width(),
		Height:     s.board.grid.Height(),
		State:      s.state,
		Turn:       s.turn,
		Seed:       s.seed,
		NextTileID: s.board.nextID,
		Tiles:      make([]TileSnapshot, len(tiles)),
	}
	for i, t := range tiles {
		snap.Tiles[i] = TileSnapshot{ID: t.ID, X: t.Pos.X, Y: t.Pos.Y, Value: t.Value}
	}
	return snap
}

// Rows returns the board as a value matrix indexed [y][x]; empty slots are 0.
func (snap Snapshot) Rows() [][]int {
	rows := make([][]int, snap.Height)
	for y := range rows {
		rows[y] = make([]int, snap.Width)
	}
	for _, t := range snap.Tiles {
		if t.Y >= 0 && t.Y < snap.Height && t.X >= 0 && t.X < snap.Width {
			rows[t.Y][t.X] = t.Value
		}
	}
	return rows
}

// MaxTile returns the highest value in the snapshot.
func (snap Snapshot) MaxTile() int {
	maxVal := 0
	for _, t := range snap.Tiles {
		maxVal = max(maxVal, t.Value)
	}
	return maxVal
}

// Restore rebuilds a session from a snapshot taken between turns.
// Tiles keep their ids; missing ids (zero) are assigned in row-major order.
// A snapshot awaiting input is re-checked: a win-value tile restores as Won,
// a board with no possible move restores as Lost.
func Restore(rules config.Rules, snap Snapshot) (*Session, error) {
	if snap.Width != rules.Width || snap.Height != rules.Height {
		return nil, errorf(KindInvalidArgument, "snapshot is %dx%d, rules are %dx%d",
			snap.Width, snap.Height, rules.Width, rules.Height)
	}
	switch snap.State {
	case StateAwaitingInput, StateWon, StateLost:
	default:
		return nil, errorf(KindInvalidArgument, "cannot restore a snapshot in state %q", snap.State)
	}
	if snap.Turn < 0 {
		return nil, errorf(KindInvalidArgument, "negative turn %d", snap.Turn)
	}

	s, err := generate(rules, snap.Seed)
	if err != nil {
		return nil, err
	}

	var maxID TileID
	for _, t := range snap.Tiles {
		maxID = max(maxID, t.ID)
	}
	autoID := maxID + 1

	for _, ts := range snap.Tiles {
		p := Pos(ts.X, ts.Y)
		slot, ok := s.board.grid.SlotAt(p)
		if !ok {
			return nil, errorf(KindInvalidArgument, "tile at %s is outside the grid", p)
		}
		if !slot.Empty() {
			return nil, errorf(KindInvalidArgument, "two tiles at %s", p)
		}
		if !s.rules.types.Has(ts.Value) {
			return nil, errorf(KindInvalidArgument, "tile value %d is not in the type table", ts.Value)
		}
		id := ts.ID
		if id == 0 {
			id = autoID
			autoID++
		} else if _, dup := s.board.tiles[id]; dup {
			return nil, errorf(KindInvalidArgument, "duplicate tile id %d", id)
		}
		if id < 0 {
			return nil, errorf(KindInvalidArgument, "negative tile id %d", id)
		}
		t := &Tile{ID: id, Value: ts.Value, Pos: p}
		s.board.tiles[id] = t
		slot.occupant = id
	}

	s.board.nextID = max(snap.NextTileID, autoID)
	s.turn = snap.Turn
	s.state = snap.State
	if s.state == StateAwaitingInput {
		switch {
		case s.reachedWin():
			s.state = StateWon
		case !s.board.CanMove():
			s.state = StateLost
		}
	}
	return s, nil
}
