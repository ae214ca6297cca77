package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/config"
)

// GameState represents the current state of a session.
type GameState string

const (
	StateGeneratingLevel GameState = "generating_level"
	StateSpawningTiles   GameState = "spawning_tiles"
	StateAwaitingInput   GameState = "awaiting_input"
	StateResolving       GameState = "resolving"
	StateWon             GameState = "won"
	StateLost            GameState = "lost"
)

// Terminal reports whether no further commands will be accepted.
func (s GameState) Terminal() bool {
	return s == StateWon || s == StateLost
}

// Session is the game state machine. It owns the board and sequences turns:
// generate -> spawn -> await input -> resolve -> spawn -> ...
//
// A Session is not safe for concurrent use; each front end drives it from one goroutine.
type Session struct {
	rules compiledRules
	board *Board
	state GameState
	seed  int64
	turn  int

	initial []Spawned
}

// NewSession validates rules, generates the board and places the initial tiles.
// All configuration errors are reported here.
func NewSession(rules config.Rules, seed int64) (*Session, error) {
	s, err := generate(rules, seed)
	if err != nil {
		return nil, err
	}

	s.state = StateSpawningTiles
	s.initial, _ = s.spawnPhase(s.rules.rules.InitialTiles)
	return s, nil
}

// generate runs GeneratingLevel: compile the type table and allocate the grid.
func generate(rules config.Rules, seed int64) (*Session, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}

	s := &Session{
		rules: compiled,
		state: StateGeneratingLevel,
		seed:  seed,
	}

	grid, err := NewGrid(rules.Width, rules.Height)
	if err != nil {
		return nil, err
	}
	s.board = newBoard(grid)
	return s, nil
}

// Shift resolves one directional command.
//
// An invalid direction fails with KindInvalidArgument and leaves the session untouched.
// Outside AwaitingInput the command is dropped and the result is marked Ignored.
// A shift that changes nothing is marked NoOp and does not advance the turn or spawn.
func (s *Session) Shift(dir Direction) (ShiftResult, error) {
	if !dir.Valid() {
		return ShiftResult{}, errorf(KindInvalidArgument, "invalid direction %d", int(dir))
	}

	if s.state != StateAwaitingInput {
		return ShiftResult{Direction: dir, Turn: s.turn, Ignored: true, State: s.state}, nil
	}

	s.state = StateResolving
	res := resolve(s.board, dir)

	if !res.changed {
		s.state = StateAwaitingInput
		return ShiftResult{Direction: dir, Turn: s.turn, NoOp: true, State: s.state}, nil
	}

	s.turn++
	result := ShiftResult{
		Direction: dir,
		Turn:      s.turn,
		Moves:     res.moves,
		Merges:    res.merges,
	}

	if s.reachedWin() {
		s.state = StateWon
		result.State = s.state
		return result, nil
	}

	s.state = StateSpawningTiles
	result.Spawns, result.Shortfall = s.spawnPhase(s.rules.rules.SpawnCount)
	result.State = s.state
	return result, nil
}

// spawnPhase runs SpawningTiles and picks the next state.
//
// A required spawn with no empty slot loses immediately and creates nothing.
// Otherwise tiles are placed, a spawned win value wins, and a board left full with
// no possible merge loses; anything else awaits the next command.
func (s *Session) spawnPhase(count int) ([]Spawned, int) {
	if count > 0 && s.board.grid.EmptyCount() == 0 {
		s.state = StateLost
		return nil, count
	}

	spawned, shortfall := Spawn(s.board, count, s.rules.dist, turnRand(s.seed, s.turn))

	switch {
	case s.reachedWin():
		s.state = StateWon
	case !s.board.CanMove():
		s.state = StateLost
	default:
		s.state = StateAwaitingInput
	}
	return spawned, shortfall
}

func (s *Session) reachedWin() bool {
	return s.board.MaxTile() >= s.rules.rules.WinValue
}

// State returns the current state.
func (s *Session) State() GameState {
	return s.state
}

// Turn returns the number of shifts that changed the board.
func (s *Session) Turn() int {
	return s.turn
}

// Seed returns the session seed.
func (s *Session) Seed() int64 {
	return s.seed
}

// Rules returns a copy of the rules the session was created with.
func (s *Session) Rules() config.Rules {
	return s.rules.rules.Clone()
}

// Types returns the session's type table.
func (s *Session) Types() TypeTable {
	return s.rules.types
}

// MaxTile returns the highest tile value on the board.
func (s *Session) MaxTile() int {
	return s.board.MaxTile()
}

// InitialSpawns returns the tiles placed when the board was generated.
func (s *Session) InitialSpawns() []Spawned {
	return append([]Spawned(nil), s.initial...)
}

// TileAt returns the value at p, or 0 when the slot is empty or outside the grid.
func (s *Session) TileAt(p Position) int {
	if t, ok := s.board.TileAt(p); ok {
		return t.Value
	}
	return 0
}
