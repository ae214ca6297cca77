package t2048

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/config"
)

func TestNewSession(t *testing.T) {
	s, err := NewSession(config.DefaultRules(), 42)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if s.State() != StateAwaitingInput {
		t.Errorf("State() = %q, want %q", s.State(), StateAwaitingInput)
	}
	if s.Turn() != 0 {
		t.Errorf("Turn() = %d, want 0", s.Turn())
	}
	if got := len(s.InitialSpawns()); got != 2 {
		t.Errorf("initial spawns = %d, want 2", got)
	}
	if s.board.Len() != 2 {
		t.Errorf("live tiles = %d, want 2", s.board.Len())
	}
	for _, sp := range s.InitialSpawns() {
		if sp.Value != 2 && sp.Value != 4 {
			t.Errorf("initial tile value = %d, want 2 or 4", sp.Value)
		}
	}
	checkOccupancy(t, s.board)
}

func TestNewSessionDeterministic(t *testing.T) {
	a, _ := NewSession(config.DefaultRules(), 7)
	b, _ := NewSession(config.DefaultRules(), 7)

	if !rowsEqual(a.Snapshot().Rows(), b.Snapshot().Rows()) {
		t.Errorf("same seed produced different boards:\n%v\n%v", a.Snapshot().Rows(), b.Snapshot().Rows())
	}
}

func TestNewSessionConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *config.Rules)
	}{
		{"zero width", func(r *config.Rules) { r.Width = 0 }},
		{"negative height", func(r *config.Rules) { r.Height = -2 }},
		{"empty type table", func(r *config.Rules) { r.Types = nil }},
		{"duplicate type", func(r *config.Rules) {
			r.Types = append(r.Types, config.TypeEntry{Value: 4, Style: "#000000"})
		}},
		{"non-positive type", func(r *config.Rules) {
			r.Types = append(r.Types, config.TypeEntry{Value: 0})
		}},
		{"win value missing", func(r *config.Rules) { r.WinValue = 3000 }},
		{"zero spawn count", func(r *config.Rules) { r.SpawnCount = 0 }},
		{"negative initial tiles", func(r *config.Rules) { r.InitialTiles = -1 }},
		{"zero mass", func(r *config.Rules) {
			r.Spawn = []config.SpawnWeight{{Value: 2, Weight: 0}}
		}},
		{"negative weight", func(r *config.Rules) {
			r.Spawn = []config.SpawnWeight{{Value: 2, Weight: 1}, {Value: 4, Weight: -1}}
		}},
		{"unknown spawn value", func(r *config.Rules) {
			r.Spawn = []config.SpawnWeight{{Value: 5, Weight: 1}}
		}},
		{"gap in merge chain", func(r *config.Rules) {
			r.Types = []config.TypeEntry{{Value: 2}, {Value: 4}, {Value: 16}}
			r.WinValue = 16
		}},
		{"win value off the chain", func(r *config.Rules) {
			r.Types = []config.TypeEntry{{Value: 2}, {Value: 4}, {Value: 6}, {Value: 8}}
			r.WinValue = 6
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := config.DefaultRules()
			tt.mutate(&r)

			s, err := NewSession(r, 1)
			if err == nil {
				t.Fatal("NewSession() error = nil, want config error")
			}
			if s != nil {
				t.Error("NewSession() returned a session alongside an error")
			}
			if !IsKind(err, KindConfig) {
				t.Errorf("error kind = %q, want %q (%v)", KindOf(err), KindConfig, err)
			}
			if ValidateRules(r) == nil {
				t.Error("ValidateRules() = nil, want error")
			}
		})
	}
}

func TestShiftMergeScenario(t *testing.T) {
	s := fromRows(t, testRules(4, 1, 2048), [][]int{{2, 2, 0, 0}})

	res, err := s.Shift(DirLeft)
	if err != nil {
		t.Fatalf("Shift() error = %v", err)
	}
	if len(res.Merges) != 1 || res.Merges[0].ResultValue != 4 {
		t.Fatalf("merges = %+v, want one merge to 4", res.Merges)
	}
	if res.Turn != 1 || s.Turn() != 1 {
		t.Errorf("turn = %d/%d, want 1", res.Turn, s.Turn())
	}
	if len(res.Spawns) != 1 {
		t.Fatalf("spawns = %+v, want 1", res.Spawns)
	}
	if sp := res.Spawns[0]; sp.Pos == Pos(0, 0) {
		t.Error("spawned onto the merge result")
	}
	if got := s.TileAt(Pos(0, 0)); got != 4 {
		t.Errorf("TileAt(0,0) = %d, want 4", got)
	}
	if res.State != StateAwaitingInput {
		t.Errorf("State = %q, want %q", res.State, StateAwaitingInput)
	}
}

func TestShiftNoOpIsIdempotent(t *testing.T) {
	s := fromRows(t, testRules(4, 1, 2048), [][]int{{2, 4, 8, 0}})
	before := s.Snapshot()

	for i := range 2 {
		res, err := s.Shift(DirLeft)
		if err != nil {
			t.Fatalf("Shift() #%d error = %v", i, err)
		}
		if !res.NoOp || res.Changed() {
			t.Errorf("Shift() #%d NoOp = %v, want true", i, res.NoOp)
		}
		if res.Turn != 0 || len(res.Spawns) != 0 || len(res.Moves) != 0 {
			t.Errorf("Shift() #%d = %+v, want empty no-op at turn 0", i, res)
		}
		if s.State() != StateAwaitingInput {
			t.Errorf("State() = %q, want %q", s.State(), StateAwaitingInput)
		}
	}

	if after := s.Snapshot(); !rowsEqual(before.Rows(), after.Rows()) || after.NextTileID != before.NextTileID {
		t.Error("no-op shift changed the board")
	}
}

func TestShiftLossWhenNoEmptySlot(t *testing.T) {
	s := fromRows(t, testRules(2, 2, 2048), [][]int{
		{2, 4},
		{4, 2},
	})
	// Restore already reports the dead board as lost; rerun the spawn phase on it
	s.state = StateSpawningTiles

	spawned, shortfall := s.spawnPhase(1)
	if s.State() != StateLost {
		t.Errorf("State() = %q, want %q", s.State(), StateLost)
	}
	if len(spawned) != 0 || shortfall != 1 {
		t.Errorf("spawnPhase() = %v, %d; want no tiles, shortfall 1", spawned, shortfall)
	}
	if s.board.Len() != 4 {
		t.Errorf("live tiles = %d, want 4", s.board.Len())
	}
}

func TestShiftLossAfterFillingSpawn(t *testing.T) {
	s := fromRows(t, testRules(2, 2, 2048), [][]int{
		{2, 4},
		{0, 8},
	})

	res, err := s.Shift(DirLeft)
	if err != nil {
		t.Fatalf("Shift() error = %v", err)
	}
	if len(res.Spawns) != 1 || res.Spawns[0].Pos != Pos(1, 1) {
		t.Fatalf("spawns = %+v, want one at (1,1)", res.Spawns)
	}
	if res.State != StateLost {
		t.Errorf("State = %q, want %q", res.State, StateLost)
	}
}

func TestShiftWin(t *testing.T) {
	s := fromRows(t, testRules(4, 1, 8), [][]int{{4, 4, 0, 0}})

	res, err := s.Shift(DirLeft)
	if err != nil {
		t.Fatalf("Shift() error = %v", err)
	}
	if res.State != StateWon || s.State() != StateWon {
		t.Fatalf("State = %q, want %q", res.State, StateWon)
	}
	if len(res.Spawns) != 0 {
		t.Errorf("spawns after win = %+v, want none", res.Spawns)
	}

	before := s.Snapshot()
	for _, d := range Directions {
		res, err := s.Shift(d)
		if err != nil {
			t.Fatalf("Shift(%s) after win error = %v", d, err)
		}
		if !res.Ignored {
			t.Errorf("Shift(%s) after win Ignored = false, want true", d)
		}
	}
	after := s.Snapshot()
	if !rowsEqual(before.Rows(), after.Rows()) || after.Turn != before.Turn {
		t.Error("shift after win changed the session")
	}
}

func TestWinBySpawn(t *testing.T) {
	r := testRules(4, 4, 4)
	r.Spawn = []config.SpawnWeight{{Value: 4, Weight: 1}}

	s, err := NewSession(r, 1)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	if s.State() != StateWon {
		t.Errorf("State() = %q, want %q", s.State(), StateWon)
	}
}

func TestShiftInvalidDirection(t *testing.T) {
	s, _ := NewSession(config.DefaultRules(), 5)
	before := s.Snapshot()

	_, err := s.Shift(Direction(9))
	if !IsKind(err, KindInvalidArgument) {
		t.Fatalf("Shift(9) error = %v, want %s", err, KindInvalidArgument)
	}
	if s.State() != StateAwaitingInput || s.Turn() != 0 {
		t.Errorf("state after invalid direction = %q turn %d", s.State(), s.Turn())
	}
	if !rowsEqual(before.Rows(), s.Snapshot().Rows()) {
		t.Error("invalid direction changed the board")
	}
}

// Random play: value conservation, one merge per tile, turn accounting and occupancy.
func TestShiftInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		s, err := NewSession(config.DefaultRules(), seed)
		if err != nil {
			t.Fatalf("NewSession() error = %v", err)
		}
		dirs := rand.New(rand.NewSource(seed * 31))

		for step := 0; step < 300 && !s.State().Terminal(); step++ {
			sumBefore := s.board.Sum()
			turnBefore := s.Turn()

			res, err := s.Shift(Directions[dirs.Intn(len(Directions))])
			if err != nil {
				t.Fatalf("seed %d step %d: Shift() error = %v", seed, step, err)
			}

			spawned := 0
			for _, sp := range res.Spawns {
				spawned += sp.Value
			}
			if got := s.board.Sum(); got != sumBefore+spawned {
				t.Fatalf("seed %d step %d: sum %d, want %d + %d", seed, step, got, sumBefore, spawned)
			}

			seen := map[TileID]bool{}
			for _, m := range res.Merges {
				if seen[m.SourceID] || seen[m.TargetID] {
					t.Fatalf("seed %d step %d: tile merged twice in one turn: %+v", seed, step, res.Merges)
				}
				seen[m.SourceID], seen[m.TargetID] = true, true
				if tile, ok := s.board.Tile(m.ResultID); !ok || tile.Value != m.ResultValue {
					t.Fatalf("seed %d step %d: merge result tile missing or wrong: %+v", seed, step, m)
				}
			}

			if res.NoOp {
				if s.Turn() != turnBefore || len(res.Spawns) != 0 {
					t.Fatalf("seed %d step %d: no-op advanced the turn or spawned", seed, step)
				}
			} else if s.Turn() != turnBefore+1 {
				t.Fatalf("seed %d step %d: turn = %d, want %d", seed, step, s.Turn(), turnBefore+1)
			}

			checkOccupancy(t, s.board)
		}
	}
}
