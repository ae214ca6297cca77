package t2048

import "testing"

func TestResolveRow(t *testing.T) {
	tests := []struct {
		name   string
		input  []int
		dir    Direction
		want   []int
		merges int
	}{
		{"simple merge", []int{2, 2, 0, 0}, DirLeft, []int{4, 0, 0, 0}, 1},
		{"merge cleared neighbor", []int{2, 0, 2, 2}, DirLeft, []int{4, 2, 0, 0}, 1},
		{"merge with trailing tile", []int{2, 2, 2, 0}, DirLeft, []int{4, 2, 0, 0}, 1},
		{"two pairs", []int{4, 4, 4, 4}, DirLeft, []int{8, 8, 0, 0}, 2},
		{"no chain merge", []int{4, 2, 2, 0}, DirLeft, []int{4, 4, 0, 0}, 1},
		{"slide with gaps", []int{2, 0, 0, 2}, DirLeft, []int{4, 0, 0, 0}, 1},
		{"single tile", []int{0, 4, 0, 0}, DirLeft, []int{4, 0, 0, 0}, 0},
		{"right merge", []int{0, 0, 2, 2}, DirRight, []int{0, 0, 0, 4}, 1},
		{"right nearest edge first", []int{2, 2, 2, 0}, DirRight, []int{0, 0, 2, 4}, 1},
		{"right two pairs", []int{2, 2, 4, 4}, DirRight, []int{0, 0, 4, 8}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fromRows(t, testRules(4, 1, 2048), [][]int{tt.input})
			res := resolve(s.board, tt.dir)

			got := s.Snapshot().Rows()[0]
			if !rowsEqual([][]int{got}, [][]int{tt.want}) {
				t.Errorf("resolve(%v, %s) = %v, want %v", tt.input, tt.dir, got, tt.want)
			}
			if len(res.merges) != tt.merges {
				t.Errorf("resolve(%v, %s) merges = %d, want %d", tt.input, tt.dir, len(res.merges), tt.merges)
			}
			if !res.changed {
				t.Errorf("resolve(%v, %s) changed = false, want true", tt.input, tt.dir)
			}
			checkOccupancy(t, s.board)
		})
	}
}

func TestResolveColumn(t *testing.T) {
	tests := []struct {
		name  string
		input [][]int
		dir   Direction
		want  [][]int
	}{
		{"up", [][]int{{2}, {2}, {0}, {0}}, DirUp, [][]int{{4}, {0}, {0}, {0}}},
		{"down", [][]int{{2}, {2}, {0}, {0}}, DirDown, [][]int{{0}, {0}, {0}, {4}}},
		{"down three", [][]int{{2}, {2}, {2}, {0}}, DirDown, [][]int{{0}, {0}, {2}, {4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fromRows(t, testRules(1, 4, 2048), tt.input)
			resolve(s.board, tt.dir)
			if got := s.Snapshot().Rows(); !rowsEqual(got, tt.want) {
				t.Errorf("resolve(%v, %s) = %v, want %v", tt.input, tt.dir, got, tt.want)
			}
		})
	}
}

func TestResolveBoard(t *testing.T) {
	s := fromRows(t, testRules(4, 4, 2048), [][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})
	resolve(s.board, DirLeft)

	want := [][]int{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	}
	if got := s.Snapshot().Rows(); !rowsEqual(got, want) {
		t.Errorf("resolve(left) =\n%v\nwant\n%v", got, want)
	}
	checkOccupancy(t, s.board)
}

// [2,_,2,2] left: the tile at x=0 never moves, x=2 merges into it,
// x=3 slides through the cleared slots and stops against the locked result.
func TestResolveMergeClearedNeighborDetail(t *testing.T) {
	s := fromRows(t, testRules(4, 1, 2048), [][]int{{2, 0, 2, 2}})
	res := resolve(s.board, DirLeft)

	wantMoves := []Move{
		{TileID: 2, From: Pos(2, 0), To: Pos(0, 0)},
		{TileID: 3, From: Pos(3, 0), To: Pos(1, 0)},
	}
	if len(res.moves) != len(wantMoves) {
		t.Fatalf("moves = %v, want %v", res.moves, wantMoves)
	}
	for i := range wantMoves {
		if res.moves[i] != wantMoves[i] {
			t.Errorf("moves[%d] = %+v, want %+v", i, res.moves[i], wantMoves[i])
		}
	}

	if len(res.merges) != 1 {
		t.Fatalf("merges = %v, want 1", res.merges)
	}
	m := res.merges[0]
	if m.SourceID != 2 || m.TargetID != 1 || m.ResultValue != 4 || m.At != Pos(0, 0) {
		t.Errorf("merge = %+v, want source 2 into target 1 -> 4 at (0,0)", m)
	}
	if m.ResultID != 4 {
		t.Errorf("merge result id = %d, want 4", m.ResultID)
	}
	if _, ok := s.board.Tile(1); ok {
		t.Error("merge target survived the turn")
	}
	if _, ok := s.board.Tile(2); ok {
		t.Error("merge source survived the turn")
	}
}

func TestResolveNoChange(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
		dir  Direction
	}{
		{"packed distinct", [][]int{{2, 4, 8, 16}}, DirLeft},
		{"already at edge", [][]int{{0, 0, 4, 2}}, DirRight},
		{"empty", [][]int{{0, 0, 0, 0}}, DirLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fromRows(t, testRules(4, 1, 2048), tt.rows)
			res := resolve(s.board, tt.dir)
			if res.changed {
				t.Error("resolve() changed = true, want false")
			}
			if len(res.moves) != 0 || len(res.merges) != 0 {
				t.Errorf("resolve() moves = %v merges = %v, want none", res.moves, res.merges)
			}
		})
	}
}

func TestTurnPlan(t *testing.T) {
	a := &Tile{ID: 1, Value: 2}
	b := &Tile{ID: 2, Value: 2}
	c := &Tile{ID: 3, Value: 2}
	other := &Tile{ID: 4, Value: 4}

	p := newTurnPlan()
	if !p.canMergeWith(a, 2) {
		t.Fatal("canMergeWith(fresh, equal) = false, want true")
	}
	if p.canMergeWith(other, 2) {
		t.Error("canMergeWith(different value) = true, want false")
	}

	p.designate(b, a)
	if p.canMergeWith(a, 2) {
		t.Error("canMergeWith(locked target) = true, want false")
	}
	if p.canMergeWith(b, 2) {
		t.Error("canMergeWith(merge source) = true, want false")
	}
	if !p.canMergeWith(c, 2) {
		t.Error("canMergeWith(untouched tile) = false, want true")
	}
}
