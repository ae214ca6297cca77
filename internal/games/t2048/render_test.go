package t2048

import "testing"

func TestRenderText(t *testing.T) {
	s := fromRows(t, testRules(2, 1, 2048), [][]int{{2, 16}})

	want := "┌────┬────┐\n" +
		"│ 2  │ 16 │\n" +
		"└────┴────┘\n"
	if got := RenderText(s.Snapshot()); got != want {
		t.Errorf("RenderText() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderTextRows(t *testing.T) {
	s := fromRows(t, testRules(1, 2, 2048), [][]int{{0}, {4}})

	want := "┌───┐\n" +
		"│   │\n" +
		"├───┤\n" +
		"│ 4 │\n" +
		"└───┘\n"
	if got := RenderText(s.Snapshot()); got != want {
		t.Errorf("RenderText() =\n%s\nwant\n%s", got, want)
	}
}
