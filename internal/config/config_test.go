package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	if got, want := EmbeddedRules(), DefaultRules(); !reflect.DeepEqual(got, want) {
		t.Errorf("EmbeddedRules() = %+v, want %+v", got, want)
	}
}

func TestLoadRulesCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.yaml")
	data := []byte("width: 3\nheight: 3\nwin_value: 256\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRules(path, "classic", DefaultRules())
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if r.Width != 3 || r.Height != 3 || r.WinValue != 256 {
		t.Errorf("LoadRules() = %dx%d win %d, want 3x3 win 256", r.Width, r.Height, r.WinValue)
	}
	// Keys absent from the file keep the fallback values
	if len(r.Types) != len(DefaultRules().Types) || r.SpawnCount != 1 {
		t.Errorf("LoadRules() lost fallback fields: %+v", r)
	}
}

func TestLoadRulesReplacesLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fours.yaml")
	data := []byte("spawn:\n  - value: 4\n    weight: 1\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRules(path, "classic", DefaultRules())
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	want := []SpawnWeight{{Value: 4, Weight: 1}}
	if !reflect.DeepEqual(r.Spawn, want) {
		t.Errorf("Spawn = %+v, want %+v", r.Spawn, want)
	}
}

func TestLoadRulesErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("width: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml")},
		{"invalid yaml", broken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadRules(tt.path, "classic", DefaultRules()); err == nil {
				t.Error("LoadRules() error = nil, want error")
			}
		})
	}
}

func TestLoadRulesFallback(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	fallback := DefaultRules()
	fallback.Width = 5

	r, err := LoadRules("", "no-such-variant", fallback)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if r.Width != 5 {
		t.Errorf("LoadRules() width = %d, want fallback 5", r.Width)
	}
}

func TestLoadRulesLocalDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	if err := os.MkdirAll(filepath.Join(dir, "rules"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "rules", "mini.yaml"), []byte("win_value: 64\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRules("", "mini", DefaultRules())
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if r.WinValue != 64 {
		t.Errorf("LoadRules() win = %d, want 64 from ./rules/mini.yaml", r.WinValue)
	}
}

func TestMarshalRulesRoundTrip(t *testing.T) {
	data, err := MarshalRules(DefaultRules())
	if err != nil {
		t.Fatalf("MarshalRules() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "dump.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadRules(path, "", Rules{})
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if !reflect.DeepEqual(r, DefaultRules()) {
		t.Errorf("round trip = %+v, want %+v", r, DefaultRules())
	}
}

func TestTruncateTypes(t *testing.T) {
	r := DefaultRules()
	r.TruncateTypes(64)

	if got := r.Values(); !reflect.DeepEqual(got, []int{2, 4, 8, 16, 32, 64}) {
		t.Errorf("Values() after TruncateTypes(64) = %v", got)
	}
	if len(DefaultRules().Types) != 13 {
		t.Error("TruncateTypes() mutated the defaults")
	}
}

func TestLoadRuntime(t *testing.T) {
	t.Setenv("MERGE2048_DB", "/tmp/x.db")
	t.Setenv("MERGE2048_SEED", "77")
	t.Setenv("MERGE2048_IDLE_TIMEOUT", "5m")

	rt, err := LoadRuntime()
	if err != nil {
		t.Fatalf("LoadRuntime() error = %v", err)
	}
	if rt.DBPath != "/tmp/x.db" || rt.Seed != 77 || rt.IdleTimeout.Minutes() != 5 {
		t.Errorf("LoadRuntime() = %+v", rt)
	}
	if rt.LogLevel != "info" || rt.SSHAddr != ":23234" {
		t.Errorf("LoadRuntime() defaults = %+v", rt)
	}
}

func TestLoadRuntimeBadValue(t *testing.T) {
	t.Setenv("MERGE2048_SEED", "not-a-number")
	if _, err := LoadRuntime(); err == nil {
		t.Error("LoadRuntime() error = nil, want parse error")
	}
}
