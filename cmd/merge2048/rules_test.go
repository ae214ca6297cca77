package main

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/config"
)

func TestDumpRulesEmbedded(t *testing.T) {
	var buf bytes.Buffer
	if err := dumpRules(&buf, nil); err != nil {
		t.Fatalf("dumpRules() error = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), config.GetDefaultYAML()) {
		t.Error("dumpRules() without a variant should print the embedded rules file")
	}
}

func TestDumpRulesVariant(t *testing.T) {
	var buf bytes.Buffer
	if err := dumpRules(&buf, []string{"mini"}); err != nil {
		t.Fatalf("dumpRules(mini) error = %v", err)
	}

	var got config.Rules
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if got.Width != 3 || got.Height != 3 || got.WinValue != 256 {
		t.Errorf("dumpRules(mini) = %dx%d target %d, want 3x3 target 256", got.Width, got.Height, got.WinValue)
	}
}

func TestDumpRulesUnknownVariant(t *testing.T) {
	var buf bytes.Buffer
	err := dumpRules(&buf, []string{"nope"})
	if err == nil {
		t.Fatal("dumpRules(nope) error = nil, want unknown variant")
	}
	for _, id := range []string{"classic", "mini", "marathon"} {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("error %q does not list variant %q", err, id)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("dumpRules(nope) wrote %q, want nothing", buf.String())
	}
}
