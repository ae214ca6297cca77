// Package t2048 implements a deterministic grid-merge puzzle in the style of 2048.
// It is pure logic: no terminal, no clock, no logging. Front ends drive a Session
// with directions and replay the ShiftResult it returns.
package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Variant is a named preset on top of the classic rules.
type Variant struct {
	ID     string
	Name   string
	Width  int
	Height int
	Target int     // Win value
	Spawn4 float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// DefaultVariant is used when no variant is named.
const DefaultVariant = "classic"

// Variants lists the built-in presets. The last three follow the old campaign
// ladder: smaller targets to learn on, a full-size endurance run at the end.
var Variants = []Variant{
	{ID: "classic", Name: "Classic 2048", Width: 4, Height: 4, Target: 2048, Spawn4: 0.10},
	{ID: "mini", Name: "Mini 3x3", Width: 3, Height: 3, Target: 256, Spawn4: 0.10},
	{ID: "large", Name: "Large 5x5", Width: 5, Height: 5, Target: 4096, Spawn4: 0.10},
	{ID: "warmup", Name: "Warm-up", Width: 4, Height: 4, Target: 128, Spawn4: 0.10},
	{ID: "sprint", Name: "Sprint", Width: 4, Height: 4, Target: 512, Spawn4: 0.10},
	{ID: "marathon", Name: "Marathon", Width: 4, Height: 4, Target: 8192, Spawn4: 0.15},
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, v.Name, v.Rules)
	}
}

// Rules builds the variant's rules from the embedded classic defaults.
func (v Variant) Rules() config.Rules {
	r := config.EmbeddedRules()
	r.Width = v.Width
	r.Height = v.Height
	r.WinValue = v.Target
	r.Spawn = []config.SpawnWeight{
		{Value: 2, Weight: 1 - v.Spawn4},
		{Value: 4, Weight: v.Spawn4},
	}
	r.TruncateTypes(v.Target)
	return r
}

// GetVariant returns the built-in variant with the given id, or nil.
func GetVariant(id string) *Variant {
	for i := range Variants {
		if Variants[i].ID == id {
			return &Variants[i]
		}
	}
	return nil
}

// VariantIDs returns the ids of all built-in variants in declaration order.
func VariantIDs() []string {
	ids := make([]string, len(Variants))
	for i, v := range Variants {
		ids[i] = v.ID
	}
	return ids
}
