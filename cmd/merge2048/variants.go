package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List built-in variants",
	Long:  `Shows every registered variant with its board size and target tile.`,
	Run:   runVariants,
}

func runVariants(_ *cobra.Command, _ []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.ID))
		maxTitleLen = max(maxTitleLen, len(v.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Board", "Target")
	fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----", "------")

	for _, v := range variants {
		board, target := "-", "-"
		if preset := t2048.GetVariant(v.ID); preset != nil {
			board = fmt.Sprintf("%dx%d", preset.Width, preset.Height)
			target = fmt.Sprintf("%d", preset.Target)
		}
		fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, v.ID, maxTitleLen, v.Title, board, target)
	}

	fmt.Println()
	fmt.Println("Run 'merge2048 play <id>' to play a variant.")
}

func unknownVariant(variant string) error {
	return fmt.Errorf("unknown variant %q (built-in: %s)", variant, strings.Join(t2048.VariantIDs(), ", "))
}
