package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
	flagClear bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [variant]",
	Short: "Show recorded games",
	Long: `Display the best recorded games for a variant, ranked by highest tile and
then fewest turns. Without a variant, a terminal opens the interactive results
browser; otherwise a per-variant summary is printed.

Examples:
  merge2048 results
  merge2048 results classic --limit 20
  merge2048 results --plain
  merge2048 results mini --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
	resultsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print text even on a terminal")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded games for the variant")
}

func runResults(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Fatal("cannot open results database", "path", flagDBPath, "error", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if isTerminal() && !flagPlain {
			width, height := termSize()
			if err := tui.RunScoreboard(store, t2048.DefaultVariant, width, height); err != nil {
				logger.Error("results browser failed", "error", err)
			}
			return
		}
		if flagClear {
			logger.Error("--clear needs a variant")
			return
		}
		printSummary(store)
		return
	}

	variant := args[0]
	if !registry.Exists(variant) {
		logger.Error("cannot show results", "error", unknownVariant(variant))
		return
	}

	if flagClear {
		if err := store.ClearResults(variant); err != nil {
			logger.Error("cannot clear results", "variant", variant, "error", err)
			return
		}
		fmt.Printf("Cleared results for %s.\n", variant)
		return
	}
	printResults(store, variant)
}

func printResults(store *storage.Store, variant string) {
	results, err := store.TopResults(variant, flagLimit)
	if err != nil {
		logger.Error("cannot read results", "variant", variant, "error", err)
		return
	}

	title := variant
	for _, v := range registry.List() {
		if v.ID == variant {
			title = v.Title
		}
	}
	fmt.Printf("Results - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'merge2048 play %s' to record the first one!\n", variant)
		return
	}

	fmt.Printf("  %-4s  %-6s  %-5s  %-9s  %s\n", "Rank", "Max", "Turns", "Outcome", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %-9s  %s\n", "----", "---", "-----", "-------", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-6d  %-5d  %-9s  %s\n",
			i+1, r.MaxTile, r.Turns, r.Outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetVariantStats(variant); err == nil && stats.Games > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Won: %d (%.0f%%)  Best: %d\n",
			stats.Games, stats.Wins, stats.WinRate()*100, stats.BestTile)
	}
}

func printSummary(store *storage.Store) {
	all, err := store.GetAllVariantStats()
	if err != nil {
		logger.Error("cannot read stats", "error", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	variants := make([]string, 0, len(all))
	for v := range all {
		variants = append(variants, v)
	}
	sort.Strings(variants)

	fmt.Printf("  %-10s  %-5s  %-5s  %-6s  %s\n", "Variant", "Games", "Won", "Best", "Avg turns")
	fmt.Printf("  %-10s  %-5s  %-5s  %-6s  %s\n", "-------", "-----", "---", "----", "---------")
	for _, v := range variants {
		s := all[v]
		fmt.Printf("  %-10s  %-5d  %-5d  %-6d  %.0f\n", v, s.Games, s.Wins, s.BestTile, s.AvgTurns)
	}
}
