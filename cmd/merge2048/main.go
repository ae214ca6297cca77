// merge2048 plays a deterministic 2048-style merge puzzle in the terminal.
//
// Usage:
//
//	merge2048 play [variant]      - Play a variant (menu when omitted)
//	merge2048 sim [variant]       - Run a move script headless and print the results
//	merge2048 serve               - Start SSH and/or WebSocket servers
//	merge2048 results [variant]   - Show recorded games
//	merge2048 variants            - List built-in variants
//	merge2048 rules dump|check    - Print or validate resolved rules
//
// Global flags:
//
//	--db <path>         - Results database (default: ~/.merge2048/results.db)
//	--log-level <lvl>   - debug, info, warn, error
//	--seed <value>      - RNG seed for reproducible games
//	--rules <file>      - Custom rules YAML
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagDBPath   string
	flagLogLevel string
	flagSeed     int64
	flagRules    string

	logger *log.Logger
)

// Flag defaults come from the environment
var runtimeCfg, envErr = config.LoadRuntime()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "merge2048",
	Short: "merge2048 - slide and merge tiles in your terminal",
	Long: `merge2048 is a deterministic 2048-style puzzle.

Available commands:
  play      - Play a variant (menu when no variant is given)
  sim       - Run a move script headless
  serve     - Start SSH and WebSocket servers
  results   - Show recorded games
  variants  - List built-in variants
  rules     - Print or validate resolved rules

Settings are read from MERGE2048_* environment variables and
overridden by flags.

Examples:
  merge2048 play classic
  merge2048 sim mini --moves LLURDD --seed 7
  merge2048 serve --ssh :2222 --ws :8080
  merge2048 results classic`,
	PersistentPreRun: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", runtimeCfg.DBPath, "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", runtimeCfg.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", runtimeCfg.Seed, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Path to custom rules YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(rulesCmd)
}

// setup builds the shared logger once flags are parsed.
func setup(_ *cobra.Command, _ []string) {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "merge2048",
	})

	if envErr != nil {
		logger.Fatal("invalid environment", "error", envErr)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Fatal("invalid log level", "level", flagLogLevel, "error", err)
	}
	logger.SetLevel(level)
}

// resolveRules returns the rules for a variant: the registered preset,
// overlaid by a rules file found on the search path or given with --rules.
func resolveRules(variant string) (config.Rules, error) {
	fallback, err := registry.Create(variant)
	if err != nil {
		return config.Rules{}, err
	}
	return config.LoadRules(flagRules, variant, fallback)
}

// openStore opens the results database. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// termSize returns the terminal size, or 80x24 when stdout is not a terminal.
func termSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
