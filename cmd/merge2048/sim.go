package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var (
	flagMoves  string
	flagRandom int
	flagFormat string
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run a move script headless",
	Long: `Play a variant without a terminal UI and print every shift result and the
final board. The same seed and moves always produce the same output.

Moves are a string of U/D/L/R letters ("LLUR") or a comma separated list of
direction names ("left,left,up"). --random appends that many random moves
drawn from the game seed. The run stops early once the game is won or lost.

Examples:
  merge2048 sim --moves LLUR --seed 7
  merge2048 sim mini --random 200 --seed 1
  merge2048 sim classic --moves left,up --seed 3 --format yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagMoves, "moves", "", "Direction script (e.g. LLUR or left,up)")
	simCmd.Flags().IntVar(&flagRandom, "random", 0, "Number of random moves after the script")
	simCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or yaml")
}

// simReport is everything a sim run produced.
type simReport struct {
	Variant string              `yaml:"variant"`
	Seed    int64               `yaml:"seed"`
	Initial []t2048.Spawned     `yaml:"initial"`
	Steps   []t2048.ShiftResult `yaml:"steps"`
	Final   t2048.Snapshot      `yaml:"final"`
}

func runSim(_ *cobra.Command, args []string) {
	variant := variantArg(args)
	if flagFormat != "text" && flagFormat != "yaml" {
		logger.Fatal("unknown format", "format", flagFormat)
	}

	moves, err := parseMoves(flagMoves)
	if err != nil {
		logger.Fatal("bad move script", "error", err)
	}
	if flagRandom < 0 {
		logger.Fatal("--random must not be negative", "random", flagRandom)
	}

	if !registry.Exists(variant) {
		logger.Fatal("cannot run sim", "error", unknownVariant(variant))
	}
	rules, err := resolveRules(variant)
	if err != nil {
		logger.Fatal("cannot load rules", "variant", variant, "error", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := t2048.NewSession(rules, seed)
	if err != nil {
		logger.Fatal("cannot start session", "variant", variant, "error", err)
	}

	report, err := simulate(session, moves, flagRandom)
	if err != nil {
		logger.Fatal("sim failed", "variant", variant, "seed", seed, "error", err)
	}
	report.Variant = variant
	logger.Debug("sim finished", "variant", variant, "seed", seed, "steps", len(report.Steps), "state", report.Final.State)

	if flagFormat == "yaml" {
		err = writeYAML(os.Stdout, report)
	} else {
		err = writeText(os.Stdout, session, report, isTerminal())
	}
	if err != nil {
		logger.Fatal("cannot write output", "error", err)
	}
}

// parseMoves reads a direction script.
func parseMoves(script string) ([]t2048.Direction, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, nil
	}

	var tokens []string
	switch {
	case strings.ContainsAny(script, ", "):
		tokens = strings.FieldsFunc(script, func(r rune) bool { return r == ',' || r == ' ' })
	default:
		// A lone direction name, otherwise one letter per move
		if dir, err := t2048.ParseDirection(script); err == nil {
			return []t2048.Direction{dir}, nil
		}
		tokens = strings.Split(script, "")
	}

	moves := make([]t2048.Direction, 0, len(tokens))
	for _, tok := range tokens {
		dir, err := t2048.ParseDirection(tok)
		if err != nil {
			return nil, err
		}
		moves = append(moves, dir)
	}
	return moves, nil
}

// simulate plays the script and then random moves until done or terminal.
// Random moves come from the session seed so runs are reproducible.
func simulate(session *t2048.Session, moves []t2048.Direction, random int) (simReport, error) {
	report := simReport{
		Seed:    session.Seed(),
		Initial: session.InitialSpawns(),
	}

	rng := rand.New(rand.NewSource(session.Seed()))
	dirs := []t2048.Direction{t2048.DirUp, t2048.DirDown, t2048.DirLeft, t2048.DirRight}

	for i := 0; i < len(moves)+random; i++ {
		if session.State().Terminal() {
			break
		}
		dir := dirs[rng.Intn(len(dirs))]
		if i < len(moves) {
			dir = moves[i]
		}
		res, err := session.Shift(dir)
		if err != nil {
			return report, fmt.Errorf("step %d (%s): %w", i+1, dir, err)
		}
		report.Steps = append(report.Steps, res)
	}

	report.Final = session.Snapshot()
	return report, nil
}

func writeYAML(w io.Writer, report simReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

func writeText(w io.Writer, session *t2048.Session, report simReport, color bool) error {
	var b strings.Builder

	fmt.Fprintf(&b, "variant %s  seed %d\n", report.Variant, report.Seed)
	for _, s := range report.Initial {
		fmt.Fprintf(&b, "  spawn %d at %s\n", s.Value, s.Pos)
	}

	for _, res := range report.Steps {
		switch {
		case res.NoOp:
			fmt.Fprintf(&b, "turn %d %-5s  no change\n", res.Turn, res.Direction)
		default:
			fmt.Fprintf(&b, "turn %d %-5s  %d moves  %d merges  %d spawns  -> %s\n",
				res.Turn, res.Direction, len(res.Moves), len(res.Merges), len(res.Spawns), res.State)
		}
	}

	b.WriteString("\n")
	if color {
		styles := tui.NewTileStyles(nil, session.Types())
		b.WriteString(styles.RenderBoard(report.Final, nil))
		b.WriteString("\n")
	} else {
		b.WriteString(t2048.RenderText(report.Final))
	}
	fmt.Fprintf(&b, "\nstate %s  turn %d  max tile %d\n", report.Final.State, report.Final.Turn, report.Final.MaxTile())

	_, err := io.WriteString(w, b.String())
	return err
}
