package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant. Without a variant a menu lets you pick one
and come back to it after each game.

Controls:
  Arrows/WASD/HJKL  - Shift tiles
  R                 - Restart
  Esc/B             - Back
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Examples:
  merge2048 play
  merge2048 play mini
  merge2048 play classic --seed 42
  merge2048 play classic --rules ./my-rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	width, height := termSize()

	// Log lines would tear the alternate screen; keep only warnings and worse
	gameLogger := logger.With()
	gameLogger.SetLevel(max(logger.GetLevel(), log.WarnLevel))

	store := openStore()

	var err error
	if len(args) == 0 {
		err = tui.RunSession(tui.SessionOptions{
			Variant: t2048.DefaultVariant,
			Rules:   resolveRules,
			Seed:    flagSeed,
			Store:   store,
			Logger:  gameLogger,
			Width:   width,
			Height:  height,
		})
	} else {
		err = playVariant(args[0], store, gameLogger, width, height)
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if err != nil {
		logger.Error("play failed", "error", err)
		os.Exit(1)
	}
}

func playVariant(variant string, store *storage.Store, gameLogger *log.Logger, width, height int) error {
	if !registry.Exists(variant) {
		return unknownVariant(variant)
	}

	rules, err := resolveRules(variant)
	if err != nil {
		return err
	}

	return tui.Run(tui.GameOptions{
		Variant: variant,
		Rules:   rules,
		Seed:    flagSeed,
		Store:   store,
		Logger:  gameLogger,
		Width:   width,
		Height:  height,
	})
}
