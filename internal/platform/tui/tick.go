// Package tui provides the Bubble Tea front end for the merge game.
// It maps keys to directions, replays shift results and records finished games.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// replayInterval is the duration of one replay frame.
const replayInterval = 70 * time.Millisecond

// replayTickMsg advances the post-shift highlight replay.
type replayTickMsg time.Time

// replayTickCmd schedules the next replay frame.
func replayTickCmd() tea.Cmd {
	return tea.Tick(replayInterval, func(t time.Time) tea.Msg {
		return replayTickMsg(t)
	})
}
