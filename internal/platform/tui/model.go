package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// GameOptions configures a board model.
type GameOptions struct {
	Variant  string
	Rules    config.Rules
	Seed     int64 // 0 picks a time-based seed for every game
	Store    *storage.Store
	Logger   *log.Logger
	Renderer *lipgloss.Renderer
	Width    int
	Height   int

	// Standalone quits the program on back instead of returning to a menu.
	Standalone bool
}

// GameModel is the Bubble Tea model for one board.
type GameModel struct {
	opts      GameOptions
	session   *t2048.Session
	sessionID string
	styles    *TileStyles
	keys      KeyMap
	help      help.Model
	replay    replay
	last      t2048.ShiftResult
	best      int
	width     int
	height    int
	saved     bool
	quitting  bool
	back      bool
}

// NewGameModel creates a board model and starts the first session.
// Rule errors surface here, before any program starts.
func NewGameModel(opts GameOptions) (GameModel, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	m := GameModel{
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		width:  opts.Width,
		height: opts.Height,
	}
	if err := m.newSession(); err != nil {
		return GameModel{}, err
	}
	m.styles = NewTileStyles(opts.Renderer, m.session.Types())
	m.help.Width = opts.Width

	if opts.Store != nil {
		if best, err := opts.Store.BestTile(opts.Variant); err == nil {
			m.best = best
		}
	}
	return m, nil
}

// newSession replaces the current session with a fresh one.
func (m *GameModel) newSession() error {
	seed := m.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := t2048.NewSession(m.opts.Rules, seed)
	if err != nil {
		return fmt.Errorf("tui: new session: %w", err)
	}

	m.session = session
	m.sessionID = uuid.NewString()
	m.last = t2048.ShiftResult{State: session.State()}
	m.replay = replay{}
	m.saved = false

	m.opts.Logger.Debug("session started",
		"session", m.sessionID,
		"variant", m.opts.Variant,
		"seed", seed,
	)
	return nil
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case replayTickMsg:
		if m.replay.advance() {
			return m, replayTickCmd()
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.recordResult(storage.OutcomeAbandoned)
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// Commands that arrive while a result is still on screen are dropped
	if m.replay.active() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.recordResult(storage.OutcomeAbandoned)
		m.back = true
		if m.opts.Standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.recordResult(storage.OutcomeAbandoned)
		if err := m.newSession(); err != nil {
			m.opts.Logger.Error("restart failed", "error", err)
		}
		return m, nil
	}

	dir, ok := m.keys.Direction(msg)
	if !ok {
		return m, nil
	}
	return m.shift(dir)
}

// shift sends one command to the session and starts the replay of its result.
func (m GameModel) shift(dir t2048.Direction) (tea.Model, tea.Cmd) {
	res, err := m.session.Shift(dir)
	if err != nil {
		m.opts.Logger.Error("shift failed", "session", m.sessionID, "error", err)
		return m, nil
	}
	if res.Ignored {
		return m, nil
	}
	m.last = res

	switch res.State {
	case t2048.StateWon:
		m.recordResult(storage.OutcomeWon)
	case t2048.StateLost:
		m.recordResult(storage.OutcomeLost)
	}

	if m.replay.start(res) {
		return m, replayTickCmd()
	}
	return m, nil
}

// recordResult saves the session once. Abandoned sessions with no turns are not recorded.
func (m *GameModel) recordResult(outcome string) {
	if m.saved {
		return
	}
	if outcome == storage.OutcomeAbandoned && (m.session.Turn() == 0 || m.session.State().Terminal()) {
		return
	}
	m.saved = true

	maxTile := m.session.MaxTile()
	m.best = max(m.best, maxTile)

	m.opts.Logger.Info("game finished",
		"session", m.sessionID,
		"variant", m.opts.Variant,
		"outcome", outcome,
		"max_tile", maxTile,
		"turns", m.session.Turn(),
	)

	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveResult(storage.Result{
		SessionID: m.sessionID,
		Variant:   m.opts.Variant,
		Outcome:   outcome,
		MaxTile:   maxTile,
		Turns:     m.session.Turn(),
		Seed:      m.session.Seed(),
	})
	if err != nil {
		m.opts.Logger.Warn("could not save result", "session", m.sessionID, "error", err)
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	wonStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#edc22e"))
	lostStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f65e3b"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
)

// View renders the board.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.session.Snapshot()
	if m.width > 0 && m.width < m.styles.FrameWidth(snap.Width) {
		return centerText("Window too small", m.width) + "\n" +
			centerText("Please resize terminal", m.width)
	}

	rules := m.session.Rules()
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("2048 - %s", m.opts.Variant)))
	b.WriteString("\n")
	b.WriteString(statStyle.Render(fmt.Sprintf("Turn %d   Max %d   Best %d   Target %d",
		m.session.Turn(), m.session.MaxTile(), m.best, rules.WinValue)))
	b.WriteString("\n\n")

	b.WriteString(m.styles.RenderBoard(snap, m.replay.highlights()))
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, b.String())
}

// statusLine describes the last command and any end-of-game state.
func (m GameModel) statusLine() string {
	switch m.session.State() {
	case t2048.StateWon:
		return wonStyle.Render(fmt.Sprintf("You reached %d!", m.session.MaxTile())) +
			hintStyle.Render("  r: new game  b: back")
	case t2048.StateLost:
		return lostStyle.Render("No moves left.") +
			hintStyle.Render("  r: new game  b: back")
	}

	switch {
	case m.last.NoOp:
		return noticeStyle.Render(fmt.Sprintf("Nothing moves %s.", m.last.Direction))
	case len(m.last.Merges) > 0:
		return noticeStyle.Render(fmt.Sprintf("%d merge(s)", len(m.last.Merges)))
	}
	return ""
}

// Session returns the running session.
func (m GameModel) Session() *t2048.Session {
	return m.session
}

// SessionID returns the id results are recorded under.
func (m GameModel) SessionID() string {
	return m.sessionID
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.back
}

// Run starts a standalone board program.
func Run(opts GameOptions) error {
	opts.Standalone = true
	model, err := NewGameModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
