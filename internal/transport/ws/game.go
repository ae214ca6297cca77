package ws

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// gameHandler owns the session of one connection.
// It is only touched from the connection's read loop.
type gameHandler struct {
	config    ServerConfig
	logger    *log.Logger
	session   *t2048.Session
	sessionID string
	variant   string
	recorded  bool
}

func newGameHandler(cfg ServerConfig, logger *log.Logger) *gameHandler {
	return &gameHandler{config: cfg, logger: logger}
}

// HandleMessage decodes one client command and replies on c.
func (g *gameHandler) HandleMessage(c *Connection, message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		g.send(c, errorMessage(t2048.KindInvalidArgument, fmt.Errorf("malformed message: %w", err)))
		return
	}

	var reply ServerMessage
	switch msg.Type {
	case MessageTypeNew:
		reply = g.handleNew(msg)
	case MessageTypeShift:
		reply = g.handleShift(msg)
	case MessageTypeSnapshot:
		reply = g.handleSnapshot()
	case MessageTypeState:
		reply = g.handleState()
	default:
		reply = errorMessage(t2048.KindInvalidArgument, fmt.Errorf("unknown message type %q", msg.Type))
	}
	g.send(c, reply)
}

func (g *gameHandler) send(c *Connection, msg ServerMessage) {
	if err := c.SendMessage(msg); err != nil {
		g.logger.Warn("send failed", "type", msg.Type, "error", err)
	}
}

func (g *gameHandler) handleNew(msg ClientMessage) ServerMessage {
	variant := msg.Variant
	if variant == "" {
		variant = g.config.Variant
	}

	rules, err := g.config.Rules(variant)
	if err != nil {
		return errorMessage(t2048.KindInvalidArgument, err)
	}

	seed := msg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := t2048.NewSession(rules, seed)
	if err != nil {
		kind := t2048.KindOf(err)
		if kind == "" {
			kind = t2048.KindConfig
		}
		return errorMessage(kind, err)
	}

	// Replacing a game in progress abandons it
	g.record(storage.OutcomeAbandoned)

	g.session = session
	g.sessionID = uuid.NewString()
	g.variant = variant
	g.recorded = false
	g.logger.Info("game started", "session", g.sessionID, "variant", variant, "seed", seed)

	snap := session.Snapshot()
	return ServerMessage{
		Type:      MessageTypeSession,
		SessionID: g.sessionID,
		Variant:   variant,
		Snapshot:  &snap,
		State:     session.State(),
	}
}

func (g *gameHandler) handleShift(msg ClientMessage) ServerMessage {
	if g.session == nil {
		return errorMessage(t2048.KindInvalidArgument, fmt.Errorf("no session: send %q first", MessageTypeNew))
	}

	dir, err := t2048.ParseDirection(msg.Direction)
	if err != nil {
		return errorMessage(t2048.KindOf(err), err)
	}

	res, err := g.session.Shift(dir)
	if err != nil {
		return errorMessage(t2048.KindOf(err), err)
	}

	switch res.State {
	case t2048.StateWon:
		g.record(storage.OutcomeWon)
	case t2048.StateLost:
		g.record(storage.OutcomeLost)
	}

	return ServerMessage{
		Type:      MessageTypeResult,
		SessionID: g.sessionID,
		Result:    &res,
		State:     res.State,
	}
}

func (g *gameHandler) handleSnapshot() ServerMessage {
	if g.session == nil {
		return errorMessage(t2048.KindInvalidArgument, fmt.Errorf("no session: send %q first", MessageTypeNew))
	}
	snap := g.session.Snapshot()
	return ServerMessage{
		Type:      MessageTypeSnapshot,
		SessionID: g.sessionID,
		Variant:   g.variant,
		Snapshot:  &snap,
		State:     snap.State,
	}
}

func (g *gameHandler) handleState() ServerMessage {
	if g.session == nil {
		return errorMessage(t2048.KindInvalidArgument, fmt.Errorf("no session: send %q first", MessageTypeNew))
	}
	return ServerMessage{
		Type:      MessageTypeState,
		SessionID: g.sessionID,
		State:     g.session.State(),
	}
}

// close abandons an unfinished game when the client goes away.
func (g *gameHandler) close() {
	g.record(storage.OutcomeAbandoned)
}

// record saves the current session once. Untouched and finished games are not abandoned.
func (g *gameHandler) record(outcome string) {
	if g.session == nil || g.recorded {
		return
	}
	if outcome == storage.OutcomeAbandoned && (g.session.Turn() == 0 || g.session.State().Terminal()) {
		return
	}
	g.recorded = true

	g.logger.Info("game finished",
		"session", g.sessionID,
		"variant", g.variant,
		"outcome", outcome,
		"max_tile", g.session.MaxTile(),
		"turns", g.session.Turn(),
	)

	if g.config.Store == nil {
		return
	}
	_, err := g.config.Store.SaveResult(storage.Result{
		SessionID: g.sessionID,
		Variant:   g.variant,
		Outcome:   outcome,
		MaxTile:   g.session.MaxTile(),
		Turns:     g.session.Turn(),
		Seed:      g.session.Seed(),
	})
	if err != nil {
		g.logger.Error("cannot save result", "session", g.sessionID, "error", err)
	}
}
