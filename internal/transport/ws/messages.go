package ws

import "github.com/vovakirdan/tui-2048/internal/games/t2048"

// MessageType defines the type of message being sent.
type MessageType string

// Client -> server.
const (
	MessageTypeNew      MessageType = "new"
	MessageTypeShift    MessageType = "shift"
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeState    MessageType = "state"
)

// Server -> client.
const (
	MessageTypeSession MessageType = "session"
	MessageTypeResult  MessageType = "result"
	MessageTypeError   MessageType = "error"
)

// ClientMessage is a command from the client.
type ClientMessage struct {
	Type      MessageType `json:"type"`
	Variant   string      `json:"variant,omitempty"`
	Seed      int64       `json:"seed,omitempty"` // 0 picks a time-based seed
	Direction string      `json:"direction,omitempty"`
}

// ServerMessage is a reply or notification to the client.
type ServerMessage struct {
	Type      MessageType        `json:"type"`
	SessionID string             `json:"session_id,omitempty"`
	Variant   string             `json:"variant,omitempty"`
	Result    *t2048.ShiftResult `json:"result,omitempty"`
	Snapshot  *t2048.Snapshot    `json:"snapshot,omitempty"`
	State     t2048.GameState    `json:"state,omitempty"`
	Error     string             `json:"error,omitempty"`
	Kind      t2048.Kind         `json:"kind,omitempty"`
}

func errorMessage(kind t2048.Kind, err error) ServerMessage {
	return ServerMessage{Type: MessageTypeError, Error: err.Error(), Kind: kind}
}
