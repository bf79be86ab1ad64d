package ws

import (
	"encoding/json"

	"github.com/biologicmachine-lab/GameOn/internal/model"
)

// MessageType discriminates the websocket envelope.
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeResign    MessageType = "resign"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message is the envelope every websocket frame carries in either direction.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is the body of an inbound move message.
type MovePayload struct {
	From model.Position `json:"from"`
	To   model.Position `json:"to"`
}

// ErrorPayload is the body of an outbound error message.
type ErrorPayload struct {
	Message string `json:"message"`
}
