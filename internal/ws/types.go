// Package ws defines the messages exchanged over a game's websocket.
package ws

import (
	"encoding/json"

	"github.com/hailam/chesscore/internal/board"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeClick     MessageType = "click"
	MessageTypeMove      MessageType = "move"
	MessageTypeEngine    MessageType = "engine"
	MessageTypeUndo      MessageType = "undo"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ClickPayload carries a cell clicked on the board.
type ClickPayload struct {
	Cell board.Cell `json:"cell"`
}

// MovePayload carries a complete move.
type MovePayload struct {
	From board.Cell `json:"from"`
	To   board.Cell `json:"to"`
}

// EnginePayload asks the engine to move. Zero depth uses the server default.
type EnginePayload struct {
	Depth int `json:"depth"`
}

// ErrorPayload is sent back when a message could not be handled.
type ErrorPayload struct {
	Message string `json:"message"`
}

// NewMessage builds a message with v encoded as its payload.
func NewMessage(t MessageType, v any) (Message, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: data}, nil
}
