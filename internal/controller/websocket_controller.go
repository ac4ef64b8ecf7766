package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/service"
	"github.com/hailam/chesscore/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection subscribes the connection to its game and feeds incoming
// messages into the service until the socket closes. State changes reach
// every subscriber through the service broadcast.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("id")
	playerID, _ := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("[HTTP] register %s on %s: %v", playerID, gameID, err)
		c.WriteJSON(errorMessage(err))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[HTTP] read %s on %s: %v", playerID, gameID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(gameID, playerID, fmt.Errorf("parse message: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.sendError(gameID, playerID, err)
		}
	}
}

// handleMessage dispatches one client message to the service.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeClick:
		var p ws.ClickPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		_, err := wsc.gameService.Click(gameID, playerID, p.Cell)
		return err

	case ws.MessageTypeMove:
		var p ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		_, err := wsc.gameService.Move(gameID, playerID, board.NewMove(p.From, p.To))
		return err

	case ws.MessageTypeEngine:
		var p ws.EnginePayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				return err
			}
		}
		_, err := wsc.gameService.EngineMove(context.Background(), gameID, playerID, p.Depth)
		return err

	case ws.MessageTypeUndo:
		_, _, err := wsc.gameService.Undo(gameID, playerID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// sendError reports err to the sender only. Writes go through the service so
// they never interleave with a broadcast.
func (wsc *WebSocketController) sendError(gameID, playerID string, err error) {
	if werr := wsc.gameService.Manager().Send(gameID, playerID, errorMessage(err)); werr != nil {
		log.Printf("[HTTP] send error to %s: %v", playerID, werr)
	}
}

func errorMessage(err error) ws.Message {
	msg, _ := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Message: err.Error()})
	return msg
}
