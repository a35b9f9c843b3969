package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chess-analysis-backend/internal/model"
	"github.com/benbeisheim/chess-analysis-backend/internal/service"
	"github.com/benbeisheim/chess-analysis-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// wsConn is the part of *websocket.Conn the read loop uses.
type wsConn interface {
	model.Watcher
	ReadMessage() (messageType int, p []byte, err error)
}

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	clientID, _ := c.Locals("clientID").(string)
	wsc.serve(c, c.Params("gameId"), clientID)
}

func (wsc *WebSocketController) serve(conn wsConn, gameID, clientID string) {
	if err := wsc.gameService.RegisterConnection(gameID, clientID, conn); err != nil {
		log.Warnf("failed to register connection for game %s: %v", gameID, err)
		wsc.sendError(conn, gameID, err.Error())
		conn.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, clientID, conn)

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read error from %s: %v", gameID, clientID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("game %s: parse error: %v", gameID, err)
			wsc.sendError(conn, gameID, "malformed message")
			continue
		}

		if err := wsc.handleMessage(conn, gameID, clientID, msg); err != nil {
			log.Debugf("game %s: handle error: %v", gameID, err)
			wsc.sendError(conn, gameID, err.Error())
		}
	}
}

// Done moves and undos reach the client through the game broadcast; only
// rejections are answered directly.
func (wsc *WebSocketController) handleMessage(conn model.Watcher, gameID, clientID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		result, err := wsc.gameService.HandleMove(gameID, clientID, move)
		if err != nil {
			return err
		}
		if !result.Status.IsDone() {
			payload, err := json.Marshal(result)
			if err != nil {
				return err
			}
			return wsc.gameService.SendTo(gameID, conn, ws.Message{Type: ws.MessageTypeRejected, Payload: payload})
		}
		return nil

	case ws.MessageTypeUndo:
		_, err := wsc.gameService.Undo(gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(conn model.Watcher, gameID, errorMsg string) {
	payload, _ := json.Marshal(errorMsg)
	if err := wsc.gameService.SendTo(gameID, conn, ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	}); err != nil {
		log.Debugf("game %s: failed to send error: %v", gameID, err)
	}
}
