package chat

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatservice "github.com/solacehq/solace/backend/internal/service/chat"
)

// WebSocketHandler serves live chat over a websocket connection.
type WebSocketHandler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the websocket handler.
func NewWebSocketHandler(chatSvc *chatservice.Service) *WebSocketHandler {
	return &WebSocketHandler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes mounts the websocket route.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type messageData struct {
	Content string `json:"content"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] session=%s read error: %v", sessionID, err)
			}
			return
		}

		switch inbound.Type {
		case "message":
			var data messageData
			if err := json.Unmarshal(inbound.Data, &data); err != nil {
				h.writeError(conn, sessionID, "invalid message data")
				continue
			}

			turn, err := h.chatSvc.HandleMessage(r.Context(), sessionID, data.Content)
			if err != nil {
				h.writeError(conn, sessionID, err.Error())
				continue
			}

			h.write(conn, outgoingMessage{
				Type:      "turn",
				SessionID: sessionID,
				Data:      newTurnPayload(turn),
				Timestamp: time.Now().UnixMilli(),
			})
		case "ping":
			h.write(conn, outgoingMessage{
				Type:      "pong",
				SessionID: sessionID,
				Timestamp: time.Now().UnixMilli(),
			})
		default:
			h.writeError(conn, sessionID, "unknown message type")
		}
	}
}

func (h *WebSocketHandler) write(conn *websocket.Conn, message outgoingMessage) {
	if err := conn.WriteJSON(message); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}

func (h *WebSocketHandler) writeError(conn *websocket.Conn, sessionID, message string) {
	h.write(conn, outgoingMessage{
		Type:      "error",
		SessionID: sessionID,
		Data:      map[string]string{"error": message},
		Timestamp: time.Now().UnixMilli(),
	})
}
