package websocket

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-vs-ai/internal/domain"
	"github.com/iamasit07/connect4-vs-ai/internal/service/game"
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager *ConnectionManager
	Sessions    *game.SessionManager
	Upgrader    websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager: cm,
		Sessions:    sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin || allowed == "*" {
						return true
					}
				}
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades GET /ws?game=<id> and serves that session.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	gameID := c.Query("game")
	gs, exists := h.Sessions.GetSession(gameID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("[WS] upgrade error")
		return
	}

	h.handleConnection(c.Request.Context(), gs, conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(ctx context.Context, gs *game.GameSession, conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	cl := h.ConnManager.AddConnection(gs.ID, conn)
	defer func() {
		log.Debug().Str("session", gs.ID).Msg("[WS] connection closed")
		h.ConnManager.RemoveConnection(gs.ID, conn)
	}()

	done := make(chan struct{})
	defer close(done)

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				cl.writeMu.Lock()
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second))
				cl.writeMu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()

	snapshot := gs.Snapshot()
	cl.send(ServerMessage{Type: "state", GameID: gs.ID, Game: &snapshot})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("session", gs.ID).Msg("[WS] client disconnected unexpectedly")
			}
			return
		}

		var msg ClientMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			cl.send(ServerMessage{Type: "error", Message: "Invalid message format"})
			continue
		}

		h.processMessage(ctx, gs, cl, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(ctx context.Context, gs *game.GameSession, cl *client, msg ClientMessage) {
	switch msg.Type {
	case "move", "drop":
		var (
			report   game.MoveReport
			snapshot game.Snapshot
			err      error
		)
		if msg.Type == "move" {
			report, snapshot, err = gs.Play(ctx, msg.Column)
		} else {
			report, snapshot, err = gs.Drop(ctx)
		}

		switch {
		case err == nil:
			h.ConnManager.Broadcast(gs.ID, ServerMessage{Type: "move", GameID: gs.ID, Game: &snapshot, Move: &report})
		case errors.Is(err, domain.ErrColumnFull), errors.Is(err, domain.ErrInvalidColumn):
			cl.send(ServerMessage{Type: "rejected", GameID: gs.ID, Move: &report, Message: err.Error()})
		default:
			cl.send(ServerMessage{Type: "error", GameID: gs.ID, Message: err.Error()})
		}

	case "cursor":
		snapshot := gs.MoveCursor(msg.Delta)
		h.ConnManager.BroadcastState(gs.ID, snapshot)

	case "reset":
		snapshot, err := gs.Reset()
		if err != nil {
			cl.send(ServerMessage{Type: "error", GameID: gs.ID, Message: err.Error()})
			return
		}
		h.ConnManager.BroadcastState(gs.ID, snapshot)

	case "state":
		snapshot := gs.Snapshot()
		cl.send(ServerMessage{Type: "state", GameID: gs.ID, Game: &snapshot})

	default:
		cl.send(ServerMessage{Type: "error", Message: "Unknown message type"})
	}
}
