package websocket

import (
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-vs-ai/internal/service/game"
)

type client struct {
	conn *websocket.Conn
	// conn.WriteMessage is not safe for concurrent use
	writeMu sync.Mutex
}

func (cl *client) send(message ServerMessage) error {
	data, err := sonic.Marshal(message)
	if err != nil {
		return err
	}

	cl.writeMu.Lock()
	defer cl.writeMu.Unlock()

	cl.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return cl.conn.WriteMessage(websocket.TextMessage, data)
}

// ConnectionManager tracks the sockets watching each game session.
type ConnectionManager struct {
	connections map[string]map[*websocket.Conn]*client
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]map[*websocket.Conn]*client),
	}
}

func (cm *ConnectionManager) AddConnection(sessionID string, conn *websocket.Conn) *client {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.connections[sessionID] == nil {
		cm.connections[sessionID] = make(map[*websocket.Conn]*client)
	}
	cl := &client{conn: conn}
	cm.connections[sessionID][conn] = cl
	return cl
}

func (cm *ConnectionManager) RemoveConnection(sessionID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	conns, exists := cm.connections[sessionID]
	if !exists {
		return
	}
	if _, ok := conns[conn]; ok {
		conn.Close()
		delete(conns, conn)
	}
	if len(conns) == 0 {
		delete(cm.connections, sessionID)
	}
}

// CloseSession closes every socket watching a session that no longer exists.
func (cm *ConnectionManager) CloseSession(sessionID string) {
	cm.mu.Lock()
	conns := cm.connections[sessionID]
	delete(cm.connections, sessionID)
	cm.mu.Unlock()

	for conn, cl := range conns {
		cl.writeMu.Lock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game closed"),
			time.Now().Add(time.Second))
		cl.writeMu.Unlock()
		conn.Close()
	}
	if len(conns) > 0 {
		log.Debug().Str("session", sessionID).Msgf("[WS] closed %d connections", len(conns))
	}
}

// Count returns how many sockets watch a session.
func (cm *ConnectionManager) Count(sessionID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections[sessionID])
}

// Broadcast sends a message to every socket on a session
func (cm *ConnectionManager) Broadcast(sessionID string, message ServerMessage) {
	cm.mu.RLock()
	clients := make([]*client, 0, len(cm.connections[sessionID]))
	for _, cl := range cm.connections[sessionID] {
		clients = append(clients, cl)
	}
	cm.mu.RUnlock()

	for _, cl := range clients {
		if err := cl.send(message); err != nil {
			log.Debug().Err(err).Str("session", sessionID).Msg("[WS] broadcast write failed")
		}
	}
}

func (cm *ConnectionManager) BroadcastState(sessionID string, snapshot game.Snapshot) {
	cm.Broadcast(sessionID, ServerMessage{Type: "state", GameID: sessionID, Game: &snapshot})
}
