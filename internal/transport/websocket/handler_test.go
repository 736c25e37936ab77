package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-vs-ai/internal/domain"
	"github.com/iamasit07/connect4-vs-ai/internal/service/bot"
	"github.com/iamasit07/connect4-vs-ai/internal/service/game"
)

type columnPlayer int

func (p columnPlayer) BestMove(*domain.Board) (int, error) { return int(p), nil }

func setupServer(t *testing.T) (*httptest.Server, *game.GameSession, *ConnectionManager) {
	t.Helper()
	srv, gs, cm, _ := setupServerWithManager(t)
	return srv, gs, cm
}

func setupServerWithManager(t *testing.T) (*httptest.Server, *game.GameSession, *ConnectionManager, *game.SessionManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sm := game.NewSessionManager(nil, func(string) bot.Player { return columnPlayer(6) }, game.Defaults{
		Columns:    domain.Columns,
		Rows:       domain.Rows,
		WinLength:  domain.ToWin,
		Difficulty: bot.DifficultyHard,
	})
	gs, err := sm.CreateSession(context.Background(), game.SessionOptions{})
	require.NoError(t, err)

	cm := NewConnectionManager()
	sm.OnRemove(cm.CloseSession)
	router := gin.New()
	router.GET("/ws", NewHandler(cm, sm, []string{"*"}).HandleWebSocket)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, gs, cm, sm
}

func dial(t *testing.T, srv *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?game=" + gameID
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestInitialStateAndMove(t *testing.T) {
	srv, gs, cm := setupServer(t)
	conn := dial(t, srv, gs.ID)

	msg := readMessage(t, conn)
	require.Equal(t, "state", msg.Type)
	require.Equal(t, gs.ID, msg.GameID)
	require.NotNil(t, msg.Game)
	require.Equal(t, game.StatePlaying, msg.Game.State)
	require.Equal(t, 1, cm.Count(gs.ID))

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "move", Column: 2}))
	msg = readMessage(t, conn)
	require.Equal(t, "move", msg.Type)
	require.NotNil(t, msg.Move)
	require.Equal(t, domain.Accepted, msg.Move.Result)
	require.Equal(t, 2, msg.Move.HumanColumn)
	require.Equal(t, 6, msg.Move.ComputerColumn)
	require.Equal(t, int(domain.Human), msg.Game.Board[domain.Rows-1][2])
}

func TestRejectedAndUnknownMessages(t *testing.T) {
	srv, gs, _ := setupServer(t)
	conn := dial(t, srv, gs.ID)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "move", Column: 42}))
	msg := readMessage(t, conn)
	require.Equal(t, "rejected", msg.Type)
	require.Equal(t, domain.ColumnFull, msg.Move.Result)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "shuffle"}))
	msg = readMessage(t, conn)
	require.Equal(t, "error", msg.Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	msg = readMessage(t, conn)
	require.Equal(t, "error", msg.Type)
}

func TestCursorResetAndState(t *testing.T) {
	srv, gs, _ := setupServer(t)
	conn := dial(t, srv, gs.ID)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "cursor", Delta: -4}))
	msg := readMessage(t, conn)
	require.Equal(t, "state", msg.Type)
	require.Equal(t, domain.Columns-1, msg.Game.Cursor)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "drop"}))
	msg = readMessage(t, conn)
	require.Equal(t, "move", msg.Type)
	require.Equal(t, domain.Columns-1, msg.Move.HumanColumn)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "reset"}))
	msg = readMessage(t, conn)
	require.Equal(t, "state", msg.Type)
	require.Equal(t, domain.Columns/2, msg.Game.Cursor)
	require.Len(t, msg.Game.LegalColumns, domain.Columns)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "state"}))
	msg = readMessage(t, conn)
	require.Equal(t, "state", msg.Type)
}

func TestBroadcastReachesEveryWatcher(t *testing.T) {
	srv, gs, cm := setupServer(t)
	first := dial(t, srv, gs.ID)
	readMessage(t, first)
	second := dial(t, srv, gs.ID)
	readMessage(t, second)
	require.Eventually(t, func() bool { return cm.Count(gs.ID) == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, first.WriteJSON(ClientMessage{Type: "move", Column: 0}))
	require.Equal(t, "move", readMessage(t, first).Type)
	require.Equal(t, "move", readMessage(t, second).Type)
}

func TestUnknownGame(t *testing.T) {
	srv, _, _ := setupServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?game=missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRemovedSessionClosesSockets(t *testing.T) {
	srv, gs, cm, sm := setupServerWithManager(t)
	conn := dial(t, srv, gs.ID)
	readMessage(t, conn)

	require.NoError(t, sm.RemoveSession(gs.ID))
	require.Zero(t, cm.Count(gs.ID))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}
