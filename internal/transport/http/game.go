package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-vs-ai/internal/domain"
	"github.com/iamasit07/connect4-vs-ai/internal/service/game"
)

// Notifier pushes fresh state to anything else watching a session (websocket clients).
type Notifier interface {
	BroadcastState(sessionID string, snapshot game.Snapshot)
}

type GameHandler struct {
	Sessions *game.SessionManager
	Notifier Notifier
}

func NewGameHandler(sm *game.SessionManager, notifier Notifier) *GameHandler {
	return &GameHandler{Sessions: sm, Notifier: notifier}
}

type createGameRequest struct {
	ClientID   string `json:"client_id"`
	Columns    int    `json:"columns" binding:"omitempty,min=1,max=20"`
	Rows       int    `json:"rows" binding:"omitempty,min=1,max=20"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type cursorRequest struct {
	Delta int `json:"delta"`
}

type gameResponse struct {
	ID string `json:"id"`
	game.Snapshot
}

type moveResponse struct {
	ID   string          `json:"id"`
	Move game.MoveReport `json:"move"`
	Game game.Snapshot   `json:"game"`
}

// Register mounts the game routes on r.
func (h *GameHandler) Register(r gin.IRouter) {
	games := r.Group("/api/games")
	games.POST("", h.CreateGame)
	games.GET("/:id", h.GetGame)
	games.DELETE("/:id", h.DeleteGame)
	games.POST("/:id/moves", h.MakeMove)
	games.POST("/:id/drop", h.Drop)
	games.POST("/:id/cursor", h.MoveCursor)
	games.POST("/:id/reset", h.Reset)
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	gs, err := h.Sessions.CreateSession(c.Request.Context(), game.SessionOptions{
		ClientID:   req.ClientID,
		Columns:    req.Columns,
		Rows:       req.Rows,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidBoardSize) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("[HTTP] failed to create game")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	c.JSON(http.StatusCreated, gameResponse{ID: gs.ID, Snapshot: gs.Snapshot()})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	gs, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gameResponse{ID: gs.ID, Snapshot: gs.Snapshot()})
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.Sessions.RemoveSession(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) MakeMove(c *gin.Context) {
	gs, ok := h.session(c)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, snapshot, err := gs.Play(c.Request.Context(), *req.Column)
	h.respondMove(c, gs.ID, report, snapshot, err)
}

func (h *GameHandler) Drop(c *gin.Context) {
	gs, ok := h.session(c)
	if !ok {
		return
	}

	report, snapshot, err := gs.Drop(c.Request.Context())
	h.respondMove(c, gs.ID, report, snapshot, err)
}

func (h *GameHandler) MoveCursor(c *gin.Context) {
	gs, ok := h.session(c)
	if !ok {
		return
	}

	var req cursorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot := gs.MoveCursor(req.Delta)
	h.notify(gs.ID, snapshot)
	c.JSON(http.StatusOK, gameResponse{ID: gs.ID, Snapshot: snapshot})
}

func (h *GameHandler) Reset(c *gin.Context) {
	gs, ok := h.session(c)
	if !ok {
		return
	}

	snapshot, err := gs.Reset()
	if err != nil {
		log.Error().Err(err).Str("session", gs.ID).Msg("[HTTP] reset failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset game"})
		return
	}

	h.notify(gs.ID, snapshot)
	c.JSON(http.StatusOK, gameResponse{ID: gs.ID, Snapshot: snapshot})
}

func (h *GameHandler) session(c *gin.Context) (*game.GameSession, bool) {
	gs, exists := h.Sessions.GetSession(c.Param("id"))
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return nil, false
	}
	return gs, true
}

func (h *GameHandler) respondMove(c *gin.Context, id string, report game.MoveReport, snapshot game.Snapshot, err error) {
	switch {
	case err == nil:
		h.notify(id, snapshot)
		c.JSON(http.StatusOK, moveResponse{ID: id, Move: report, Game: snapshot})
	case errors.Is(err, domain.ErrInvalidColumn):
		c.JSON(http.StatusBadRequest, gin.H{"result": domain.ColumnFull, "error": err.Error()})
	case errors.Is(err, domain.ErrColumnFull):
		c.JSON(http.StatusConflict, gin.H{"result": domain.ColumnFull, "error": err.Error()})
	case errors.Is(err, domain.ErrGameOver):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "game": snapshot})
	default:
		log.Error().Err(err).Str("session", id).Msg("[HTTP] move failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Move failed"})
	}
}

func (h *GameHandler) notify(id string, snapshot game.Snapshot) {
	if h.Notifier != nil {
		h.Notifier.BroadcastState(id, snapshot)
	}
}
