package websocket

import "github.com/iamasit07/connect4-vs-ai/internal/service/game"

// ClientMessage is what the presentation client sends.
type ClientMessage struct {
	Type   string `json:"type"` // "move", "drop", "cursor", "reset", "state"
	Column int    `json:"column,omitempty"`
	Delta  int    `json:"delta,omitempty"`
}

type ServerMessage struct {
	Type    string           `json:"type"` // "state", "move", "rejected", "error"
	GameID  string           `json:"game_id,omitempty"`
	Game    *game.Snapshot   `json:"game,omitempty"`
	Move    *game.MoveReport `json:"move,omitempty"`
	Message string           `json:"message,omitempty"`
}
