package bot

import (
	"github.com/iamasit07/connect4-vs-ai/internal/domain"
)

// Player picks the computer's next column on a board where the computer is to move.
type Player interface {
	BestMove(board *domain.Board) (int, error)
}

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	mediumDepth = 4
)

// NewPlayer selects the engine for a difficulty. Unknown difficulties fall back to hard.
func NewPlayer(difficulty string, depth int, heuristic bool) Player {
	switch difficulty {
	case DifficultyEasy:
		return NewRandom(0)
	case DifficultyMedium:
		return NewMinimax(min(depth, mediumDepth), true)
	default:
		return NewMinimax(depth, heuristic)
	}
}

// checkPlayable enforces the engine's precondition: a legal column exists and
// the position is not already decided.
func checkPlayable(board *domain.Board) error {
	if len(board.LegalColumns()) == 0 {
		return domain.ErrNoLegalMove
	}
	if board.HasLine(domain.Human) || board.HasLine(domain.Computer) {
		return domain.ErrGameOver
	}
	return nil
}
