package bot

import (
	"github.com/iamasit07/connect4-vs-ai/internal/domain"
)

const (
	POSITION_WEIGHT     = 1
	TWO_IN_ROW_WEIGHT   = 2
	THREE_IN_ROW_WEIGHT = 5
	CENTER_WEIGHT       = 2
)

// evaluateBoard is the static score of an undecided position, positive when
// the computer stands better. It is clamped so it can never be mistaken for
// a decided game.
func evaluateBoard(board *domain.Board) int {
	score := 0

	for row := 0; row < board.Rows(); row++ {
		for col := 0; col < board.Columns(); col++ {
			switch board.Cell(col, row) {
			case domain.Computer:
				score += evaluatePosition(board, col, row, domain.Computer)
			case domain.Human:
				score -= evaluatePosition(board, col, row, domain.Human)
			}
		}
	}

	// Center column preference
	centerCol := board.Columns() / 2
	for row := 0; row < board.Height(centerCol); row++ {
		switch board.Cell(centerCol, row) {
		case domain.Computer:
			score += CENTER_WEIGHT
		case domain.Human:
			score -= CENTER_WEIGHT
		}
	}

	return max(-HeuristicCap, min(HeuristicCap, score))
}

// evaluatePosition evaluates a single position's contribution to the score
func evaluatePosition(board *domain.Board, col, row int, side domain.Side) int {
	score := POSITION_WEIGHT
	need := board.RunLength()

	for _, dir := range [][2]int{{1, 0}, {0, 1}, {1, 1}, {-1, 1}} {
		dCol, dRow := dir[0], dir[1]

		posCount := board.CountInDirection(col, row, dCol, dRow, side)
		negCount := board.CountInDirection(col, row, -dCol, -dRow, side)
		total := posCount + negCount + 1

		if !hasSpaceForExtension(board, col, row, dCol, dRow, posCount, negCount) {
			continue
		}

		if total >= need-1 {
			score += THREE_IN_ROW_WEIGHT
		} else if total == need-2 && total > 1 {
			score += TWO_IN_ROW_WEIGHT
		}
	}

	return score
}

// Helper: check if there's room to extend a line
func hasSpaceForExtension(board *domain.Board, col, row, dCol, dRow, posCount, negCount int) bool {
	posCol := col + dCol*(posCount+1)
	posRow := row + dRow*(posCount+1)
	if isPlayableSpace(board, posCol, posRow) {
		return true
	}

	negCol := col - dCol*(negCount+1)
	negRow := row - dRow*(negCount+1)
	return isPlayableSpace(board, negCol, negRow)
}

// Check if a space is the next drop in its column (respects gravity)
func isPlayableSpace(board *domain.Board, col, row int) bool {
	if col < 0 || col >= board.Columns() || row < 0 || row >= board.Rows() {
		return false
	}
	return board.Height(col) == row
}
