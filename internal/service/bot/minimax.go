package bot

import (
	"math"

	"github.com/iamasit07/connect4-vs-ai/internal/domain"
)

// Scores are from the computer's point of view. A decided position is worth
// WinScore plus the depth budget still left at that node, so a win found
// closer to the root outranks a later one and a loss is pushed as far out as
// possible. Draws and unfinished leaves sit well inside that range.
const (
	WinScore     = 100
	DrawScore    = 0
	NeutralScore = 0
	HeuristicCap = WinScore / 2
	DefaultDepth = 6
)

// Minimax is a fixed-depth minimax search with alpha-beta pruning. The
// computer always maximizes and the human always minimizes.
type Minimax struct {
	Depth     int
	Heuristic bool
}

// Stats describes the work done by one search.
type Stats struct {
	Nodes   int
	Cutoffs int
}

func NewMinimax(depth int, heuristic bool) *Minimax {
	if depth < 0 {
		depth = 0
	}
	return &Minimax{Depth: depth, Heuristic: heuristic}
}

// BestMove returns the column judged best for the computer. The board is
// mutated during the search and handed back exactly as it came in.
func (m *Minimax) BestMove(board *domain.Board) (int, error) {
	col, _, err := m.Search(board)
	return col, err
}

// Search is BestMove plus node statistics.
func (m *Minimax) Search(board *domain.Board) (int, Stats, error) {
	if err := checkPlayable(board); err != nil {
		return -1, Stats{}, err
	}

	s := &searcher{board: board, heuristic: m.Heuristic, prune: true}
	col := s.root(m.Depth)
	return col, s.stats, nil
}

type searcher struct {
	board     *domain.Board
	heuristic bool
	prune     bool
	stats     Stats
}

// root plays every legal column for the computer and keeps the first one
// with the strictly greatest score. Among equal scores a column that takes a
// cell where the human would complete a line wins the tie.
func (s *searcher) root(depth int) int {
	legal := s.board.LegalColumns()
	blocks := make([]bool, s.board.Columns())
	for _, col := range legal {
		blocks[col] = s.winsWith(col, domain.Human)
	}

	bestCol := legal[0]
	bestScore := math.MinInt
	alpha := math.MinInt
	beta := math.MaxInt

	// the root move already spends one ply
	remaining := max(depth-1, 0)

	for _, col := range legal {
		s.board.Place(col, domain.Computer)
		score := s.minimax(remaining, alpha, beta, domain.Human)
		s.board.Undo(col)

		if score > bestScore || (score == bestScore && blocks[col] && !blocks[bestCol]) {
			bestScore = score
			bestCol = col
		}
		// one below the best so a tying column still gets an exact score
		if s.prune {
			alpha = max(alpha, bestScore-1)
		}
	}
	return bestCol
}

func (s *searcher) minimax(depth, alpha, beta int, toMove domain.Side) int {
	s.stats.Nodes++

	if score, done := s.terminal(depth); done {
		return score
	}
	if depth <= 0 {
		return s.leaf(toMove)
	}

	b := s.board
	if toMove == domain.Computer {
		maxEval := math.MinInt
		for col := 0; col < b.Columns(); col++ {
			if !b.Place(col, toMove) {
				continue
			}
			eval := s.minimax(depth-1, alpha, beta, domain.Human)
			b.Undo(col)

			maxEval = max(maxEval, eval)
			if s.prune {
				alpha = max(alpha, eval)
				if beta <= alpha {
					s.stats.Cutoffs++
					break
				}
			}
		}
		return maxEval
	}

	minEval := math.MaxInt
	for col := 0; col < b.Columns(); col++ {
		if !b.Place(col, toMove) {
			continue
		}
		eval := s.minimax(depth-1, alpha, beta, domain.Computer)
		b.Undo(col)

		minEval = min(minEval, eval)
		if s.prune {
			beta = min(beta, eval)
			if beta <= alpha {
				s.stats.Cutoffs++
				break
			}
		}
	}
	return minEval
}

// terminal scores decided positions regardless of the remaining depth.
func (s *searcher) terminal(depth int) (int, bool) {
	switch {
	case s.board.HasLine(domain.Computer):
		return WinScore + depth, true
	case s.board.HasLine(domain.Human):
		return -(WinScore + depth), true
	case s.board.IsFull():
		return DrawScore, true
	}
	return 0, false
}

// leaf scores a position at the depth horizon. With the heuristic on, a
// side to move that can complete a line next ply counts as winning one ply
// past the horizon, still below any win found inside it.
func (s *searcher) leaf(toMove domain.Side) int {
	if !s.heuristic {
		return NeutralScore
	}
	for col := 0; col < s.board.Columns(); col++ {
		if !s.winsWith(col, toMove) {
			continue
		}
		if toMove == domain.Computer {
			return WinScore - 1
		}
		return -(WinScore - 1)
	}
	return evaluateBoard(s.board)
}

// winsWith reports whether dropping side into col completes a line.
func (s *searcher) winsWith(col int, side domain.Side) bool {
	if !s.board.Place(col, side) {
		return false
	}
	won := s.board.HasLine(side)
	s.board.Undo(col)
	return won
}
