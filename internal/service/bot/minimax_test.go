package bot

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/iamasit07/connect4-vs-ai/internal/domain"
)

func mustParse(t *testing.T, lines ...string) *domain.Board {
	t.Helper()
	b, err := domain.ParseBoard(domain.ToWin, lines...)
	require.NoError(t, err)
	return b
}

// randomPositions plays random games and keeps undecided positions.
func randomPositions(seed uint64, count int) []*domain.Board {
	rng := rand.New(rand.NewSource(seed))
	var boards []*domain.Board

	for len(boards) < count {
		b := domain.NewStandardBoard()
		side := domain.Human
		plies := rng.Intn(20)
		for i := 0; i < plies && !b.Outcome().IsTerminal(); i++ {
			legal := b.LegalColumns()
			b.Place(legal[rng.Intn(len(legal))], side)
			side = side.Opponent()
		}
		if !b.Outcome().IsTerminal() {
			boards = append(boards, b)
		}
	}
	return boards
}

func TestBestMoveRestoresBoard(t *testing.T) {
	for i, b := range randomPositions(3, 25) {
		before := b.Clone()
		_, err := NewMinimax(4, i%2 == 0).BestMove(b)
		require.NoError(t, err)
		require.True(t, before.Equal(b), "search must leave the board untouched\n%s", b)
	}
}

func TestBestMoveTakesImmediateWin(t *testing.T) {
	// the computer completes its own column rather than blocking the human row
	b := mustParse(t,
		".......",
		".......",
		".......",
		".....O.",
		".....O.",
		"XXX..O.",
	)

	for depth := 0; depth <= 6; depth++ {
		col, err := NewMinimax(depth, false).BestMove(b)
		require.NoError(t, err)
		require.Equal(t, 5, col, "depth %d", depth)
	}
}

func TestBestMoveBlocksSingleThreat(t *testing.T) {
	b := mustParse(t,
		".......",
		".......",
		".......",
		".......",
		"......O",
		"XXX...O",
	)

	for depth := 1; depth <= 6; depth++ {
		for _, heuristic := range []bool{false, true} {
			col, err := NewMinimax(depth, heuristic).BestMove(b)
			require.NoError(t, err)
			require.Equal(t, 3, col, "depth %d heuristic %t", depth, heuristic)
		}
	}
}

func TestBestMoveBlocksOpenThree(t *testing.T) {
	// both ends of the human row are open; the loss cannot be avoided, so
	// every column scores the same and the block has to come from the tie-break
	tests := []struct {
		name   string
		bottom string
		blocks []int
	}{
		{name: "centered", bottom: "..XXX..", blocks: []int{1, 5}},
		{name: "right of center", bottom: "...XXX.", blocks: []int{2, 6}},
		{name: "off center with a computer token", bottom: "O..XXX.", blocks: []int{2, 6}},
		{name: "left edge", bottom: ".XXX..O", blocks: []int{0, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t,
				".......",
				".......",
				".......",
				".......",
				".......",
				tt.bottom,
			)
			for depth := 1; depth <= 6; depth++ {
				for _, heuristic := range []bool{false, true} {
					before := b.Clone()
					col, err := NewMinimax(depth, heuristic).BestMove(b)
					require.NoError(t, err)
					require.Contains(t, tt.blocks, col, "depth %d heuristic %t", depth, heuristic)
					require.True(t, before.Equal(b))
				}
			}
		})
	}
}

func TestLeafSeesThreatPastHorizon(t *testing.T) {
	b := mustParse(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"XXX.OO.",
	)

	s := &searcher{board: b, heuristic: true}
	require.Equal(t, -(WinScore - 1), s.leaf(domain.Human))
	require.LessOrEqual(t, s.leaf(domain.Computer), HeuristicCap)

	s.heuristic = false
	require.Equal(t, NeutralScore, s.leaf(domain.Human))
}

func TestBestMovePrefersFasterWin(t *testing.T) {
	// column 3 wins now; other columns may still win later
	b := mustParse(t,
		".......",
		".......",
		".......",
		"...O...",
		"...O...",
		"XX.OXX.",
	)

	col, err := NewMinimax(5, false).BestMove(b)
	require.NoError(t, err)
	require.Equal(t, 3, col)
}

func TestBestMoveDefaultsToFirstLegalColumn(t *testing.T) {
	b := domain.NewStandardBoard()
	for i := 0; i < b.Rows(); i++ {
		b.Place(0, domain.Side(i%2+1))
	}

	// nothing decided within reach: every score ties
	col, err := NewMinimax(1, false).BestMove(b)
	require.NoError(t, err)
	require.Equal(t, 1, col)

	col, err = NewMinimax(0, false).BestMove(b)
	require.NoError(t, err)
	require.Equal(t, 1, col)
}

func TestBestMovePreconditions(t *testing.T) {
	t.Run("decided board", func(t *testing.T) {
		b := mustParse(t,
			".......",
			".......",
			"X......",
			"X......",
			"XO.....",
			"XOO....",
		)
		col, err := NewMinimax(4, false).BestMove(b)
		require.ErrorIs(t, err, domain.ErrGameOver)
		require.Equal(t, -1, col)
	})

	t.Run("full board", func(t *testing.T) {
		b := mustParse(t,
			"XXOOXXO",
			"OOXXOOX",
			"XXOOXXO",
			"OOXXOOX",
			"XXOOXXO",
			"OOXXOOX",
		)
		col, err := NewMinimax(4, false).BestMove(b)
		require.ErrorIs(t, err, domain.ErrNoLegalMove)
		require.Equal(t, -1, col)
	})
}

// fullMinimax is the same search with pruning switched off.
func fullMinimax(b *domain.Board, depth int, heuristic bool) (int, Stats) {
	s := &searcher{board: b, heuristic: heuristic, prune: false}
	col := s.root(depth)
	return col, s.stats
}

func TestAlphaBetaMatchesFullMinimax(t *testing.T) {
	for i, b := range randomPositions(11, 30) {
		for depth := 1; depth <= 4; depth++ {
			for _, heuristic := range []bool{false, true} {
				want, fullStats := fullMinimax(b, depth, heuristic)

				got, stats, err := NewMinimax(depth, heuristic).Search(b)
				require.NoError(t, err)
				require.Equal(t, want, got, "position %d depth %d heuristic %t\n%s", i, depth, heuristic, b)
				require.LessOrEqual(t, stats.Nodes, fullStats.Nodes)
			}
		}
	}
}

func TestAlphaBetaPrunes(t *testing.T) {
	b := domain.NewStandardBoard()

	_, full := fullMinimax(b, 5, false)
	_, pruned, err := NewMinimax(5, false).Search(b)
	require.NoError(t, err)

	require.Less(t, pruned.Nodes, full.Nodes)
	require.Positive(t, pruned.Cutoffs)
	require.Zero(t, full.Cutoffs)
}

func TestTerminalScores(t *testing.T) {
	t.Run("computer line", func(t *testing.T) {
		b := mustParse(t,
			".......",
			".......",
			"O......",
			"O......",
			"OX.....",
			"OXX....",
		)
		s := &searcher{board: b}
		score, done := s.terminal(3)
		require.True(t, done)
		require.Equal(t, WinScore+3, score)
	})

	t.Run("human line", func(t *testing.T) {
		b := mustParse(t,
			".......",
			".......",
			".......",
			".......",
			"OOO....",
			"XXXX...",
		)
		s := &searcher{board: b}
		score, done := s.terminal(2)
		require.True(t, done)
		require.Equal(t, -(WinScore + 2), score)
	})

	t.Run("draw sits between win and loss", func(t *testing.T) {
		require.Less(t, -WinScore, DrawScore)
		require.Greater(t, WinScore, DrawScore)
		require.Less(t, HeuristicCap, WinScore)
	})
}
