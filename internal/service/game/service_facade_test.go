package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-vs-ai/internal/domain"
	"github.com/iamasit07/connect4-vs-ai/internal/service/bot"
)

func TestServiceImmediateWin(t *testing.T) {
	svc := NewService(bot.NewMinimax(2, false))
	b, err := svc.NewGame(7, 6)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.Equal(t, domain.Accepted, svc.ApplyHumanMove(b, 0))
		require.Equal(t, domain.Outcome{Kind: domain.InProgress}, svc.Outcome(b))
	}
	require.Equal(t, domain.Accepted, svc.ApplyHumanMove(b, 0))

	require.Equal(t, domain.Outcome{Kind: domain.Win, Winner: domain.Human}, svc.Outcome(b))
	require.Equal(t, []domain.Coord{{Column: 0, Row: 0}, {Column: 0, Row: 1}, {Column: 0, Row: 2}, {Column: 0, Row: 3}}, svc.WinningCells(b, domain.Human))
	require.Nil(t, svc.WinningCells(b, domain.Computer))
}

func TestServiceColumnFull(t *testing.T) {
	svc := NewService(bot.NewMinimax(2, false))
	b, err := svc.NewGame(7, 6)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		require.Equal(t, domain.Accepted, svc.ApplyHumanMove(b, 3))
	}
	before := b.Clone()

	require.Equal(t, domain.ColumnFull, svc.ApplyHumanMove(b, 3))
	require.True(t, before.Equal(b))
	require.Equal(t, []int{0, 1, 2, 4, 5, 6}, svc.LegalColumns(b))
	require.False(t, svc.IsFull(b))
}

func TestServiceComputeAIMove(t *testing.T) {
	svc := NewService(bot.NewMinimax(3, false))
	b, err := domain.ParseBoard(domain.ToWin,
		".......",
		".......",
		".......",
		".......",
		"......O",
		"XXX...O",
	)
	require.NoError(t, err)

	col, err := svc.ComputeAIMove(b)
	require.NoError(t, err)
	require.Equal(t, 3, col)

	require.Equal(t, domain.Accepted, svc.ApplyHumanMove(b, 3))
	_, err = svc.ComputeAIMove(b)
	require.ErrorIs(t, err, domain.ErrGameOver)
}

func TestServiceCustomSize(t *testing.T) {
	svc := NewService(bot.NewRandom(1))
	b, err := svc.NewGame(9, 7)
	require.NoError(t, err)
	require.Equal(t, 9, b.Columns())
	require.Equal(t, 7, b.Rows())
	require.Len(t, svc.LegalColumns(b), 9)

	_, err = svc.NewGame(2, 2)
	require.ErrorIs(t, err, domain.ErrInvalidBoardSize)
}
