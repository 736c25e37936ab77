package game

import (
	"github.com/iamasit07/connect4-vs-ai/internal/domain"
	"github.com/iamasit07/connect4-vs-ai/internal/service/bot"
)

// Service is the entry point the presentation layer calls into (facade)
type Service struct {
	Player    bot.Player
	RunLength int
}

func NewService(player bot.Player) *Service {
	return &Service{
		Player:    player,
		RunLength: domain.ToWin,
	}
}

// NewGame returns a fresh empty board.
func (s *Service) NewGame(columns, rows int) (*domain.Board, error) {
	return domain.NewBoard(columns, rows, s.RunLength)
}

func (s *Service) ApplyHumanMove(board *domain.Board, column int) domain.MoveResult {
	if !board.Place(column, domain.Human) {
		return domain.ColumnFull
	}
	return domain.Accepted
}

func (s *Service) Outcome(board *domain.Board) domain.Outcome {
	return board.Outcome()
}

// ComputeAIMove expects an undecided board with at least one legal column.
func (s *Service) ComputeAIMove(board *domain.Board) (int, error) {
	return s.Player.BestMove(board)
}

func (s *Service) WinningCells(board *domain.Board, side domain.Side) []domain.Coord {
	return board.WinningCells(side)
}

func (s *Service) LegalColumns(board *domain.Board) []int {
	return board.LegalColumns()
}

func (s *Service) IsFull(board *domain.Board) bool {
	return board.IsFull()
}
