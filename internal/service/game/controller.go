package game

import (
	"fmt"

	"github.com/iamasit07/connect4-vs-ai/internal/domain"
	"github.com/iamasit07/connect4-vs-ai/internal/service/bot"
)

type State string

const (
	StatePlaying State = "playing"
	StateEnded   State = "ended"
)

// MoveReport describes what one human move request did to the game.
type MoveReport struct {
	Result         domain.MoveResult `json:"result"`
	HumanColumn    int               `json:"human_column"`
	ComputerColumn int               `json:"computer_column"`
	Outcome        domain.Outcome    `json:"outcome"`
	WinningCells   []domain.Coord    `json:"winning_cells,omitempty"`
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	Board        [][]int        `json:"board"`
	Columns      int            `json:"columns"`
	Rows         int            `json:"rows"`
	State        State          `json:"state"`
	Outcome      domain.Outcome `json:"outcome"`
	Cursor       int            `json:"cursor"`
	LegalColumns []int          `json:"legal_columns"`
	WinningCells []domain.Coord `json:"winning_cells,omitempty"`
	Tally        domain.Tally   `json:"tally"`
}

// Controller sequences one human-vs-computer game at a time and keeps the
// running tally between games. It is not safe for concurrent use.
type Controller struct {
	svc       *Service
	columns   int
	rows      int
	board     *domain.Board
	tally     domain.Tally
	ended     bool
	cursor    int
	highlight []domain.Coord
}

func NewController(columns, rows, runLength int, player bot.Player) (*Controller, error) {
	svc := NewService(player)
	svc.RunLength = runLength

	board, err := svc.NewGame(columns, rows)
	if err != nil {
		return nil, err
	}

	return &Controller{
		svc:     svc,
		columns: columns,
		rows:    rows,
		board:   board,
		cursor:  columns / 2,
	}, nil
}

func (c *Controller) State() State {
	if c.ended {
		return StateEnded
	}
	return StatePlaying
}

// Board gives read access to the live board; callers must not mutate it.
func (c *Controller) Board() *domain.Board { return c.board }
func (c *Controller) Tally() domain.Tally  { return c.tally }
func (c *Controller) Cursor() int          { return c.cursor }

// SetTally seeds the running tally, e.g. from a cache.
func (c *Controller) SetTally(t domain.Tally) { c.tally = t }

// Play runs the full turn: human drop, victory check, computer reply, victory/draw check.
func (c *Controller) Play(column int) (MoveReport, error) {
	report := MoveReport{HumanColumn: column, ComputerColumn: -1}

	if c.ended {
		report.Outcome = c.svc.Outcome(c.board)
		return report, domain.ErrGameOver
	}

	report.Result = c.svc.ApplyHumanMove(c.board, column)
	if report.Result == domain.ColumnFull {
		report.Outcome = domain.Outcome{Kind: domain.InProgress}
		if column < 0 || column >= c.columns {
			return report, domain.ErrInvalidColumn
		}
		return report, domain.ErrColumnFull
	}

	if outcome := c.svc.Outcome(c.board); outcome.IsTerminal() {
		c.finish(&report, outcome)
		return report, nil
	}

	// a failed reply takes the human token back so the turn is all or nothing
	aiColumn, err := c.svc.ComputeAIMove(c.board)
	if err != nil {
		c.board.Undo(column)
		return report, fmt.Errorf("computer move: %w", err)
	}
	if !c.board.Place(aiColumn, domain.Computer) {
		c.board.Undo(column)
		return report, fmt.Errorf("computer move %d: %w", aiColumn, domain.ErrColumnFull)
	}
	report.ComputerColumn = aiColumn

	outcome := c.svc.Outcome(c.board)
	if outcome.IsTerminal() {
		c.finish(&report, outcome)
		return report, nil
	}

	report.Outcome = outcome
	return report, nil
}

func (c *Controller) finish(report *MoveReport, outcome domain.Outcome) {
	c.ended = true
	c.tally.Record(outcome)
	if outcome.Kind == domain.Win {
		c.highlight = c.svc.WinningCells(c.board, outcome.Winner)
	}
	report.Outcome = outcome
	report.WinningCells = c.highlight
}

// DropAtCursor plays the column under the cursor.
func (c *Controller) DropAtCursor() (MoveReport, error) {
	return c.Play(c.cursor)
}

// MoveCursor shifts the drop cursor, wrapping at both edges. Ignored once the game ended.
func (c *Controller) MoveCursor(delta int) int {
	if c.ended {
		return c.cursor
	}
	c.cursor = ((c.cursor+delta)%c.columns + c.columns) % c.columns
	return c.cursor
}

// Reset starts a new game on a fresh board. The tally is kept.
func (c *Controller) Reset() error {
	board, err := c.svc.NewGame(c.columns, c.rows)
	if err != nil {
		return err
	}

	c.board = board
	c.ended = false
	c.highlight = nil
	c.cursor = c.columns / 2
	return nil
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Board:        c.board.Grid(),
		Columns:      c.columns,
		Rows:         c.rows,
		State:        c.State(),
		Outcome:      c.svc.Outcome(c.board),
		Cursor:       c.cursor,
		LegalColumns: c.svc.LegalColumns(c.board),
		WinningCells: c.highlight,
		Tally:        c.tally,
	}
}
