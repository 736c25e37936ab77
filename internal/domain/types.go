package domain

import "fmt"

// Side tags who owns a cell. Empty doubles as "nobody".
type Side int8

const (
	Empty    Side = 0
	Human    Side = 1
	Computer Side = 2
)

func (s Side) Opponent() Side {
	switch s {
	case Human:
		return Computer
	case Computer:
		return Human
	}
	return Empty
}

func (s Side) String() string {
	switch s {
	case Human:
		return "human"
	case Computer:
		return "computer"
	}
	return "empty"
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Coord addresses a cell; Row 0 is the bottom of the board
type Coord struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Column, c.Row)
}

// MoveResult is what the presentation layer gets back for a human drop.
type MoveResult string

const (
	Accepted   MoveResult = "accepted"
	ColumnFull MoveResult = "column_full"
)

// to represent the outcome of the position on the board
type OutcomeKind string

const (
	InProgress OutcomeKind = "in_progress"
	Win        OutcomeKind = "win"
	Draw       OutcomeKind = "draw"
)

type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner Side        `json:"winner,omitempty"`
}

func (o Outcome) IsTerminal() bool {
	return o.Kind != InProgress
}

func (o Outcome) String() string {
	if o.Kind == Win {
		return fmt.Sprintf("win(%s)", o.Winner)
	}
	return string(o.Kind)
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn    Error = "invalid column"
	ErrColumnFull       Error = "column is full"
	ErrGameOver         Error = "game is over"
	ErrNoLegalMove      Error = "no legal move available"
	ErrInvalidBoardSize Error = "invalid board size"
)
