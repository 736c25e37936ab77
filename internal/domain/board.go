package domain

import (
	"fmt"
	"strings"
)

// Board is a column-major grid of cells that fills from the bottom.
// heights[c] is the number of tokens stacked in column c, so the most
// recently placed token of a column always sits at row heights[c]-1.
type Board struct {
	columns   int
	rows      int
	runLength int
	cells     []Side
	heights   []int
	moves     int
}

func NewBoard(columns, rows, runLength int) (*Board, error) {
	if columns < 1 || rows < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoardSize, columns, rows)
	}
	if runLength < 2 || (runLength > columns && runLength > rows) {
		return nil, fmt.Errorf("%w: run of %d on %dx%d", ErrInvalidBoardSize, runLength, columns, rows)
	}

	return &Board{
		columns:   columns,
		rows:      rows,
		runLength: runLength,
		cells:     make([]Side, columns*rows),
		heights:   make([]int, columns),
	}, nil
}

// NewStandardBoard returns the classic 7x6 board with a winning run of four.
func NewStandardBoard() *Board {
	b, _ := NewBoard(Columns, Rows, ToWin)
	return b
}

func (b *Board) Columns() int   { return b.columns }
func (b *Board) Rows() int      { return b.rows }
func (b *Board) RunLength() int { return b.runLength }
func (b *Board) MoveCount() int { return b.moves }

func (b *Board) inBounds(column, row int) bool {
	return column >= 0 && column < b.columns && row >= 0 && row < b.rows
}

func (b *Board) index(column, row int) int {
	return column*b.rows + row
}

// Cell returns the owner of (column, row), Empty when out of range.
func (b *Board) Cell(column, row int) Side {
	if !b.inBounds(column, row) {
		return Empty
	}
	return b.cells[b.index(column, row)]
}

// Height is the number of tokens in a column.
func (b *Board) Height(column int) int {
	if column < 0 || column >= b.columns {
		return 0
	}
	return b.heights[column]
}

func (b *Board) IsValidMove(column int) bool {
	if column < 0 || column >= b.columns {
		return false
	}
	return b.heights[column] < b.rows
}

// Place drops a token for side into column. It reports false and leaves the
// board untouched when the column is out of range or already full.
func (b *Board) Place(column int, side Side) bool {
	if side == Empty || !b.IsValidMove(column) {
		return false
	}

	row := b.heights[column]
	b.cells[b.index(column, row)] = side
	b.heights[column]++
	b.moves++
	return true
}

// Undo takes back the last token placed in column; an empty column is left alone.
func (b *Board) Undo(column int) {
	if column < 0 || column >= b.columns || b.heights[column] == 0 {
		return
	}

	b.heights[column]--
	b.cells[b.index(column, b.heights[column])] = Empty
	b.moves--
}

// LegalColumns lists playable columns in ascending order.
func (b *Board) LegalColumns() []int {
	legal := make([]int, 0, b.columns)
	for c := 0; c < b.columns; c++ {
		if b.heights[c] < b.rows {
			legal = append(legal, c)
		}
	}
	return legal
}

func (b *Board) IsFull() bool {
	for c := 0; c < b.columns; c++ {
		if b.heights[c] < b.rows {
			return false
		}
	}
	return true
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	nb := *b
	nb.cells = append([]Side(nil), b.cells...)
	nb.heights = append([]int(nil), b.heights...)
	return &nb
}

// Equal compares dimensions and every cell.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.columns != other.columns || b.rows != other.rows || b.runLength != other.runLength {
		return false
	}
	if b.moves != other.moves {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	for i := range b.heights {
		if b.heights[i] != other.heights[i] {
			return false
		}
	}
	return true
}

// Grid renders the board row-major with the top row first, the way clients draw it.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.rows)
	for i := range grid {
		row := b.rows - 1 - i
		grid[i] = make([]int, b.columns)
		for c := 0; c < b.columns; c++ {
			grid[i][c] = int(b.cells[b.index(c, row)])
		}
	}
	return grid
}

func (b *Board) String() string {
	buf := make([]byte, 0, (b.columns+1)*b.rows)
	for r := b.rows - 1; r >= 0; r-- {
		for c := 0; c < b.columns; c++ {
			switch b.cells[b.index(c, r)] {
			case Human:
				buf = append(buf, 'X')
			case Computer:
				buf = append(buf, 'O')
			default:
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// ParseBoard is the inverse of String: one line per row, top row first, with
// X for Human, O for Computer and '.' for empty. Tokens are dropped column by
// column from the bottom, so a floating token is rejected.
func ParseBoard(runLength int, lines ...string) (*Board, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidBoardSize)
	}
	columns := len(strings.TrimSpace(lines[0]))
	b, err := NewBoard(columns, len(lines), runLength)
	if err != nil {
		return nil, err
	}

	for i, line := range lines {
		if len(strings.TrimSpace(line)) != columns {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoardSize, i, len(strings.TrimSpace(line)), columns)
		}
	}

	for c := 0; c < columns; c++ {
		for r := 0; r < b.rows; r++ {
			var side Side
			cell := strings.TrimSpace(lines[b.rows-1-r])[c]
			switch cell {
			case 'X':
				side = Human
			case 'O':
				side = Computer
			case '.':
				continue
			default:
				return nil, fmt.Errorf("unknown cell %q at (%d,%d)", cell, c, r)
			}
			if b.heights[c] != r {
				return nil, fmt.Errorf("floating token at (%d,%d)", c, r)
			}
			b.Place(c, side)
		}
	}
	return b, nil
}
