package domain

// scan directions, in the order lines are tried from each cell:
// horizontal, vertical, diagonal up-right, diagonal up-left
var directions = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{-1, 1},
}

// HasLine reports whether side owns runLength consecutive cells in any direction.
func (b *Board) HasLine(side Side) bool {
	return b.findLine(side) != nil
}

// WinningCells returns the first qualifying run for side, nil if there is none.
// Only the first run in scan order is returned; it is meant for highlighting.
func (b *Board) WinningCells(side Side) []Coord {
	return b.findLine(side)
}

// findLine scans rows bottom to top and columns left to right, probing only
// directions that move away from cells already visited so no line is
// checked twice from its other end.
func (b *Board) findLine(side Side) []Coord {
	if side == Empty {
		return nil
	}

	n := b.runLength
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.columns; c++ {
			if b.cells[b.index(c, r)] != side {
				continue
			}
			for _, dir := range directions {
				endC := c + dir[0]*(n-1)
				endR := r + dir[1]*(n-1)
				if !b.inBounds(endC, endR) {
					continue
				}

				k := 1
				for ; k < n; k++ {
					if b.cells[b.index(c+dir[0]*k, r+dir[1]*k)] != side {
						break
					}
				}
				if k == n {
					line := make([]Coord, n)
					for i := range line {
						line[i] = Coord{Column: c + dir[0]*i, Row: r + dir[1]*i}
					}
					return line
				}
			}
		}
	}
	return nil
}

// Outcome derives the game result from the cells. It is never cached.
func (b *Board) Outcome() Outcome {
	if b.HasLine(Human) {
		return Outcome{Kind: Win, Winner: Human}
	}
	if b.HasLine(Computer) {
		return Outcome{Kind: Win, Winner: Computer}
	}
	if b.IsFull() {
		return Outcome{Kind: Draw}
	}
	return Outcome{Kind: InProgress}
}

// this counts the number of disks in a specific direction
func (b *Board) CountInDirection(column, row, dCol, dRow int, side Side) int {
	count := 0
	c, r := column+dCol, row+dRow
	for b.inBounds(c, r) && b.cells[b.index(c, r)] == side {
		count++
		c += dCol
		r += dRow
	}
	return count
}
