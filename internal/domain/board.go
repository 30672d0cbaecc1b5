package domain

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// String returns the mark as displayed, or "" for an empty cell.
func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Board is a fixed 3x3 board stored row-major.
type Board [9]Cell

// Count returns how many cells hold c.
func (b Board) Count(c Cell) int {
	n := 0
	for _, v := range b {
		if v == c {
			n++
		}
	}
	return n
}

// Lines lists every winning line in scan order: rows, columns, diagonals.
var Lines = [8][3]int{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// firstLine returns the index into Lines of the first uniformly marked line, or -1.
func firstLine(b Board) int {
	for i, ln := range Lines {
		a := b[ln[0]]
		if a != Empty && a == b[ln[1]] && a == b[ln[2]] {
			return i
		}
	}
	return -1
}

// Winner returns the mark owning a complete line, or Empty.
func Winner(b Board) Cell {
	i := firstLine(b)
	if i < 0 {
		return Empty
	}
	return b[Lines[i][0]]
}

// WinningCells marks the cells of the first complete line found.
// When several lines are complete only the first in scan order is marked.
func WinningCells(b Board) [9]bool {
	var out [9]bool
	i := firstLine(b)
	if i < 0 {
		return out
	}
	for _, idx := range Lines[i] {
		out[idx] = true
	}
	return out
}
