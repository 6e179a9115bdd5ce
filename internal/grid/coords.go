package grid

// ToRowCol converts a linear cell index into its row and column.
func ToRowCol(index, dim int) (row, col int) {
	return index / dim, index % dim
}

// ToIndex converts a row and column into a linear cell index.
func ToIndex(row, col, dim int) int {
	return row*dim + col
}

// InBounds reports whether (row, col) lies inside a dim×dim grid.
func InBounds(row, col, dim int) bool {
	return row >= 0 && row < dim && col >= 0 && col < dim
}

// Offset is the shift applied to both axes when a pattern moves from a
// grid of oldDim to one of newDim. It is half the size difference rounded
// toward zero, so growing by d and shrinking by d cancel out.
func Offset(oldDim, newDim int) int {
	return (newDim - oldDim) / 2
}

// Remap centers cells from an oldDim grid inside a newDim grid. Cells that
// land outside the new grid are dropped. The input set is not modified.
func Remap(cells CellSet, oldDim, newDim int) CellSet {
	out := make(CellSet, len(cells))
	delta := Offset(oldDim, newDim)
	for index := range cells {
		row, col := ToRowCol(index, oldDim)
		row += delta
		col += delta
		if !InBounds(row, col, newDim) {
			continue
		}
		out.Add(ToIndex(row, col, newDim))
	}
	return out
}

// WillLoseData reports whether shrinking from oldDim to newDim would drop
// at least one active cell.
func WillLoseData(cells CellSet, oldDim, newDim int) bool {
	if newDim >= oldDim {
		return false
	}
	delta := Offset(oldDim, newDim)
	for index := range cells {
		row, col := ToRowCol(index, oldDim)
		if !InBounds(row+delta, col+delta, newDim) {
			return true
		}
	}
	return false
}

// Path returns the cells on the straight line from one cell to another,
// both ends included, in travel order.
func Path(from, to, dim int) []int {
	r0, c0 := ToRowCol(from, dim)
	r1, c1 := ToRowCol(to, dim)

	dr := abs(r1 - r0)
	dc := abs(c1 - c0)
	sr, sc := 1, 1
	if r1 < r0 {
		sr = -1
	}
	if c1 < c0 {
		sc = -1
	}

	cells := make([]int, 0, max(dr, dc)+1)
	e := dc - dr
	for {
		cells = append(cells, ToIndex(r0, c0, dim))
		if r0 == r1 && c0 == c1 {
			return cells
		}
		e2 := 2 * e
		if e2 > -dr {
			e -= dr
			c0 += sc
		}
		if e2 < dc {
			e += dc
			r0 += sr
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
