package floodfill

// Field is a solved distance grid.
type Field struct {
	dist   [][]int
	wall   int
	noWall int
}

// Field runs a flood from start and wraps the result.
func (f *FloodFill) Field(start Cell) *Field {
	return &Field{dist: f.Solve(start), wall: f.wall, noWall: f.noWall}
}

// Distance returns the hop count from the start to (row, col). The start
// itself is 0. ok is false for walls, unreachable cells and out-of-range
// coordinates.
func (f *Field) Distance(row, col int) (hops int, ok bool) {
	if row < 0 || row >= len(f.dist) || col < 0 || col >= len(f.dist[row]) {
		return 0, false
	}
	v := f.dist[row][col]
	if v == f.wall || v == f.noWall || v < 1 {
		return 0, false
	}
	return v - 1, true
}

// Grid returns the labelled grid. Callers must not modify it.
func (f *Field) Grid() [][]int {
	return f.dist
}

// Max returns the largest label in the grid, or 0 if nothing was reached.
func (f *Field) Max() int {
	m := 0
	for _, row := range f.dist {
		for _, v := range row {
			if v > m {
				m = v
			}
		}
	}
	return m
}
