// Package floodfill computes 4-connected grid distances from a start cell.
//
// Solve labels every free cell reachable from the start with its hop count
// plus one, so the start is 1 and its open neighbours are 2. Walls and
// unreachable free cells keep their original labels.
package floodfill

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// Default labels used by world.World.Labels.
const (
	Wall   = -1
	NoWall = 0
)

// Cell is a (row, col) grid coordinate.
type Cell struct {
	Row, Col int
}

// FloodFill holds a private copy of a label grid.
type FloodFill struct {
	mat      [][]int
	gridSize int
	wall     int
	noWall   int
}

// New copies mat. The grid side length is the width of the first row.
// It panics if mat is empty.
func New(mat [][]int, wall, noWall int) *FloodFill {
	if len(mat) == 0 {
		panic("floodfill: empty matrix")
	}
	cp := make([][]int, len(mat))
	for i, row := range mat {
		cp[i] = append([]int(nil), row...)
	}
	return &FloodFill{
		mat:      cp,
		gridSize: len(mat[0]),
		wall:     wall,
		noWall:   noWall,
	}
}

// GridSize returns the side length used for bounds checks.
func (f *FloodFill) GridSize() int {
	return f.gridSize
}

func (f *FloodFill) inBounds(r, c int) bool {
	return r >= 0 && c >= 0 && r < f.gridSize && c < f.gridSize && r < len(f.mat) && c < len(f.mat[r])
}

func (f *FloodFill) id(r, c int) int64 {
	return int64(r*f.gridSize + c)
}

// Solve floods from start and returns the labelled grid. The start cell is
// always labelled 1, even if it does not carry the no-wall label. The
// receiver's matrix is not modified, so Solve may be called repeatedly.
func (f *FloodFill) Solve(start Cell) [][]int {
	out := make([][]int, len(f.mat))
	for i, row := range f.mat {
		out[i] = append([]int(nil), row...)
	}
	if !f.inBounds(start.Row, start.Col) {
		return out
	}

	g := simple.NewUndirectedGraph()
	startID := f.id(start.Row, start.Col)
	g.AddNode(simple.Node(startID))

	open := func(r, c int) bool {
		if !f.inBounds(r, c) {
			return false
		}
		return f.mat[r][c] == f.noWall || (r == start.Row && c == start.Col)
	}

	for r := 0; r < len(f.mat); r++ {
		for c := 0; c < len(f.mat[r]); c++ {
			if !open(r, c) {
				continue
			}
			if g.Node(f.id(r, c)) == nil {
				g.AddNode(simple.Node(f.id(r, c)))
			}
			// Right and down neighbours cover every edge once.
			for _, n := range [2]Cell{{r, c + 1}, {r + 1, c}} {
				if !open(n.Row, n.Col) {
					continue
				}
				g.SetEdge(simple.Edge{F: simple.Node(f.id(r, c)), T: simple.Node(f.id(n.Row, n.Col))})
			}
		}
	}

	var bfs traverse.BreadthFirst
	bfs.Walk(g, simple.Node(startID), func(n graph.Node, depth int) bool {
		id := int(n.ID())
		out[id/f.gridSize][id%f.gridSize] = depth + 1
		return false
	})
	return out
}
