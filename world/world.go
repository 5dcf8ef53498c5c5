// Package world holds the obstacle grid rockets fly through.
//
// World coordinates are centred on the window with +Y up, spanning
// (-half, half) on both axes. Grid coordinates are (row, col) with row 0 at
// the top. Two conversions exist and they intentionally differ: collision
// lookups divide by a fixed cell size (grid.cell_pixels), while drawing uses
// screen/gridSize. They agree only when the map is screen/cell_pixels wide.
package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pthm-cable/rockets/config"
	"github.com/pthm-cable/rockets/floodfill"
	"github.com/pthm-cable/rockets/vecmath"
)

// ErrEmptyMap is returned when a map source contains no rows.
var ErrEmptyMap = errors.New("map has no rows")

// GridPos is a (row, col) grid coordinate.
type GridPos struct {
	Row, Col int
}

// Target is the goal circle.
type Target struct {
	Pos    vecmath.Vec2
	Radius float32
}

// Rect is an axis-aligned rectangle in world units. X, Y is the top-left
// corner (largest Y), W and H extend right and down.
type Rect struct {
	X, Y, W, H float32
}

// World is the static obstacle map plus the target.
type World struct {
	walls      map[GridPos]struct{}
	rows       int
	gridSize   int
	half       float32
	cellPixels float32
	blockSize  float32
	target     Target
}

// LoadFile reads a map file. A missing or unreadable file is an error the
// caller should treat as fatal.
func LoadFile(path string, cfg *config.Config) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening map: %w", err)
	}
	defer f.Close()

	w, err := Load(f, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading map %s: %w", path, err)
	}
	return w, nil
}

// Load parses a map. Each line is a grid row; every character other than
// '1' is an obstacle. The grid side length is the length of the first row.
// Rows are not checked for equal length.
func Load(r io.Reader, cfg *config.Config) (*World, error) {
	walls := make(map[GridPos]struct{})
	gridSize := -1
	rows := 0

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for row, line := range lines {
		if gridSize < 0 {
			gridSize = len(line)
		}
		for col, ch := range []byte(line) {
			if ch != '1' {
				walls[GridPos{Row: row, Col: col}] = struct{}{}
			}
		}
		rows++
	}
	if rows == 0 || gridSize <= 0 {
		return nil, ErrEmptyMap
	}

	d := cfg.Derived
	return &World{
		walls:      walls,
		rows:       rows,
		gridSize:   gridSize,
		half:       d.HalfScreen,
		cellPixels: float32(cfg.Grid.CellPixels),
		blockSize:  d.Screen32 / float32(gridSize),
		target: Target{
			Pos:    vecmath.Vec2{X: d.TargetX32, Y: d.TargetY32},
			Radius: d.TargetR32,
		},
	}, nil
}

// GridSize returns the side length taken from the first row.
func (w *World) GridSize() int { return w.gridSize }

// Rows returns the number of rows read.
func (w *World) Rows() int { return w.rows }

// BlockSize returns the drawn side length of one grid cell.
func (w *World) BlockSize() float32 { return w.blockSize }

// CellPixels returns the collision lookup divisor.
func (w *World) CellPixels() float32 { return w.cellPixels }

// Half returns half the window side length.
func (w *World) Half() float32 { return w.half }

// Target returns the goal circle.
func (w *World) Target() Target { return w.target }

// WallCount returns the number of obstacle cells.
func (w *World) WallCount() int { return len(w.walls) }

// IsWallGrid reports whether (row, col) holds an obstacle.
func (w *World) IsWallGrid(row, col int) bool {
	_, ok := w.walls[GridPos{Row: row, Col: col}]
	return ok
}

// IsWallWorld reports whether p collides. Points on or beyond the window
// edge always collide.
func (w *World) IsWallWorld(p vecmath.Vec2) bool {
	if p.X <= -w.half || p.X >= w.half || p.Y <= -w.half || p.Y >= w.half {
		return true
	}
	col, row := w.WindowToGrid(p)
	return w.IsWallGrid(row, col)
}

// WindowToGrid converts a world position to (col, row) using the fixed
// collision cell size.
func (w *World) WindowToGrid(p vecmath.Vec2) (col, row int) {
	x := abs32(p.X + w.half)
	y := abs32(p.Y - w.half)
	return int(x / w.cellPixels), int(y / w.cellPixels)
}

// CellRect returns the drawn rectangle of grid cell (row, col).
func (w *World) CellRect(row, col int) Rect {
	return Rect{
		X: -w.half + float32(col)*w.blockSize,
		Y: w.half - float32(row)*w.blockSize,
		W: w.blockSize,
		H: w.blockSize,
	}
}

// CellCenter returns the collision-space centre of grid cell (row, col),
// the inverse of WindowToGrid.
func (w *World) CellCenter(row, col int) vecmath.Vec2 {
	return vecmath.Vec2{
		X: -w.half + (float32(col)+0.5)*w.cellPixels,
		Y: w.half - (float32(row)+0.5)*w.cellPixels,
	}
}

// Obstacles returns the drawn rectangle of every obstacle cell in row-major
// order.
func (w *World) Obstacles() []Rect {
	out := make([]Rect, 0, len(w.walls))
	for row := 0; row < w.rows; row++ {
		for col := 0; col < w.gridSize; col++ {
			if w.IsWallGrid(row, col) {
				out = append(out, w.CellRect(row, col))
			}
		}
	}
	return out
}

// Labels returns a rows x gridSize matrix of floodfill.Wall and
// floodfill.NoWall.
func (w *World) Labels() [][]int {
	mat := make([][]int, w.rows)
	for row := range mat {
		mat[row] = make([]int, w.gridSize)
		for col := range mat[row] {
			if w.IsWallGrid(row, col) {
				mat[row][col] = floodfill.Wall
			} else {
				mat[row][col] = floodfill.NoWall
			}
		}
	}
	return mat
}

// DistanceField floods the grid outward from the target's cell.
func (w *World) DistanceField() *floodfill.Field {
	col, row := w.WindowToGrid(w.target.Pos)
	return floodfill.New(w.Labels(), floodfill.Wall, floodfill.NoWall).
		Field(floodfill.Cell{Row: row, Col: col})
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
