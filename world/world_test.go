package world

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/rockets/config"
	"github.com/pthm-cable/rockets/floodfill"
	"github.com/pthm-cable/rockets/vecmath"
)

func mustLoad(t *testing.T, src string) *World {
	t.Helper()
	w, err := Load(strings.NewReader(src), config.Defaults())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return w
}

func TestLoadPolarity(t *testing.T) {
	w := mustLoad(t, "1x1\n101\n111\n")

	tests := []struct {
		row, col int
		want     bool
	}{
		{0, 0, false},
		{0, 1, true}, // any non-'1' is a wall
		{1, 1, true},
		{2, 2, false},
		{5, 5, false}, // outside the grid is not in the set
	}
	for _, tt := range tests {
		if got := w.IsWallGrid(tt.row, tt.col); got != tt.want {
			t.Errorf("IsWallGrid(%d,%d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}
	if w.WallCount() != 2 {
		t.Errorf("WallCount() = %d, want 2", w.WallCount())
	}
}

func TestLoadGridSizeFromFirstRow(t *testing.T) {
	w := mustLoad(t, "1111\n11\r\n111111\n\n")
	if w.GridSize() != 4 {
		t.Errorf("GridSize() = %d, want 4", w.GridSize())
	}
	if w.Rows() != 3 {
		t.Errorf("Rows() = %d, want 3", w.Rows())
	}
	if got, want := w.BlockSize(), float32(180); got != want {
		t.Errorf("BlockSize() = %v, want %v", got, want)
	}
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load(strings.NewReader("\n\n"), config.Defaults())
	if !errors.Is(err, ErrEmptyMap) {
		t.Errorf("err = %v, want ErrEmptyMap", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"), config.Defaults())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestLoadFileBundledMap(t *testing.T) {
	cfg := config.Defaults()
	w, err := LoadFile(filepath.Join("..", cfg.Grid.MapPath), cfg)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if w.GridSize()*cfg.Grid.CellPixels != cfg.Screen.Size {
		t.Errorf("bundled map is %d cells wide, want %d", w.GridSize(), cfg.Screen.Size/cfg.Grid.CellPixels)
	}
	spawn := vecmath.Vec2{X: cfg.Derived.SpawnX32, Y: cfg.Derived.SpawnY32}
	if w.IsWallWorld(spawn) {
		t.Error("spawn point is inside a wall")
	}
	if w.IsWallWorld(w.Target().Pos) {
		t.Error("target is inside a wall")
	}
	col, row := w.WindowToGrid(spawn)
	if _, ok := w.DistanceField().Distance(row, col); !ok {
		t.Error("target unreachable from spawn")
	}
}

func TestIsWallWorldBounds(t *testing.T) {
	w := mustLoad(t, strings.Repeat(strings.Repeat("1", 30)+"\n", 30))

	tests := []struct {
		name string
		p    vecmath.Vec2
		want bool
	}{
		{"origin", vecmath.Vec2{}, false},
		{"left edge", vecmath.Vec2{X: -360}, true},
		{"right edge", vecmath.Vec2{X: 360}, true},
		{"top edge", vecmath.Vec2{Y: 360}, true},
		{"bottom edge", vecmath.Vec2{Y: -360}, true},
		{"far outside", vecmath.Vec2{X: 1000, Y: -1000}, true},
		{"just inside", vecmath.Vec2{X: 359.5, Y: -359.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.IsWallWorld(tt.p); got != tt.want {
				t.Errorf("IsWallWorld(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestWindowToGrid(t *testing.T) {
	w := mustLoad(t, "11\n11\n")

	tests := []struct {
		p        vecmath.Vec2
		col, row int
	}{
		{vecmath.Vec2{X: -359, Y: 359}, 0, 0},
		{vecmath.Vec2{X: -350, Y: 0}, 0, 15},
		{vecmath.Vec2{X: 330, Y: 0}, 28, 15},
		{vecmath.Vec2{X: 0, Y: 0}, 15, 15},
		{vecmath.Vec2{X: -336, Y: 336}, 1, 1},
	}
	for _, tt := range tests {
		col, row := w.WindowToGrid(tt.p)
		if col != tt.col || row != tt.row {
			t.Errorf("WindowToGrid(%v) = (%d,%d), want (%d,%d)", tt.p, col, row, tt.col, tt.row)
		}
	}
}

func TestIsWallWorldUsesFixedCellSize(t *testing.T) {
	// A 2x2 map draws 360px blocks but collision still uses 24px cells, so
	// only points in the top-left 24px cell map to grid (0,1) region.
	w := mustLoad(t, "10\n11\n")

	if !w.IsWallWorld(vecmath.Vec2{X: -330, Y: 350}) {
		t.Error("expected collision in grid cell (0,1)")
	}
	// Drawn over the wall block but maps to grid (2, 20) which is empty
	if w.IsWallWorld(vecmath.Vec2{X: 130, Y: 300}) {
		t.Error("expected no collision outside the 24px cell")
	}
}

func TestObstacles(t *testing.T) {
	w := mustLoad(t, "011\n111\n110\n")
	rects := w.Obstacles()
	if len(rects) != 2 {
		t.Fatalf("len(Obstacles()) = %d, want 2", len(rects))
	}
	want := []Rect{
		{X: -360, Y: 360, W: 240, H: 240},
		{X: 120, Y: -120, W: 240, H: 240},
	}
	for i := range want {
		if rects[i] != want[i] {
			t.Errorf("Obstacles()[%d] = %+v, want %+v", i, rects[i], want[i])
		}
	}
}

func TestLabels(t *testing.T) {
	w := mustLoad(t, "10\n11\n")
	labels := w.Labels()
	want := [][]int{
		{floodfill.NoWall, floodfill.Wall},
		{floodfill.NoWall, floodfill.NoWall},
	}
	for r := range want {
		for c := range want[r] {
			if labels[r][c] != want[r][c] {
				t.Errorf("Labels()[%d][%d] = %d, want %d", r, c, labels[r][c], want[r][c])
			}
		}
	}
}

func TestCellCenterRoundTrip(t *testing.T) {
	w := mustLoad(t, "11\n11\n")
	for _, gp := range []GridPos{{0, 0}, {15, 0}, {15, 28}, {29, 29}} {
		col, row := w.WindowToGrid(w.CellCenter(gp.Row, gp.Col))
		if row != gp.Row || col != gp.Col {
			t.Errorf("round trip of %+v gave (%d,%d)", gp, row, col)
		}
	}
}
