package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm-cable/rockets/floodfill"
)

// Cell glyphs in the text rendering.
const (
	glyphWall        = "#"
	glyphUnreachable = "."
)

// renderText writes the distance field as a fixed-width grid. Walls print
// as '#', unreachable cells as '.', everything else as its hop count.
func renderText(out io.Writer, field *floodfill.Field) error {
	grid := field.Grid()
	width := len(fmt.Sprint(max(field.Max()-1, 0)))

	var sb strings.Builder
	for row := range grid {
		for col := range grid[row] {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cellText(field, row, col, width))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(out, sb.String())
	return err
}

func cellText(field *floodfill.Field, row, col, width int) string {
	if hops, ok := field.Distance(row, col); ok {
		return fmt.Sprintf("%*d", width, hops)
	}
	glyph := glyphUnreachable
	if field.Grid()[row][col] == floodfill.Wall {
		glyph = glyphWall
	}
	return strings.Repeat(" ", width-1) + glyph
}
