package nav

import (
	"fmt"
	"log/slog"
)

// Grid is a flat walkability bitmap over a width×height cell field. Cells
// outside the bounds are never walkable and writes to them are ignored
// rather than wrapped.
type Grid struct {
	width    int
	height   int
	walkable []bool
}

// NewGrid creates a grid from a row-major walkability bitmap. The bitmap is
// copied, so the grid owns its cells exclusively.
func NewGrid(width, height int, walkable []bool) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions %dx%d must be positive", width, height)
	}
	if len(walkable) != width*height {
		return nil, fmt.Errorf("bitmap length %d does not match %dx%d grid", len(walkable), width, height)
	}
	g := &Grid{width: width, height: height, walkable: make([]bool, len(walkable))}
	copy(g.walkable, walkable)
	return g, nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Walkable reports whether (x, y) is inside the grid and walkable.
func (g *Grid) Walkable(x, y int) bool {
	return g.InBounds(x, y) && g.walkable[y*g.width+x]
}

// SetWalkable updates one cell. Out-of-range coordinates are ignored.
func (g *Grid) SetWalkable(x, y int, walkable bool) {
	if !g.InBounds(x, y) {
		slog.Debug("ignoring out-of-range cell update", "x", x, "y", y)
		return
	}
	g.walkable[y*g.width+x] = walkable
}

// Replace swaps in a whole new bitmap. A mismatched length is rejected and
// the grid keeps its current cells.
func (g *Grid) Replace(walkable []bool) error {
	if len(walkable) != g.width*g.height {
		return fmt.Errorf("bitmap length %d does not match %dx%d grid", len(walkable), g.width, g.height)
	}
	copy(g.walkable, walkable)
	return nil
}
