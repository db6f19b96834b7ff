package model

import "fmt"

// StructureKind identifies the building archetype placed on dense urban blocks.
type StructureKind string

const (
	StructureTower StructureKind = "tower"
	StructureBlock StructureKind = "block"
	StructurePlant StructureKind = "plant"
)

// Structure is a placed building occupying a w×h footprint of cells.
// Footprint cells are blocked for pathfinding regardless of terrain.
type Structure struct {
	ID   string        `json:"id"`
	Kind StructureKind `json:"kind"`
	X    int           `json:"x"`
	Y    int           `json:"y"`
	W    int           `json:"w"`
	H    int           `json:"h"`
}

// StructureID returns the stable key for a structure anchored at (x, y).
func StructureID(x, y int) string {
	return fmt.Sprintf("bldg_%d_%d", x, y)
}

// Bounds returns the rectangle covered by the structure footprint.
func (s *Structure) Bounds() Rect {
	return Rect{X: float64(s.X), Y: float64(s.Y), W: float64(s.W), H: float64(s.H)}
}
