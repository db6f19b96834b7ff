package model

import "fmt"

// TileType identifies the terrain classification of a generated tile.
type TileType string

// Tile types produced by the terrain classifier.
const (
	TileWater    TileType = "water"
	TileSand     TileType = "sand"
	TileWetland  TileType = "wetland"
	TileConcrete TileType = "concrete"
	TileAsphalt  TileType = "asphalt"
	TileMetal    TileType = "metal"
	TileTiles    TileType = "tiles"
	TileSolar    TileType = "solar"
	TileGarden   TileType = "garden"
	TileGrass    TileType = "grass"
	TileDirt     TileType = "dirt"
	TileForest   TileType = "forest"
	TileMountain TileType = "mountain"
)

// Walkable reports whether terrain of this type can be traversed.
// Structures may still block individual cells on walkable terrain.
func (t TileType) Walkable() bool {
	switch t {
	case TileWater, TileMountain:
		return false
	default:
		return true
	}
}

// Tile is a single generated world cell. Immutable per generation:
// re-generating a coordinate produces a new record, never mutates an old one.
type Tile struct {
	ID       string   `json:"id"`
	Type     TileType `json:"type"`
	Variant  string   `json:"variant"`
	Height   float64  `json:"height"`
	Moisture float64  `json:"moisture"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
}

// TileID returns the stable persistence key for a coordinate.
func TileID(x, y int) string {
	return fmt.Sprintf("tile_%d_%d", x, y)
}

// Valid reports whether the tile carries the fields the spatial index needs.
func (t *Tile) Valid() bool {
	return t != nil && t.Type != ""
}

// Bounds returns the unit rectangle the tile occupies.
func (t *Tile) Bounds() Rect {
	return Rect{X: float64(t.X), Y: float64(t.Y), W: 1, H: 1}
}
