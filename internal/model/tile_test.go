package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTileTypeWalkable(t *testing.T) {
	assert.False(t, TileWater.Walkable())
	assert.False(t, TileMountain.Walkable())
	assert.True(t, TileGrass.Walkable())
	assert.True(t, TileConcrete.Walkable())
	assert.True(t, TileWetland.Walkable())
}

func TestTileID(t *testing.T) {
	assert.Equal(t, "tile_4_7", TileID(4, 7))
	assert.Equal(t, "tile_-3_0", TileID(-3, 0))
}

func TestTileValid(t *testing.T) {
	var nilTile *Tile
	assert.False(t, nilTile.Valid())
	assert.False(t, (&Tile{}).Valid())
	assert.True(t, (&Tile{Type: TileGrass}).Valid())
}

func TestTileBounds(t *testing.T) {
	b := (&Tile{X: 3, Y: 5}).Bounds()
	assert.Equal(t, NewRect(3, 5, 1, 1), b)
}

func TestStructureBounds(t *testing.T) {
	s := &Structure{X: 2, Y: 4, W: 3, H: 2}
	assert.Equal(t, NewRect(2, 4, 3, 2), s.Bounds())
	assert.Equal(t, "bldg_2_4", StructureID(2, 4))
}
