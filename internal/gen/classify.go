package gen

import (
	"math/rand/v2"

	"github.com/grebnov/neoncity/internal/model"
)

// Threshold bands for terrain classification. Bands are checked in order;
// the first match wins, so the coastal band shadows the low end of the main
// band and so on.
const (
	waterLevel    = 0.38
	coastalLevel  = 0.42
	mountainLevel = 0.8

	coastalUrban  = 0.7
	coastalWet    = 0.6
	denseUrban    = 0.8
	suburbanUrban = 0.5
	ruralDry      = 0.2
	ruralWet      = 0.6
	mountainUrban = 0.7
)

// weightedType pairs a tile type with its cumulative probability threshold.
type weightedType struct {
	threshold float64
	t         model.TileType
}

var (
	denseUrbanTypes = []weightedType{
		{0.4, model.TileConcrete},
		{0.7, model.TileAsphalt},
		{0.8, model.TileMetal},
		{0.9, model.TileTiles},
		{1.0, model.TileSolar},
	}
	suburbanTypes = []weightedType{
		{0.4, model.TileGarden},
		{0.7, model.TileGrass},
		{1.0, model.TileConcrete},
	}
	mountainUrbanTypes = []weightedType{
		{0.7, model.TileMetal},
		{1.0, model.TileConcrete},
	}
)

// classifyTile maps the scalar fields of a cell to a tile type. Weighted
// sub-branches draw from r, so the same stream always yields the same type.
func classifyTile(height, moisture, urban float64, r *rand.Rand) model.TileType {
	switch {
	case height < waterLevel:
		return model.TileWater

	case height < coastalLevel:
		if urban > coastalUrban {
			return model.TileConcrete
		}
		if moisture > coastalWet {
			return model.TileWetland
		}
		return model.TileSand

	case height < mountainLevel:
		switch {
		case urban > denseUrban:
			return pickWeighted(r, denseUrbanTypes)
		case urban > suburbanUrban:
			return pickWeighted(r, suburbanTypes)
		case moisture < ruralDry:
			return model.TileDirt
		case moisture > ruralWet:
			return model.TileForest
		default:
			return model.TileGrass
		}

	default:
		if urban > mountainUrban {
			return pickWeighted(r, mountainUrbanTypes)
		}
		return model.TileMountain
	}
}

// pickWeighted draws one type by testing a uniform roll against cumulative
// thresholds.
func pickWeighted(r *rand.Rand, table []weightedType) model.TileType {
	roll := r.Float64()
	for _, w := range table {
		if roll < w.threshold {
			return w.t
		}
	}
	return table[len(table)-1].t
}
