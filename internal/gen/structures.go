package gen

import (
	"math/rand/v2"

	"github.com/grebnov/neoncity/internal/model"
)

// Structure placement knobs. Buildings roll per anchor cell in dense urban
// zones; the salt decouples placement draws from the tile draws at the same
// coordinate.
const (
	structureSalt   = 0xC0FFEE
	structureChance = 0.12
	maxFootprint    = 3
)

var structureKinds = []struct {
	threshold float64
	kind      model.StructureKind
}{
	{0.5, model.StructureTower},
	{0.8, model.StructureBlock},
	{1.0, model.StructurePlant},
}

// buildable reports whether a structure footprint may cover this tile type.
func buildable(t model.TileType) bool {
	switch t {
	case model.TileConcrete, model.TileAsphalt, model.TileMetal, model.TileTiles, model.TileSolar:
		return true
	default:
		return false
	}
}

// PlaceStructures rolls building footprints over a generated tile grid.
// Anchors land only on dense-urban buildable cells; a footprint must fit the
// grid, cover buildable tiles only and not overlap an earlier placement.
// Iteration is row-major, so placement is deterministic for a seed.
func (g *Generator) PlaceStructures(tiles []*model.Tile, width, height int) []*model.Structure {
	occupied := make([]bool, width*height)
	var placed []*model.Structure

	for y := range height {
		for x := range width {
			t := tiles[y*width+x]
			if !buildable(t.Type) || occupied[y*width+x] {
				continue
			}
			if g.fields.UrbanDensity(x, y) <= denseUrban {
				continue
			}

			r := cellRand(g.seed^structureSalt, x, y)
			if r.Float64() >= structureChance {
				continue
			}

			w := r.IntN(maxFootprint) + 1
			h := r.IntN(maxFootprint) + 1
			if !footprintFree(tiles, occupied, width, height, x, y, w, h) {
				continue
			}

			for fy := y; fy < y+h; fy++ {
				for fx := x; fx < x+w; fx++ {
					occupied[fy*width+fx] = true
				}
			}
			placed = append(placed, &model.Structure{
				ID:   model.StructureID(x, y),
				Kind: pickKind(r),
				X:    x,
				Y:    y,
				W:    w,
				H:    h,
			})
		}
	}
	return placed
}

// footprintFree reports whether a w×h footprint anchored at (x, y) fits the
// grid on free buildable cells.
func footprintFree(tiles []*model.Tile, occupied []bool, width, height, x, y, w, h int) bool {
	if x+w > width || y+h > height {
		return false
	}
	for fy := y; fy < y+h; fy++ {
		for fx := x; fx < x+w; fx++ {
			i := fy*width + fx
			if occupied[i] || !buildable(tiles[i].Type) {
				return false
			}
		}
	}
	return true
}

func pickKind(r *rand.Rand) model.StructureKind {
	roll := r.Float64()
	for _, k := range structureKinds {
		if roll < k.threshold {
			return k.kind
		}
	}
	return structureKinds[len(structureKinds)-1].kind
}
