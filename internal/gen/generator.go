package gen

import (
	"fmt"

	"github.com/grebnov/neoncity/internal/model"
)

// Config carries the knobs that shape a generated city.
type Config struct {
	Seed       int64
	NoiseScale float64 // base noise frequency per cell
	CoreX      float64 // city core position
	CoreY      float64
	CoreRadius float64 // cells over which urban density decays
}

// Generator produces deterministic city terrain. Everything it emits is a
// pure function of the seed and the cell coordinate, so the same seed always
// rebuilds the same city.
type Generator struct {
	seed     int64
	fields   *Fields
	variants map[model.TileType]int
}

// NewGenerator creates a generator for the given config.
func NewGenerator(cfg Config) (*Generator, error) {
	table, err := loadVariantTable()
	if err != nil {
		return nil, fmt.Errorf("loading variant table: %w", err)
	}
	return &Generator{
		seed:     cfg.Seed,
		fields:   NewFields(cfg.Seed, cfg.NoiseScale, cfg.CoreX, cfg.CoreY, cfg.CoreRadius),
		variants: table,
	}, nil
}

// Seed returns the world seed the generator was built with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Fields returns the scalar field samplers backing the generator.
func (g *Generator) Fields() *Fields {
	return g.fields
}

// GenerateTile classifies one cell from already-sampled field values and
// assigns its variant and stable id. The weighted branches draw from the
// cell's own deterministic stream.
func (g *Generator) GenerateTile(x, y int, height, moisture, urban float64) *model.Tile {
	r := cellRand(g.seed, x, y)
	t := classifyTile(height, moisture, urban, r)
	return &model.Tile{
		ID:       model.TileID(x, y),
		Type:     t,
		Variant:  pickVariant(g.variants, t, r),
		Height:   height,
		Moisture: moisture,
		X:        x,
		Y:        y,
	}
}

// GenerateAt samples the fields at a cell and generates its tile.
func (g *Generator) GenerateAt(x, y int) *model.Tile {
	h := g.fields.Height(x, y)
	m := g.fields.Moisture(x, y)
	u := g.fields.UrbanDensity(x, y)
	return g.GenerateTile(x, y, h, m, u)
}

// GenerateChunk generates the size×size tile block whose chunk coordinates
// are (cx, cy), in row-major order.
func (g *Generator) GenerateChunk(cx, cy, size int) []*model.Tile {
	tiles := make([]*model.Tile, 0, size*size)
	baseX := cx * size
	baseY := cy * size
	for y := range size {
		for x := range size {
			tiles = append(tiles, g.GenerateAt(baseX+x, baseY+y))
		}
	}
	return tiles
}
