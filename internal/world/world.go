package world

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/grebnov/neoncity/internal/gen"
	"github.com/grebnov/neoncity/internal/model"
)

// World owns the generated tile set, the placed structures, the spatial
// index and the walkability bitmap derived from both.
type World struct {
	width     int
	height    int
	chunkSize int
	generator *gen.Generator

	tiles      []*model.Tile // row-major, width*height
	structures []*model.Structure
	index      *Quadtree
	walkable   []bool
}

// New creates an empty world of width×height cells generated in
// chunkSize×chunkSize blocks. Dimensions must be positive multiples of the
// chunk size.
func New(g *gen.Generator, width, height, chunkSize int) (*World, error) {
	if width <= 0 || height <= 0 || chunkSize <= 0 {
		return nil, fmt.Errorf("world dimensions %dx%d (chunk %d) must be positive", width, height, chunkSize)
	}
	if width%chunkSize != 0 || height%chunkSize != 0 {
		return nil, fmt.Errorf("world dimensions %dx%d must be multiples of chunk size %d", width, height, chunkSize)
	}
	return &World{
		width:     width,
		height:    height,
		chunkSize: chunkSize,
		generator: g,
		tiles:     make([]*model.Tile, width*height),
		index:     NewQuadtree(model.NewRect(0, 0, float64(width), float64(height))),
	}, nil
}

// Generate fills the world from its generator: tiles chunk by chunk across
// workers, then structure placement, the walkability bitmap and the spatial
// index. Chunks write disjoint tile ranges, so the result does not depend on
// scheduling.
func (w *World) Generate(ctx context.Context) error {
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	for cy := range w.ChunksY() {
		for cx := range w.ChunksX() {
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				w.placeChunk(cx, cy, w.generator.GenerateChunk(cx, cy, w.chunkSize))
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("generating chunks: %w", err)
	}

	w.structures = w.generator.PlaceStructures(w.tiles, w.width, w.height)
	w.buildWalkable()
	w.Rebuild()
	return nil
}

// placeChunk copies a generated chunk into the world tile slice.
func (w *World) placeChunk(cx, cy int, tiles []*model.Tile) {
	baseX := cx * w.chunkSize
	baseY := cy * w.chunkSize
	for i, t := range tiles {
		x := baseX + i%w.chunkSize
		y := baseY + i/w.chunkSize
		w.tiles[y*w.width+x] = t
	}
}

// buildWalkable derives the walkability bitmap from tile types, then blocks
// every structure footprint.
func (w *World) buildWalkable() {
	w.walkable = make([]bool, w.width*w.height)
	for i, t := range w.tiles {
		if t != nil {
			w.walkable[i] = t.Type.Walkable()
		}
	}
	for _, s := range w.structures {
		for y := s.Y; y < s.Y+s.H; y++ {
			for x := s.X; x < s.X+s.W; x++ {
				w.walkable[y*w.width+x] = false
			}
		}
	}
}

// Rebuild re-indexes every tile and structure from scratch. Call after the
// underlying set changes materially; there is no incremental update.
func (w *World) Rebuild() {
	w.index.Clear()
	for _, t := range w.tiles {
		if t != nil {
			w.index.Insert(t)
		}
	}
	for _, s := range w.structures {
		w.index.Insert(s)
	}
}

// Viewport returns the tiles and structures intersecting r, for minimap and
// camera culling.
func (w *World) Viewport(r model.Rect) ([]*model.Tile, []*model.Structure) {
	var tiles []*model.Tile
	var structures []*model.Structure
	for _, o := range w.index.Query(r) {
		switch v := o.(type) {
		case *model.Tile:
			tiles = append(tiles, v)
		case *model.Structure:
			structures = append(structures, v)
		}
	}
	return tiles, structures
}

// WalkableBitmap returns a copy of the walkability bitmap for handing to a
// pathfinding session. The session owns its copy; later world changes must
// be mirrored over explicitly.
func (w *World) WalkableBitmap() []bool {
	out := make([]bool, len(w.walkable))
	copy(out, w.walkable)
	return out
}

// Tile returns the tile at (x, y), or nil when out of bounds.
func (w *World) Tile(x, y int) *model.Tile {
	if x < 0 || x >= w.width || y < 0 || y >= w.height {
		return nil
	}
	return w.tiles[y*w.width+x]
}

// ChunkTiles returns the tiles of chunk (cx, cy) in row-major order, or nil
// when the chunk is out of range.
func (w *World) ChunkTiles(cx, cy int) []*model.Tile {
	if cx < 0 || cx >= w.ChunksX() || cy < 0 || cy >= w.ChunksY() {
		return nil
	}
	out := make([]*model.Tile, 0, w.chunkSize*w.chunkSize)
	baseX := cx * w.chunkSize
	baseY := cy * w.chunkSize
	for y := range w.chunkSize {
		for x := range w.chunkSize {
			out = append(out, w.tiles[(baseY+y)*w.width+baseX+x])
		}
	}
	return out
}

// ChunkStructures returns the structures anchored inside chunk (cx, cy).
func (w *World) ChunkStructures(cx, cy int) []*model.Structure {
	var out []*model.Structure
	for _, s := range w.structures {
		if s.X/w.chunkSize == cx && s.Y/w.chunkSize == cy {
			out = append(out, s)
		}
	}
	return out
}

// Width returns the world width in cells.
func (w *World) Width() int { return w.width }

// Height returns the world height in cells.
func (w *World) Height() int { return w.height }

// ChunkSize returns the generation chunk edge length.
func (w *World) ChunkSize() int { return w.chunkSize }

// ChunksX returns the number of chunks along the X axis.
func (w *World) ChunksX() int { return w.width / w.chunkSize }

// ChunksY returns the number of chunks along the Y axis.
func (w *World) ChunksY() int { return w.height / w.chunkSize }

// Seed returns the seed the world generates from.
func (w *World) Seed() int64 { return w.generator.Seed() }

// Structures returns all placed structures.
func (w *World) Structures() []*model.Structure { return w.structures }

// Bounds returns the rectangle spanning the whole world.
func (w *World) Bounds() model.Rect {
	return model.NewRect(0, 0, float64(w.width), float64(w.height))
}
