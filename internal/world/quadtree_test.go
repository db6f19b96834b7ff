package world

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grebnov/neoncity/internal/model"
)

func makeTile(x, y int) *model.Tile {
	return &model.Tile{
		ID:   model.TileID(x, y),
		Type: model.TileConcrete,
		X:    x,
		Y:    y,
	}
}

func TestQuadtreeRoundTrip(t *testing.T) {
	q := NewQuadtree(model.NewRect(0, 0, 64, 64))

	r := rand.New(rand.NewPCG(99, 0))
	want := make(map[string]bool)
	for range 300 {
		x := r.IntN(64)
		y := r.IntN(64)
		id := model.TileID(x, y)
		if want[id] {
			continue
		}
		want[id] = true
		q.Insert(makeTile(x, y))
	}
	require.Equal(t, len(want), q.Len())

	got := q.Query(model.NewRect(0, 0, 64, 64))
	require.Len(t, got, len(want), "full-bounds query must return every inserted tile")

	seen := make(map[string]bool)
	for _, o := range got {
		tile, ok := o.(*model.Tile)
		require.True(t, ok)
		assert.True(t, want[tile.ID], "query returned tile %s that was never inserted", tile.ID)
		assert.False(t, seen[tile.ID], "tile %s returned twice", tile.ID)
		seen[tile.ID] = true
	}
}

func TestQuadtreeDisjointQueryEmpty(t *testing.T) {
	q := NewQuadtree(model.NewRect(0, 0, 64, 64))
	for y := range 8 {
		for x := range 8 {
			q.Insert(makeTile(x, y))
		}
	}

	assert.Empty(t, q.Query(model.NewRect(32, 32, 8, 8)))
}

func TestQuadtreeEdgeTouchCounts(t *testing.T) {
	q := NewQuadtree(model.NewRect(0, 0, 64, 64))
	q.Insert(makeTile(4, 4))

	got := q.Query(model.NewRect(5, 5, 3, 3))
	require.Len(t, got, 1, "corner contact at (5,5) must count as intersection")
}

func TestQuadtreeSplitsOnOverflow(t *testing.T) {
	q := NewQuadtree(model.NewRect(0, 0, 64, 64))
	for i := range 11 {
		q.Insert(makeTile(i%8, i/8))
	}

	require.NotNil(t, q.children[0], "node past capacity must subdivide")
	assert.Equal(t, 11, q.Len())

	got := q.Query(model.NewRect(0, 0, 64, 64))
	assert.Len(t, got, 11)
}

func TestQuadtreeStraddlerStaysQueryable(t *testing.T) {
	q := NewQuadtree(model.NewRect(0, 0, 64, 64))

	// Force a split, then index a structure crossing the center boundary.
	for i := range 12 {
		q.Insert(makeTile(i%8, i/8))
	}
	straddler := &model.Structure{ID: "bldg_30_30", Kind: model.StructureTower, X: 30, Y: 30, W: 4, H: 4}
	q.Insert(straddler)

	require.NotNil(t, q.children[0])
	assert.Contains(t, q.objects, Object(straddler), "straddler must stay at the node that split")

	got := q.Query(model.NewRect(33, 33, 2, 2))
	require.Len(t, got, 1)
	assert.Same(t, straddler, got[0])
}

func TestQuadtreeDepthLimit(t *testing.T) {
	q := NewQuadtree(model.NewRect(0, 0, 64, 64))
	for range 50 {
		q.Insert(makeTile(1, 1))
	}

	assert.Equal(t, 50, q.Len())
	assert.Len(t, q.Query(model.NewRect(0, 0, 4, 4)), 50)
}

func TestQuadtreeClear(t *testing.T) {
	q := NewQuadtree(model.NewRect(0, 0, 64, 64))
	for i := range 20 {
		q.Insert(makeTile(i%8, i/8))
	}

	q.Clear()

	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Query(model.NewRect(0, 0, 64, 64)))

	q.Insert(makeTile(3, 3))
	assert.Equal(t, 1, q.Len(), "cleared tree must accept new objects")
}

func TestQuadtreeInsertInvalidSkipped(t *testing.T) {
	q := NewQuadtree(model.NewRect(0, 0, 64, 64))

	q.Insert(nil)

	var typedNil *model.Tile
	q.Insert(typedNil)

	q.Insert(&model.Tile{X: 2, Y: 2})

	assert.Equal(t, 0, q.Len(), "nil and typeless tiles must be skipped")
}
