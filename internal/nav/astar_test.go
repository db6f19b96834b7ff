package nav

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openGrid(t testing.TB, width, height int) *Grid {
	t.Helper()
	cells := make([]bool, width*height)
	for i := range cells {
		cells[i] = true
	}
	g, err := NewGrid(width, height, cells)
	require.NoError(t, err)
	return g
}

// pathCost sums step costs of a raw path, where consecutive points differ
// by at most one cell per axis.
func pathCost(path []Point) float64 {
	cost := 0.0
	for i := 1; i < len(path); i++ {
		dx := absInt(path[i].X - path[i-1].X)
		dy := absInt(path[i].Y - path[i-1].Y)
		if dx == 1 && dy == 1 {
			cost += math.Sqrt2
		} else {
			cost += 1.0
		}
	}
	return cost
}

func TestFindPathStraightLine(t *testing.T) {
	p := NewPathfinder(openGrid(t, 10, 10))

	path := p.FindPath(0, 0, 3, 0)
	require.NotNil(t, path)
	assert.Equal(t, Point{X: 0, Y: 0}, path[0])
	assert.Equal(t, Point{X: 3, Y: 0}, path[len(path)-1])
	assert.InDelta(t, 3.0, pathCost(path), 1e-9, "straight path should cost exactly 3")
}

func TestFindPathDiagonal(t *testing.T) {
	p := NewPathfinder(openGrid(t, 10, 10))

	path := p.FindPath(0, 0, 2, 2)
	require.NotNil(t, path)
	assert.Equal(t, Point{X: 2, Y: 2}, path[len(path)-1])
	assert.InDelta(t, 2*math.Sqrt2, pathCost(path), 1e-9, "diagonal path should cost 2*sqrt(2)")
}

func TestFindPathSamePoint(t *testing.T) {
	p := NewPathfinder(openGrid(t, 10, 10))

	path := p.FindPath(5, 5, 5, 5)
	require.NotNil(t, path)
	require.Len(t, path, 1)
	assert.Equal(t, Point{X: 5, Y: 5}, path[0])
}

func TestFindPathOutOfBounds(t *testing.T) {
	p := NewPathfinder(openGrid(t, 10, 10))

	assert.Nil(t, p.FindPath(-1, 0, 5, 5))
	assert.Nil(t, p.FindPath(0, 0, 10, 0))
	assert.Nil(t, p.FindPath(0, 0, 0, -3))
}

func TestFindPathUnreachable(t *testing.T) {
	g := openGrid(t, 10, 10)
	// Wall off the goal completely.
	for _, c := range [][2]int{{8, 8}, {9, 8}, {8, 9}} {
		g.SetWalkable(c[0], c[1], false)
	}
	p := NewPathfinder(g)

	assert.Nil(t, p.FindPath(0, 0, 9, 9), "walled-off goal must report no path")
}

func TestFindPathBlockedGoal(t *testing.T) {
	g := openGrid(t, 10, 10)
	g.SetWalkable(7, 7, false)
	p := NewPathfinder(g)

	assert.Nil(t, p.FindPath(0, 0, 7, 7))
}

func TestFindPathAroundWall(t *testing.T) {
	g := openGrid(t, 10, 10)
	// Vertical wall at x=5 with a single gap at y=9.
	for y := 0; y < 9; y++ {
		g.SetWalkable(5, y, false)
	}
	p := NewPathfinder(g)

	path := p.FindPath(0, 0, 9, 0)
	require.NotNil(t, path, "gap at the bottom should keep the goal reachable")
	for _, pt := range path {
		assert.True(t, g.Walkable(pt.X, pt.Y), "path must not cross the wall at %v", pt)
	}
	assert.Greater(t, pathCost(path), 9.0, "detour must cost more than the direct line")
}

func TestFindPathStepsAreAdjacent(t *testing.T) {
	g := openGrid(t, 16, 16)
	g.SetWalkable(8, 8, false)
	g.SetWalkable(8, 7, false)
	p := NewPathfinder(g)

	path := p.FindPath(1, 1, 14, 14)
	require.NotNil(t, path)
	for i := 1; i < len(path); i++ {
		dx := absInt(path[i].X - path[i-1].X)
		dy := absInt(path[i].Y - path[i-1].Y)
		assert.LessOrEqual(t, dx, 1)
		assert.LessOrEqual(t, dy, 1)
		assert.False(t, dx == 0 && dy == 0, "path must not repeat a cell")
	}
}

func TestOctile(t *testing.T) {
	assert.Equal(t, 0.0, octile(0, 0, 0, 0))
	assert.InDelta(t, 10.0, octile(0, 0, 10, 0), 0.001)
	assert.InDelta(t, 14.142, octile(0, 0, 10, 10), 0.01)
	assert.InDelta(t, 10+(math.Sqrt2-2)*3, octile(0, 0, 3, 7), 1e-9)
}

func BenchmarkFindPath(b *testing.B) {
	g := openGrid(b, 128, 128)
	for y := 10; y < 120; y += 10 {
		for x := 0; x < 100; x++ {
			g.SetWalkable((y/10*13+x)%128, y, false)
		}
	}
	p := NewPathfinder(g)

	b.ResetTimer()
	for range b.N {
		p.FindPath(0, 0, 127, 127)
	}
}
