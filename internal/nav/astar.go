package nav

import "math"

// Point is a single grid cell coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step costs for 8-directional movement. Diagonal cost is a fixed constant
// so path costs stay bit-identical across runs and platforms.
const (
	cardinalCost = 1.0
	diagonalCost = math.Sqrt2
)

// neighborOffsets lists the 8 movement directions with their step costs.
var neighborOffsets = [8]struct {
	dx, dy int
	cost   float64
}{
	{0, -1, cardinalCost},
	{1, 0, cardinalCost},
	{0, 1, cardinalCost},
	{-1, 0, cardinalCost},
	{1, -1, diagonalCost},
	{1, 1, diagonalCost},
	{-1, 1, diagonalCost},
	{-1, -1, diagonalCost},
}

// node is one cell in the search arena. parent is an arena index, -1 for
// the start node, so reconstruction never chases pointers.
type node struct {
	x, y    int
	g, h, f float64
	parent  int32
}

// cellKey identifies a cell in the open and closed sets.
type cellKey struct {
	x, y int
}

// Pathfinder runs A* searches over a Grid. It reads the grid but does not
// own it; updates arrive through the grid's own mutators between searches.
type Pathfinder struct {
	grid *Grid
}

// NewPathfinder creates a pathfinder reading from grid.
func NewPathfinder(grid *Grid) *Pathfinder {
	return &Pathfinder{grid: grid}
}

// octile estimates the remaining cost to the goal under 8-directional
// movement with these step costs. Admissible and consistent, which keeps
// the closed set safe from reopening.
func octile(x, y, tx, ty int) float64 {
	dx := math.Abs(float64(x - tx))
	dy := math.Abs(float64(y - ty))
	return (dx + dy) + (diagonalCost-2)*math.Min(dx, dy)
}

// FindPath returns the cheapest path from (sx, sy) to (gx, gy), endpoints
// included, or nil when the goal cannot be reached. Out-of-bounds endpoints
// yield nil. An unreachable goal is a normal outcome, not an error, and a
// started search always runs to completion.
func (p *Pathfinder) FindPath(sx, sy, gx, gy int) []Point {
	if !p.grid.InBounds(sx, sy) || !p.grid.InBounds(gx, gy) {
		return nil
	}
	if sx == gx && sy == gy {
		return []Point{{X: sx, Y: sy}}
	}

	arena := make([]node, 0, 64)
	start := node{x: sx, y: sy, h: octile(sx, sy, gx, gy), parent: -1}
	start.f = start.h
	arena = append(arena, start)

	open := NewHeap(func(i int32) float64 { return arena[i].f })
	open.Push(0)

	openCells := map[cellKey]int32{{x: sx, y: sy}: 0}
	closed := make(map[cellKey]struct{}, 64)

	for {
		idx, ok := open.PopMin()
		if !ok {
			return nil
		}
		cur := arena[idx]

		if cur.x == gx && cur.y == gy {
			return reconstruct(arena, idx)
		}

		key := cellKey{x: cur.x, y: cur.y}
		if _, seen := closed[key]; seen {
			continue
		}
		closed[key] = struct{}{}
		delete(openCells, key)

		for _, d := range neighborOffsets {
			nx, ny := cur.x+d.dx, cur.y+d.dy
			if !p.grid.Walkable(nx, ny) {
				continue
			}
			nkey := cellKey{x: nx, y: ny}
			if _, seen := closed[nkey]; seen {
				continue
			}

			gCost := cur.g + d.cost
			if existing, inOpen := openCells[nkey]; inOpen {
				if gCost < arena[existing].g {
					arena[existing].g = gCost
					arena[existing].f = gCost + arena[existing].h
					arena[existing].parent = idx
					open.Rescore(existing)
				}
				continue
			}

			next := node{x: nx, y: ny, g: gCost, h: octile(nx, ny, gx, gy), parent: idx}
			next.f = next.g + next.h
			arena = append(arena, next)
			ni := int32(len(arena) - 1)
			openCells[nkey] = ni
			open.Push(ni)
		}
	}
}

// reconstruct walks parent indexes from the goal back to the start, then
// reverses into start-to-goal order.
func reconstruct(arena []node, idx int32) []Point {
	path := make([]Point, 0, 32)
	for i := idx; i >= 0; i = arena[i].parent {
		path = append(path, Point{X: arena[i].x, Y: arena[i].y})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
