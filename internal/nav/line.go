package nav

// lineIterator steps through grid cells along a line using integer error
// terms on the dominant axis.
type lineIterator struct {
	curX, curY     int
	tgtX, tgtY     int
	deltaX, deltaY int
	stepX, stepY   int
	errAcc         int
	xDominant      bool
	started        bool
}

func newLineIterator(sx, sy, ex, ey int) *lineIterator {
	it := &lineIterator{curX: sx, curY: sy, tgtX: ex, tgtY: ey}

	it.deltaX = absInt(ex - sx)
	it.deltaY = absInt(ey - sy)

	if sx < ex {
		it.stepX = 1
	} else {
		it.stepX = -1
	}
	if sy < ey {
		it.stepY = 1
	} else {
		it.stepY = -1
	}

	it.xDominant = it.deltaX >= it.deltaY
	if it.xDominant {
		it.errAcc = it.deltaX / 2
	} else {
		it.errAcc = it.deltaY / 2
	}
	return it
}

// next advances to the next cell. Returns false once the target has been
// yielded.
func (it *lineIterator) next() bool {
	if !it.started {
		it.started = true
		return true
	}
	if it.curX == it.tgtX && it.curY == it.tgtY {
		return false
	}

	if it.xDominant {
		it.curX += it.stepX
		it.errAcc += it.deltaY
		if it.errAcc >= it.deltaX {
			it.curY += it.stepY
			it.errAcc -= it.deltaX
		}
	} else {
		it.curY += it.stepY
		it.errAcc += it.deltaX
		if it.errAcc >= it.deltaY {
			it.curX += it.stepX
			it.errAcc -= it.deltaY
		}
	}
	return true
}

// LineWalkable reports whether every cell on the rasterized segment from a
// to b is walkable.
func LineWalkable(g *Grid, a, b Point) bool {
	it := newLineIterator(a.X, a.Y, b.X, b.Y)
	for it.next() {
		if !g.Walkable(it.curX, it.curY) {
			return false
		}
	}
	return true
}

// Smooth removes intermediate waypoints a straight walkable line can skip.
// Endpoints are preserved. Runs up to 3 passes to progressively simplify
// the path.
func Smooth(g *Grid, path []Point) []Point {
	for range 3 {
		if len(path) <= 2 {
			return path
		}

		changed := false
		smoothed := make([]Point, 0, len(path))
		smoothed = append(smoothed, path[0])

		for i := 1; i < len(path)-1; i++ {
			prev := smoothed[len(smoothed)-1]
			next := path[i+1]
			if LineWalkable(g, prev, next) {
				changed = true
				continue
			}
			smoothed = append(smoothed, path[i])
		}
		smoothed = append(smoothed, path[len(path)-1])
		path = smoothed

		if !changed {
			break
		}
	}
	return path
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
