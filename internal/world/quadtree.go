package world

import (
	"log/slog"

	"github.com/grebnov/neoncity/internal/model"
)

// Node capacity and depth limits for the spatial index.
const (
	maxObjects = 10
	maxLevels  = 5
)

// Object is anything the spatial index can hold.
type Object interface {
	Bounds() model.Rect
}

// Quadtree indexes world objects by axis-aligned bounds for rectangular
// range queries. A full node splits into four equal quadrants; objects whose
// bounds straddle a quadrant boundary stay at the node that split. There is
// no removal: when the underlying set changes materially the index is
// rebuilt wholesale via Clear and re-insertion.
type Quadtree struct {
	level    int
	bounds   model.Rect
	objects  []Object
	children [4]*Quadtree
}

// NewQuadtree creates an empty index spanning the given world bounds.
func NewQuadtree(bounds model.Rect) *Quadtree {
	return &Quadtree{bounds: bounds}
}

// Insert adds an object to the index. Nil objects and tiles without a type
// are logged and skipped so one bad cell cannot break a whole generation
// pass.
func (q *Quadtree) Insert(o Object) {
	if o == nil {
		slog.Warn("spatial index: skipping nil object")
		return
	}
	if t, ok := o.(*model.Tile); ok && !t.Valid() {
		slog.Warn("spatial index: skipping invalid tile")
		return
	}
	q.insert(o)
}

func (q *Quadtree) insert(o Object) {
	if q.children[0] != nil {
		if c := q.childFor(o.Bounds()); c != nil {
			c.insert(o)
			return
		}
	}

	q.objects = append(q.objects, o)

	if len(q.objects) > maxObjects && q.level < maxLevels && q.children[0] == nil {
		q.split()
	}
}

// split subdivides the node into four quadrants and pushes down every object
// that fits entirely inside one of them.
func (q *Quadtree) split() {
	hw := q.bounds.W / 2
	hh := q.bounds.H / 2
	x := q.bounds.X
	y := q.bounds.Y

	q.children[0] = &Quadtree{level: q.level + 1, bounds: model.NewRect(x, y, hw, hh)}
	q.children[1] = &Quadtree{level: q.level + 1, bounds: model.NewRect(x+hw, y, hw, hh)}
	q.children[2] = &Quadtree{level: q.level + 1, bounds: model.NewRect(x, y+hh, hw, hh)}
	q.children[3] = &Quadtree{level: q.level + 1, bounds: model.NewRect(x+hw, y+hh, hw, hh)}

	kept := q.objects[:0]
	for _, o := range q.objects {
		if c := q.childFor(o.Bounds()); c != nil {
			c.insert(o)
		} else {
			kept = append(kept, o)
		}
	}
	q.objects = kept
}

// childFor returns the child whose bounds fully contain r, or nil when r
// straddles a quadrant boundary.
func (q *Quadtree) childFor(r model.Rect) *Quadtree {
	for _, c := range q.children {
		if c != nil && c.bounds.Contains(r) {
			return c
		}
	}
	return nil
}

// Query returns every indexed object whose bounds intersect r, pruning
// subtrees whose node bounds do not. Edge contact counts as intersection.
// Callers get the original objects, never index internals.
func (q *Quadtree) Query(r model.Rect) []Object {
	return q.query(r, nil)
}

func (q *Quadtree) query(r model.Rect, out []Object) []Object {
	if !q.bounds.Intersects(r) {
		return out
	}
	for _, o := range q.objects {
		if o.Bounds().Intersects(r) {
			out = append(out, o)
		}
	}
	for _, c := range q.children {
		if c != nil {
			out = c.query(r, out)
		}
	}
	return out
}

// Clear drops every object and child, restoring an empty tree over the
// original world bounds.
func (q *Quadtree) Clear() {
	q.objects = nil
	q.children = [4]*Quadtree{}
}

// Len returns the number of indexed objects.
func (q *Quadtree) Len() int {
	n := len(q.objects)
	for _, c := range q.children {
		if c != nil {
			n += c.Len()
		}
	}
	return n
}
