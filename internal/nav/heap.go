package nav

// Heap is a binary min-heap ordered by a caller-supplied scoring function.
// Ties pop in arbitrary order; callers must not depend on it.
type Heap[T comparable] struct {
	items []T
	score func(T) float64
}

// NewHeap creates an empty heap that orders items by score.
func NewHeap[T comparable](score func(T) float64) *Heap[T] {
	return &Heap[T]{score: score}
}

// Len returns the number of queued items.
func (h *Heap[T]) Len() int {
	return len(h.items)
}

// Push inserts an item.
func (h *Heap[T]) Push(item T) {
	h.items = append(h.items, item)
	h.up(len(h.items) - 1)
}

// PopMin removes and returns the lowest-scored item. The second return is
// false when the heap is empty.
func (h *Heap[T]) PopMin() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}
	n := len(h.items) - 1
	h.swap(0, n)
	min := h.items[n]
	h.items[n] = zero // GC
	h.items = h.items[:n]
	if n > 0 {
		h.down(0)
	}
	return min, true
}

// Rescore restores heap order for an item whose score changed after it was
// pushed. The item is located by equality with a linear scan, an accepted
// O(n) cost at the open-set sizes searches here produce. The re-sift works
// in both directions, so scores may move up or down.
func (h *Heap[T]) Rescore(item T) {
	for i := range h.items {
		if h.items[i] == item {
			if !h.up(i) {
				h.down(i)
			}
			return
		}
	}
}

// up sifts the item at i toward the root. Reports whether it moved.
func (h *Heap[T]) up(i int) bool {
	moved := false
	for i > 0 {
		parent := (i - 1) / 2
		if h.score(h.items[i]) >= h.score(h.items[parent]) {
			break
		}
		h.swap(i, parent)
		i = parent
		moved = true
	}
	return moved
}

// down sifts the item at i toward the leaves.
func (h *Heap[T]) down(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		smallest := left
		if right := left + 1; right < n && h.score(h.items[right]) < h.score(h.items[left]) {
			smallest = right
		}
		if h.score(h.items[smallest]) >= h.score(h.items[i]) {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *Heap[T]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}
