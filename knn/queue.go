package knn

import (
	"cmp"
	"slices"
)

// neighbor is one candidate training row paired with its distance.
// Value-based (no pointers) to keep heap operations allocation-free.
type neighbor struct {
	index    uint32
	distance float64
}

// worse reports whether a ranks after b: larger distance, with the larger
// index losing ties so the result never depends on scan order.
func worse(a, b neighbor) bool {
	if a.distance != b.distance {
		return a.distance > b.distance
	}
	return a.index > b.index
}

// neighborQueue is a bounded max-heap holding the closest candidates seen so
// far; the root is the worst of them. It does NOT implement container/heap
// to avoid interface overhead.
type neighborQueue struct {
	items []neighbor
}

func newNeighborQueue(capacity int) *neighborQueue {
	return &neighborQueue{
		items: make([]neighbor, 0, capacity),
	}
}

// pushBounded inserts an item into the bounded heap. If the heap is full and
// the new item is worse than the root, it is skipped; if it is better, the
// root is replaced.
func (q *neighborQueue) pushBounded(item neighbor, capacity int) {
	if len(q.items) < capacity {
		q.items = append(q.items, item)
		q.siftUp(len(q.items) - 1)
		return
	}

	if worse(q.items[0], item) {
		q.items[0] = item
		q.siftDown(0)
	}
}

// len returns the number of elements in the heap.
func (q *neighborQueue) len() int {
	return len(q.items)
}

// sorted returns the held candidates in ascending (distance, index) order.
func (q *neighborQueue) sorted() []neighbor {
	out := slices.Clone(q.items)
	slices.SortFunc(out, func(a, b neighbor) int {
		if a.distance != b.distance {
			return cmp.Compare(a.distance, b.distance)
		}
		return cmp.Compare(a.index, b.index)
	})
	return out
}

// siftUp moves the element at index i up the heap until the heap invariant
// is restored.
func (q *neighborQueue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !worse(q.items[i], q.items[parent]) {
			break
		}
		q.items[i], q.items[parent] = q.items[parent], q.items[i]
		i = parent
	}
}

// siftDown moves the element at index i down the heap until the heap
// invariant is restored.
func (q *neighborQueue) siftDown(i int) {
	n := len(q.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		right := left + 1
		if right < n && worse(q.items[right], q.items[left]) {
			child = right
		}
		if !worse(q.items[child], q.items[i]) {
			break
		}
		q.items[i], q.items[child] = q.items[child], q.items[i]
		i = child
	}
}
