// Package heap provides a fixed-capacity binary heap whose items track their
// own position, so an item already in the heap can be re-sorted in O(log n).
package heap

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is the panic value wrapped by Insert when the heap is full.
var ErrCapacityExceeded = errors.New("heap capacity exceeded")

// Item is an element that can live in a MinHeap.
//
// Less reports whether the receiver should sit closer to the root than other.
// The heap owns the index slot while the item is resident and rewrites it on
// every swap.
type Item[T any] interface {
	comparable
	Less(other T) bool
	HeapIndex() int
	SetHeapIndex(i int)
}

// MinHeap is a binary heap ordered by Item.Less.
type MinHeap[T Item[T]] struct {
	items []T
	count int
}

// New creates a heap that can hold up to capacity items.
func New[T Item[T]](capacity int) *MinHeap[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &MinHeap[T]{items: make([]T, capacity)}
}

// Len returns the number of items in the heap.
func (h *MinHeap[T]) Len() int {
	return h.count
}

// Cap returns the fixed capacity.
func (h *MinHeap[T]) Cap() int {
	return len(h.items)
}

// Insert adds an item. Overflowing the preallocated capacity is a
// configuration bug and panics.
func (h *MinHeap[T]) Insert(item T) {
	if h.count >= len(h.items) {
		panic(fmt.Errorf("%w: capacity %d", ErrCapacityExceeded, len(h.items)))
	}
	item.SetHeapIndex(h.count)
	h.items[h.count] = item
	h.count++
	h.siftUp(item)
}

// ExtractTop removes and returns the root item. Callers must check Len first.
func (h *MinHeap[T]) ExtractTop() T {
	if h.count == 0 {
		panic("heap: ExtractTop on empty heap")
	}
	var zero T
	top := h.items[0]
	h.count--
	last := h.items[h.count]
	h.items[h.count] = zero
	top.SetHeapIndex(-1)
	if h.count > 0 {
		last.SetHeapIndex(0)
		h.items[0] = last
		h.siftDown(last)
	}
	return top
}

// Peek returns the root item without removing it.
func (h *MinHeap[T]) Peek() (T, bool) {
	if h.count == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// UpdateItem restores ordering after the item's priority changed in place.
// Improved items rise toward the root; worsened items sink.
func (h *MinHeap[T]) UpdateItem(item T) {
	if !h.Contains(item) {
		return
	}
	start := item.HeapIndex()
	h.siftUp(item)
	if item.HeapIndex() == start {
		h.siftDown(item)
	}
}

// Contains reports whether item is resident. It is O(1) because every
// resident item's index slot matches its array position.
func (h *MinHeap[T]) Contains(item T) bool {
	i := item.HeapIndex()
	return i >= 0 && i < h.count && h.items[i] == item
}

// Reset empties the heap while keeping its backing array.
func (h *MinHeap[T]) Reset() {
	var zero T
	for i := 0; i < h.count; i++ {
		h.items[i].SetHeapIndex(-1)
		h.items[i] = zero
	}
	h.count = 0
}

func (h *MinHeap[T]) siftUp(item T) {
	for {
		i := item.HeapIndex()
		if i == 0 {
			return
		}
		parent := h.items[(i-1)/2]
		if !item.Less(parent) {
			return
		}
		h.swap(item, parent)
	}
}

func (h *MinHeap[T]) siftDown(item T) {
	for {
		i := item.HeapIndex()
		left := 2*i + 1
		right := left + 1
		if left >= h.count {
			return
		}

		best := left
		if right < h.count && h.items[right].Less(h.items[left]) {
			best = right
		}
		if !h.items[best].Less(item) {
			return
		}
		h.swap(item, h.items[best])
	}
}

func (h *MinHeap[T]) swap(a, b T) {
	ia, ib := a.HeapIndex(), b.HeapIndex()
	h.items[ia], h.items[ib] = b, a
	a.SetHeapIndex(ib)
	b.SetHeapIndex(ia)
}
