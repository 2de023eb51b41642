package orderbook

import "slices"

// PriceHeap implements heap.Interface over price ticks. The less func picks
// the best price: ascending for asks, descending for bids. Uniqueness is the
// caller's job; bookSide only pushes a price when it opens a new level.
type PriceHeap struct {
	prices []int64
	less   func(a, b int64) bool
}

func NewPriceHeap(less func(a, b int64) bool) *PriceHeap {
	return &PriceHeap{less: less}
}

func (h PriceHeap) Len() int           { return len(h.prices) }
func (h PriceHeap) Less(i, j int) bool { return h.less(h.prices[i], h.prices[j]) }
func (h PriceHeap) Swap(i, j int)      { h.prices[i], h.prices[j] = h.prices[j], h.prices[i] }

func (h *PriceHeap) Push(x any) {
	h.prices = append(h.prices, x.(int64))
}

func (h *PriceHeap) Pop() any {
	last := len(h.prices) - 1
	price := h.prices[last]
	h.prices = h.prices[:last]
	return price
}

// Peek returns the best price without removing it.
func (h *PriceHeap) Peek() (int64, bool) {
	if len(h.prices) == 0 {
		return 0, false
	}
	return h.prices[0], true
}

// Sorted returns a copy of the prices ordered best first.
func (h *PriceHeap) Sorted() []int64 {
	out := slices.Clone(h.prices)
	slices.SortFunc(out, func(a, b int64) int {
		switch {
		case h.less(a, b):
			return -1
		case h.less(b, a):
			return 1
		}
		return 0
	})
	return out
}
