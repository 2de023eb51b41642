package orderbook

import (
	"container/heap"
	"testing"
)

func TestPriceHeapMinMax(t *testing.T) {
	minHeap := NewPriceHeap(func(i, j int64) bool { return i < j })
	maxHeap := NewPriceHeap(func(i, j int64) bool { return i > j })

	for _, p := range []int64{105, 101, 103, 110} {
		heap.Push(minHeap, p)
		heap.Push(maxHeap, p)
	}

	if p, _ := minHeap.Peek(); p != 101 {
		t.Fatalf("expected min 101, got %d", p)
	}
	if p, _ := maxHeap.Peek(); p != 110 {
		t.Fatalf("expected max 110, got %d", p)
	}

	var popped []int64
	for minHeap.Len() > 0 {
		popped = append(popped, heap.Pop(minHeap).(int64))
	}
	want := []int64{101, 103, 105, 110}
	for i := range want {
		if popped[i] != want[i] {
			t.Fatalf("expected pop order %v, got %v", want, popped)
		}
	}
	if _, ok := minHeap.Peek(); ok {
		t.Fatalf("expected empty heap")
	}
}

func TestPriceHeapSorted(t *testing.T) {
	h := NewPriceHeap(func(i, j int64) bool { return i > j })
	for _, p := range []int64{3, 9, 1, 7} {
		heap.Push(h, p)
	}

	got := h.Sorted()
	want := []int64{9, 7, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if p, _ := h.Peek(); p != 9 {
		t.Fatalf("Sorted must not disturb the heap, peek=%d", p)
	}
}

func TestBookSideOneHeapEntryPerLevel(t *testing.T) {
	s := newBookSide(SELL)
	for i, p := range []int64{101, 100, 101, 100, 102} {
		s.insert(Order{ID: uint64(i), Side: SELL, Type: LIMIT, Price: p, Qty: 1})
	}

	if s.prices.Len() != 3 || s.len() != 3 {
		t.Fatalf("expected 3 prices and 3 levels, got %d and %d", s.prices.Len(), s.len())
	}
	if best, _ := s.best(); best.price != 100 || best.len() != 2 {
		t.Fatalf("expected best level 100 with 2 orders, got %d with %d", best.price, best.len())
	}

	s.removeBest()
	if p, _ := s.prices.Peek(); p != 101 {
		t.Fatalf("expected 101 after removing best, got %d", p)
	}
	if _, ok := s.levels[100]; ok {
		t.Fatalf("removed level still indexed")
	}
}
