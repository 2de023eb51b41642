package orderbook

import "container/heap"

// bookSide is the ordered set of price levels of one side. Both sides share
// this type; only the comparator differs.
type bookSide struct {
	side   Side
	levels map[int64]*priceLevel
	prices *PriceHeap
}

func newBookSide(side Side) *bookSide {
	less := func(i, j int64) bool { return i < j } // min-heap for asks
	if side == BUY {
		less = func(i, j int64) bool { return i > j } // max-heap for bids
	}

	return &bookSide{
		side:   side,
		levels: make(map[int64]*priceLevel),
		prices: NewPriceHeap(less),
	}
}

func (s *bookSide) len() int {
	return len(s.levels)
}

func (s *bookSide) best() (*priceLevel, bool) {
	price, ok := s.prices.Peek()
	if !ok {
		return nil, false
	}
	return s.levels[price], true
}

// removeBest drops the best level. Levels only ever empty out at the top of
// the book, so the heap never needs arbitrary removal.
func (s *bookSide) removeBest() {
	price := heap.Pop(s.prices).(int64)
	delete(s.levels, price)
}

// insert rests o at the tail of its price level, creating the level if needed.
func (s *bookSide) insert(o Order) {
	level, ok := s.levels[o.Price]
	if !ok {
		level = newPriceLevel(o.Price)
		s.levels[o.Price] = level
		heap.Push(s.prices, o.Price)
	}
	level.append(o)
}

// crossedBy reports whether the incoming order may trade at price.
func crossedBy(incoming *Order, price int64) bool {
	if incoming.Type == MARKET {
		return true
	}
	if incoming.Side == BUY {
		return price <= incoming.Price
	}
	return price >= incoming.Price
}

// Level is a read-only view of one price level.
type Level struct {
	Price      int64
	OrderCount int
	TotalQty   int64
	Orders     []Order
}

func (s *bookSide) depth() []Level {
	prices := s.prices.Sorted()
	out := make([]Level, 0, len(prices))
	for _, p := range prices {
		l := s.levels[p]
		out = append(out, Level{
			Price:      p,
			OrderCount: l.len(),
			TotalQty:   l.totalQty,
			Orders:     l.snapshot(),
		})
	}
	return out
}
