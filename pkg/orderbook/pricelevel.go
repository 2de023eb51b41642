package orderbook

import "github.com/gammazero/deque"

// priceLevel is the FIFO queue of resting orders at one side and price.
// Orders are held by value, so the queue is their only owner.
type priceLevel struct {
	price    int64
	orders   deque.Deque[Order]
	totalQty int64
}

func newPriceLevel(price int64) *priceLevel {
	return &priceLevel{price: price}
}

func (l *priceLevel) len() int {
	return l.orders.Len()
}

func (l *priceLevel) append(o Order) {
	l.orders.PushBack(o)
	l.totalQty += o.Qty
}

// fill drains the queue head first against incoming until either side is
// exhausted. A partially filled head stays at the front.
func (l *priceLevel) fill(incoming *Order, stats *Stats, emit func(MatchResult)) {
	for incoming.Qty > 0 && l.orders.Len() > 0 {
		head := l.orders.PopFront()

		traded := min(incoming.Qty, head.Qty)
		incoming.Qty -= traded
		head.Qty -= traded
		l.totalQty -= traded

		stats.Trades++
		stats.FilledQty += traded

		if emit != nil {
			emit(MatchResult{
				OrderID:        incoming.ID,
				CounterOrderID: head.ID,
				Price:          l.price,
				Qty:            traded,
				Side:           incoming.Side,
			})
		}

		if head.Qty > 0 {
			l.orders.PushFront(head)
			return
		}
		stats.FilledOrders++
	}
}

// snapshot copies the resting orders in queue order.
func (l *priceLevel) snapshot() []Order {
	out := make([]Order, l.orders.Len())
	for i := range out {
		out[i] = l.orders.At(i)
	}
	return out
}
