// file: pkg/orderbook/orderbook.go

package orderbook

import (
	"go.uber.org/zap"
)

// OrderBook is a single-instrument limit order book matching under
// price-time priority. It is not safe for concurrent use; see
// pkg/dispatcher for a single-writer front end.
type OrderBook struct {
	asks *bookSide
	bids *bookSide

	nextSeq uint64
	stats   Stats

	callbacks []func([]MatchResult)
	results   []MatchResult // reused between submits
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		asks: newBookSide(SELL),
		bids: newBookSide(BUY),
	}
}

// RegisterTradeCallback adds fn to the observers called after every Submit
// that produced at least one fill. The slice is only valid during the call
// and fn must not call Submit.
func (ob *OrderBook) RegisterTradeCallback(fn func(results []MatchResult)) {
	ob.callbacks = append(ob.callbacks, fn)
}

// Submit validates order, matches it against the contra side and rests any
// LIMIT remainder. An unmatched MARKET remainder is dropped. On a validation
// error the book is not modified.
func (ob *OrderBook) Submit(order Order) error {
	if err := order.validate(); err != nil {
		zap.S().Debugw("reject order", "id", order.ID, "err", err)
		return err
	}

	ob.nextSeq++
	order.Seq = ob.nextSeq

	var emit func(MatchResult)
	if len(ob.callbacks) > 0 {
		ob.results = ob.results[:0]
		emit = func(r MatchResult) { ob.results = append(ob.results, r) }
	}

	ob.matchOrder(&order, ob.side(order.Side.contra()), emit)

	if order.Qty > 0 && order.Type == LIMIT {
		ob.side(order.Side).insert(order)
	}

	if len(ob.results) > 0 {
		for _, cb := range ob.callbacks {
			cb(ob.results)
		}
		ob.results = ob.results[:0]
	}

	return nil
}

func (ob *OrderBook) matchOrder(order *Order, counter *bookSide, emit func(MatchResult)) {
	for order.Qty > 0 {
		best, ok := counter.best()
		if !ok || !crossedBy(order, best.price) {
			return
		}

		best.fill(order, &ob.stats, emit)

		if best.len() == 0 {
			counter.removeBest()
		}
	}
}

func (ob *OrderBook) side(s Side) *bookSide {
	if s == BUY {
		return ob.bids
	}
	return ob.asks
}

func (ob *OrderBook) Trades() uint64 {
	return ob.stats.Trades
}

func (ob *OrderBook) FilledOrders() uint64 {
	return ob.stats.FilledOrders
}

func (ob *OrderBook) FilledQty() int64 {
	return ob.stats.FilledQty
}

func (ob *OrderBook) Stats() Stats {
	return ob.stats
}

// BestBid returns the highest resting bid price.
func (ob *OrderBook) BestBid() (int64, bool) {
	return ob.bids.prices.Peek()
}

// BestAsk returns the lowest resting ask price.
func (ob *OrderBook) BestAsk() (int64, bool) {
	return ob.asks.prices.Peek()
}

// Len returns the number of price levels on side s.
func (ob *OrderBook) Len(s Side) int {
	return ob.side(s).len()
}

// Depth returns the levels of side s ordered best first, with copies of the
// resting orders.
func (ob *OrderBook) Depth(s Side) []Level {
	return ob.side(s).depth()
}

func (ob *OrderBook) Snapshot() Snapshot {
	s := Snapshot{
		Stats:     ob.stats,
		BidLevels: ob.bids.len(),
		AskLevels: ob.asks.len(),
	}
	s.BestBid, s.HasBid = ob.BestBid()
	s.BestAsk, s.HasAsk = ob.BestAsk()
	return s
}
