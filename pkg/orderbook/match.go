package orderbook

// MatchResult describes one drain step: Qty moved from the resting
// CounterOrderID to the incoming OrderID at the resting level's Price.
type MatchResult struct {
	OrderID        uint64
	CounterOrderID uint64
	Price          int64
	Qty            int64
	Side           Side // side of the incoming order
}

// Stats holds the aggregate fill counters of a book.
type Stats struct {
	Trades       uint64 // drain steps that moved quantity
	FilledOrders uint64 // resting orders fully consumed
	FilledQty    int64  // total quantity moved
}

// Snapshot is a point-in-time summary of the book.
type Snapshot struct {
	Stats
	BestBid   int64
	BestAsk   int64
	HasBid    bool
	HasAsk    bool
	BidLevels int
	AskLevels int
}
