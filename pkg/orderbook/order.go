package orderbook

import "fmt"

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

func (s Side) valid() bool {
	return s == BUY || s == SELL
}

type OrderType string

const (
	LIMIT  OrderType = "LIMIT"
	MARKET OrderType = "MARKET"
)

func (t OrderType) valid() bool {
	return t == LIMIT || t == MARKET
}

// Order is one buy/sell instruction. Price is expressed in ticks and is
// ignored for MARKET orders. Qty is reduced in place while matching.
type Order struct {
	ID    uint64
	Side  Side
	Type  OrderType
	Price int64
	Qty   int64
	Seq   uint64 // assigned by the book on submit
}

func (o *Order) validate() error {
	if !o.Side.valid() {
		return fmt.Errorf("%w: %w %q", ErrInvalidOrder, errInvalidOrderSide, o.Side)
	}
	if !o.Type.valid() {
		return fmt.Errorf("%w: %w %q", ErrInvalidOrder, errInvalidOrderType, o.Type)
	}
	if o.Qty <= 0 {
		return fmt.Errorf("%w: %w, got %d", ErrInvalidOrder, errInvalidOrderQty, o.Qty)
	}
	if o.Type == LIMIT && o.Price <= 0 {
		return fmt.Errorf("%w: %w, got %d", ErrInvalidOrder, errInvalidOrderPrice, o.Price)
	}
	return nil
}

// contra returns the side an order of side s trades against.
func (s Side) contra() Side {
	if s == BUY {
		return SELL
	}
	return BUY
}
