package orderbook

import "errors"

var (
	// ErrInvalidOrder is returned by Submit when an order fails validation.
	// The book is left untouched.
	ErrInvalidOrder = errors.New("invalid order")

	errInvalidOrderQty   = errors.New("quantity must be positive")
	errInvalidOrderPrice = errors.New("limit price must be positive")
	errInvalidOrderSide  = errors.New("unknown side")
	errInvalidOrderType  = errors.New("unknown order type")
)
