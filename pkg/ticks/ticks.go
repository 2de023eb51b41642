// Package ticks converts decimal prices to the integer tick prices the order
// book works with.
package ticks

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTickSize = errors.New("tick size must be positive")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrNotTickAligned  = errors.New("price is not a multiple of the tick size")
)

// ToTicks returns price / tickSize. The price must be an exact multiple of
// the tick size.
func ToTicks(price, tickSize decimal.Decimal) (int64, error) {
	if !tickSize.IsPositive() {
		return 0, ErrInvalidTickSize
	}
	if !price.Mod(tickSize).IsZero() {
		return 0, fmt.Errorf("%w: %s / %s", ErrNotTickAligned, price, tickSize)
	}
	return price.Div(tickSize).IntPart(), nil
}

// FromTicks returns ticks * tickSize.
func FromTicks(ticks int64, tickSize decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(ticks).Mul(tickSize)
}

// Parse converts textual price and tick size, e.g. "1000.25" and "0.05".
func Parse(price, tickSize string) (int64, error) {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidPrice, price, err)
	}
	tick, err := decimal.NewFromString(tickSize)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidTickSize, tickSize, err)
	}
	return ToTicks(p, tick)
}
