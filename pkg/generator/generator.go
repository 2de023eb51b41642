// Package generator produces the seeded pseudo-random order stream used to
// drive and benchmark the order book.
package generator

import (
	"errors"
	"math/rand"

	"github.com/joripage/matching-engine/pkg/orderbook"
)

var errInvalidConfig = errors.New("invalid generator config")

type Config struct {
	Seed       int64
	MarketPct  int   // chance in percent that an order is MARKET
	PriceBase  int64 // ticks
	PriceDrift int64 // prices fall in [base-drift, base+drift]
	MaxQty     int64 // quantities fall in [1, MaxQty]
	FirstID    uint64
}

func DefaultConfig() Config {
	return Config{
		Seed:       42,
		MarketPct:  10,
		PriceBase:  100_000,
		PriceDrift: 5_000,
		MaxQty:     3,
	}
}

func (c Config) Validate() error {
	switch {
	case c.MarketPct < 0 || c.MarketPct > 100:
		return errors.Join(errInvalidConfig, errors.New("market pct must be within [0, 100]"))
	case c.PriceDrift < 0 || c.PriceBase-c.PriceDrift <= 0:
		return errors.Join(errInvalidConfig, errors.New("price range must stay positive"))
	case c.MaxQty <= 0:
		return errors.Join(errInvalidConfig, errors.New("max qty must be positive"))
	}
	return nil
}

// Generator is deterministic for a given Config. The draw order (side, type,
// drift, qty) and the rand calls used for each draw are fixed so that the
// default config yields the same stream as the reference bench driver.
// It is not safe for concurrent use; give each producer its own Generator.
type Generator struct {
	cfg    Config
	rng    *rand.Rand
	nextID uint64
}

func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		nextID: cfg.FirstID,
	}, nil
}

func (g *Generator) Next() orderbook.Order {
	side := orderbook.BUY
	if g.rng.Float64() < 0.5 {
		side = orderbook.SELL
	}
	typ := orderbook.LIMIT
	if g.rng.Intn(100) < g.cfg.MarketPct {
		typ = orderbook.MARKET
	}
	drift := g.rng.Int63n(2*g.cfg.PriceDrift+1) - g.cfg.PriceDrift

	o := orderbook.Order{
		ID:    g.nextID,
		Side:  side,
		Type:  typ,
		Price: g.cfg.PriceBase + drift,
		Qty:   int64(g.rng.Intn(int(g.cfg.MaxQty))) + 1,
	}
	g.nextID++
	return o
}
