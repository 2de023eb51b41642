// Package benchmark drives a generated order stream through the order book
// and measures throughput.
package benchmark

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/joripage/matching-engine/config"
	"github.com/joripage/matching-engine/pkg/dispatcher"
	"github.com/joripage/matching-engine/pkg/generator"
	"github.com/joripage/matching-engine/pkg/logging"
	"github.com/joripage/matching-engine/pkg/orderbook"
	"github.com/joripage/matching-engine/pkg/report"
	"github.com/joripage/matching-engine/pkg/ticks"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	RunID     string // generated when empty
	Orders    int
	Producers int
	QueueSize int
	Generator generator.Config
}

// OptionsFromConfig converts the decimal prices in cfg to ticks.
func OptionsFromConfig(cfg *config.AppConfig) (Options, error) {
	b := cfg.Benchmark
	base, err := ticks.Parse(b.PriceBase, b.TickSize)
	if err != nil {
		return Options{}, err
	}
	drift, err := ticks.Parse(b.PriceDrift, b.TickSize)
	if err != nil {
		return Options{}, err
	}

	gen := generator.Config{
		Seed:       b.Seed,
		MarketPct:  b.MarketPct,
		PriceBase:  base,
		PriceDrift: drift,
		MaxQty:     b.MaxQty,
	}
	if err := gen.Validate(); err != nil {
		return Options{}, err
	}

	return Options{
		Orders:    b.Orders,
		Producers: b.Producers,
		QueueSize: cfg.Dispatcher.QueueSize,
		Generator: gen,
	}, nil
}

// Run submits opts.Orders generated orders. With one producer the book is
// driven directly; with more, every producer has its own generator (seed
// offset by its index) and submits through a dispatcher.
func Run(ctx context.Context, opts Options) (report.Report, error) {
	if opts.Producers < 1 {
		opts.Producers = 1
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	ctx = logging.WithRunID(ctx, opts.RunID)
	logger, ctx := logging.GetLogger(ctx)
	logger.Info("benchmark started",
		zap.Int("orders", opts.Orders),
		zap.Int("producers", opts.Producers),
		zap.Int64("seed", opts.Generator.Seed),
		zap.Int("market_pct", opts.Generator.MarketPct),
	)

	book := orderbook.NewOrderBook()

	var (
		rejected int
		elapsed  time.Duration
		snap     orderbook.Snapshot
		err      error
	)
	if opts.Producers == 1 {
		rejected, elapsed, err = runDirect(book, opts)
		snap = book.Snapshot()
	} else {
		rejected, elapsed, snap, err = runDispatched(ctx, book, opts)
	}
	if err != nil {
		return report.Report{}, err
	}

	return report.New(opts.RunID, opts.Orders, rejected, opts.Producers, elapsed, snap), nil
}

func runDirect(book *orderbook.OrderBook, opts Options) (int, time.Duration, error) {
	gen, err := generator.New(opts.Generator)
	if err != nil {
		return 0, 0, err
	}

	rejected := 0
	start := time.Now()
	for i := 0; i < opts.Orders; i++ {
		if err := book.Submit(gen.Next()); err != nil {
			if !errors.Is(err, orderbook.ErrInvalidOrder) {
				return rejected, 0, err
			}
			rejected++
		}
	}
	return rejected, time.Since(start), nil
}

func runDispatched(ctx context.Context, book *orderbook.OrderBook, opts Options) (int, time.Duration, orderbook.Snapshot, error) {
	d := dispatcher.New(book, opts.QueueSize)
	d.Start(ctx)
	defer d.Close()

	shares := split(opts.Orders, opts.Producers)
	rejected := make([]int, opts.Producers)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	firstID := uint64(0)
	for i, n := range shares {
		i, n := i, n
		cfg := opts.Generator
		cfg.Seed += int64(i)
		cfg.FirstID = firstID
		firstID += uint64(n)

		gen, err := generator.New(cfg)
		if err != nil {
			return 0, 0, orderbook.Snapshot{}, err
		}

		g.Go(func() error {
			for j := 0; j < n; j++ {
				if err := d.Submit(gctx, gen.Next()); err != nil {
					if !errors.Is(err, orderbook.ErrInvalidOrder) {
						return err
					}
					rejected[i]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, orderbook.Snapshot{}, err
	}
	elapsed := time.Since(start)

	snap, err := d.Snapshot(ctx)
	if err != nil {
		return 0, 0, orderbook.Snapshot{}, err
	}

	total := 0
	for _, r := range rejected {
		total += r
	}
	return total, elapsed, snap, nil
}

// split divides n into parts shares, giving the remainder to the first ones.
func split(n, parts int) []int {
	out := make([]int, parts)
	for i := range out {
		out[i] = n / parts
		if i < n%parts {
			out[i]++
		}
	}
	return out
}
