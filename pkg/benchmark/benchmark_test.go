package benchmark

import (
	"context"
	"testing"

	"github.com/joripage/matching-engine/config"
	"github.com/joripage/matching-engine/pkg/generator"
	"github.com/joripage/matching-engine/pkg/orderbook"
	"github.com/joripage/matching-engine/pkg/ticks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallOptions(producers int) Options {
	return Options{
		RunID:     "test-run",
		Orders:    20_000,
		Producers: producers,
		QueueSize: 128,
		Generator: generator.DefaultConfig(),
	}
}

func TestRunDirectIsDeterministic(t *testing.T) {
	a, err := Run(context.Background(), smallOptions(1))
	require.NoError(t, err)
	b, err := Run(context.Background(), smallOptions(1))
	require.NoError(t, err)

	assert.Equal(t, "test-run", a.RunID)
	assert.Equal(t, 20_000, a.Orders)
	assert.Zero(t, a.Rejected)
	assert.Positive(t, a.Trades)
	assert.Equal(t, a.Trades, b.Trades)
	assert.Equal(t, a.FilledOrders, b.FilledOrders)
	assert.Equal(t, a.FilledQty, b.FilledQty)
}

func TestRunDirectMatchesManualReplay(t *testing.T) {
	opts := smallOptions(1)
	got, err := Run(context.Background(), opts)
	require.NoError(t, err)

	gen, err := generator.New(opts.Generator)
	require.NoError(t, err)
	book := orderbook.NewOrderBook()
	for i := 0; i < opts.Orders; i++ {
		require.NoError(t, book.Submit(gen.Next()))
	}

	assert.Equal(t, book.Trades(), got.Trades)
	assert.Equal(t, book.FilledQty(), got.FilledQty)
	assert.Equal(t, book.Len(orderbook.BUY), got.BidLevels)
}

func TestRunDispatched(t *testing.T) {
	got, err := Run(context.Background(), smallOptions(4))
	require.NoError(t, err)

	assert.Equal(t, 4, got.Producers)
	assert.Zero(t, got.Rejected)
	assert.Positive(t, got.Trades)
	assert.LessOrEqual(t, got.FilledOrders, got.Trades)
	if got.BestBid != nil && got.BestAsk != nil {
		assert.Less(t, *got.BestBid, *got.BestAsk)
	}
}

func TestRunGeneratesRunID(t *testing.T) {
	opts := smallOptions(1)
	opts.RunID = ""
	opts.Orders = 10
	got, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.NotEmpty(t, got.RunID)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Benchmark.TickSize = "0.01"
	cfg.Benchmark.PriceBase = "1000.00"
	cfg.Benchmark.PriceDrift = "50.00"

	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), opts.Generator.PriceBase)
	assert.Equal(t, int64(5_000), opts.Generator.PriceDrift)
	assert.Equal(t, cfg.Dispatcher.QueueSize, opts.QueueSize)

	cfg.Benchmark.PriceBase = "1000.005"
	_, err = OptionsFromConfig(cfg)
	assert.ErrorIs(t, err, ticks.ErrNotTickAligned)
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []int{4, 3, 3}, split(10, 3))
	assert.Equal(t, []int{0, 0}, split(0, 2))
}
