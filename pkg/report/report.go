// Package report publishes the summary of a benchmark run.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/joripage/matching-engine/pkg/orderbook"
)

type Report struct {
	RunID        string        `json:"run_id"`
	Orders       int           `json:"orders"`
	Rejected     int           `json:"rejected"`
	Producers    int           `json:"producers"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	Throughput   float64       `json:"throughput"` // orders per second
	Trades       uint64        `json:"trades"`
	FilledOrders uint64        `json:"filled_orders"`
	FilledQty    int64         `json:"filled_qty"`
	BidLevels    int           `json:"bid_levels"`
	AskLevels    int           `json:"ask_levels"`
	BestBid      *int64        `json:"best_bid,omitempty"`
	BestAsk      *int64        `json:"best_ask,omitempty"`
}

// New builds a report from the final book snapshot.
func New(runID string, orders, rejected, producers int, elapsed time.Duration, snap orderbook.Snapshot) Report {
	r := Report{
		RunID:        runID,
		Orders:       orders,
		Rejected:     rejected,
		Producers:    producers,
		Elapsed:      elapsed,
		Trades:       snap.Trades,
		FilledOrders: snap.FilledOrders,
		FilledQty:    snap.FilledQty,
		BidLevels:    snap.BidLevels,
		AskLevels:    snap.AskLevels,
	}
	if elapsed > 0 {
		r.Throughput = float64(orders) / elapsed.Seconds()
	}
	if snap.HasBid {
		bid := snap.BestBid
		r.BestBid = &bid
	}
	if snap.HasAsk {
		ask := snap.BestAsk
		r.BestAsk = &ask
	}
	return r
}

type Sink interface {
	Publish(ctx context.Context, r Report) error
}

// MultiSink publishes to every sink and joins their errors.
type MultiSink []Sink

func (m MultiSink) Publish(ctx context.Context, r Report) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
