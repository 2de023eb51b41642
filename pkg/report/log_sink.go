package report

import (
	"context"

	"github.com/joripage/matching-engine/pkg/logging"
	"go.uber.org/zap"
)

type LogSink struct{}

func (LogSink) Publish(ctx context.Context, r Report) error {
	logger, _ := logging.GetLogger(ctx)
	fields := []zap.Field{
		zap.Int("orders", r.Orders),
		zap.Int("rejected", r.Rejected),
		zap.Int("producers", r.Producers),
		zap.Duration("elapsed", r.Elapsed),
		zap.Float64("throughput", r.Throughput),
		zap.Uint64("trades", r.Trades),
		zap.Uint64("filled_orders", r.FilledOrders),
		zap.Int64("filled_qty", r.FilledQty),
		zap.Int("bid_levels", r.BidLevels),
		zap.Int("ask_levels", r.AskLevels),
	}
	if r.BestBid != nil {
		fields = append(fields, zap.Int64("best_bid", *r.BestBid))
	}
	if r.BestAsk != nil {
		fields = append(fields, zap.Int64("best_ask", *r.BestAsk))
	}
	logger.Info("benchmark finished", fields...)
	return nil
}
