package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// hashWriter is the part of redis.Cmdable the sink needs.
type hashWriter interface {
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisSink stores each report as a hash under <prefix>:<run id>.
type RedisSink struct {
	client hashWriter
	prefix string
	ttl    time.Duration
}

func NewRedisSink(client hashWriter, prefix string, ttl time.Duration) *RedisSink {
	if prefix == "" {
		prefix = "benchmark"
	}
	return &RedisSink{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisSink) Key(runID string) string {
	return fmt.Sprintf("%s:%s", s.prefix, runID)
}

func (s *RedisSink) Publish(ctx context.Context, r Report) error {
	key := s.Key(r.RunID)
	values := map[string]interface{}{
		"orders":        r.Orders,
		"rejected":      r.Rejected,
		"producers":     r.Producers,
		"elapsed_ns":    int64(r.Elapsed),
		"throughput":    strconv.FormatFloat(r.Throughput, 'f', 0, 64),
		"trades":        r.Trades,
		"filled_orders": r.FilledOrders,
		"filled_qty":    r.FilledQty,
		"bid_levels":    r.BidLevels,
		"ask_levels":    r.AskLevels,
	}
	if r.BestBid != nil {
		values["best_bid"] = *r.BestBid
	}
	if r.BestAsk != nil {
		values["best_ask"] = *r.BestAsk
	}

	if err := s.client.HSet(ctx, key, values).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", key, err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("redis expire %s: %w", key, err)
		}
	}
	return nil
}
