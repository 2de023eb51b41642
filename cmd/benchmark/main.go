package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joripage/matching-engine/config"
	"github.com/joripage/matching-engine/pkg/benchmark"
	redis_wrapper "github.com/joripage/matching-engine/pkg/infra/redis"
	kafkawrapper "github.com/joripage/matching-engine/pkg/kafka_wrapper"
	"github.com/joripage/matching-engine/pkg/logging"
	"github.com/joripage/matching-engine/pkg/report"
	"github.com/joripage/matching-engine/pkg/ticks"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run returns the process exit code so deferred cleanup always happens.
func run(args []string, out io.Writer) int {
	var (
		configFile string
		orders     int
		marketPct  int
		producers  int
	)
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	fs.StringVar(&configFile, "config-file", "", "Specify config file path")
	fs.IntVar(&orders, "orders", -1, "Number of orders to submit (overrides config)")
	fs.IntVar(&marketPct, "market-pct", -1, "Percentage of market orders (overrides config)")
	fs.IntVar(&producers, "producers", 0, "Concurrent producers (overrides config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if orders >= 0 {
		cfg.Benchmark.Orders = orders
	}
	if marketPct >= 0 {
		cfg.Benchmark.MarketPct = marketPct
	}
	if producers > 0 {
		cfg.Benchmark.Producers = producers
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		return 1
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logging.INFO
	}
	logger := logging.NewLogger(level)
	restore := logging.SetDefault(logger)
	defer restore()
	defer logger.Sync() // nolint

	configBytes, err := json.MarshalIndent(cfg, "", "   ")
	if err != nil {
		logger.Warn("could not convert config to JSON", zap.Error(err))
	} else {
		logger.Debug("load config", zap.ByteString("config", configBytes))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts, err := benchmark.OptionsFromConfig(cfg)
	if err != nil {
		logger.Error("invalid benchmark config", zap.Error(err))
		return 1
	}
	tickSize, err := decimal.NewFromString(cfg.Benchmark.TickSize)
	if err != nil {
		logger.Error("invalid tick size", zap.Error(err))
		return 1
	}

	sinks, closeSinks, err := buildSinks(cfg.Report)
	if err != nil {
		logger.Error("init report sinks fail", zap.Error(err))
		return 1
	}
	defer closeSinks()

	r, err := benchmark.Run(ctx, opts)
	if err != nil {
		logger.Error("benchmark fail", zap.Error(err))
		return 1
	}

	fmt.Fprintf(out, "Go: processed %d orders in %v\n", r.Orders, r.Elapsed)
	fmt.Fprintf(out, "trades=%d filled_orders=%d filled_qty=%d\n", r.Trades, r.FilledOrders, r.FilledQty)
	fmt.Fprintf(out, "throughput ~ %.0f orders/sec\n", r.Throughput)
	fmt.Fprintf(out, "best_bid=%s best_ask=%s\n", formatPrice(r.BestBid, tickSize), formatPrice(r.BestAsk, tickSize))

	ctx = logging.WithRunID(ctx, r.RunID)
	if err := sinks.Publish(ctx, r); err != nil {
		runLogger, _ := logging.GetLogger(ctx)
		runLogger.Error("publish report fail", zap.Error(err))
		return 1
	}
	return 0
}

func formatPrice(p *int64, tickSize decimal.Decimal) string {
	if p == nil {
		return "-"
	}
	return ticks.FromTicks(*p, tickSize).String()
}

func buildSinks(cfg config.ReportConfig) (report.MultiSink, func(), error) {
	var (
		sinks   report.MultiSink
		closers []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.Log {
		sinks = append(sinks, report.LogSink{})
	}

	if cfg.Redis != nil {
		client, err := redis_wrapper.InitRedisWithBackoff(&cfg.Redis.RedisConfig)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = client.Close() })
		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		sinks = append(sinks, report.NewRedisSink(client, cfg.Redis.KeyPrefix, ttl))
	}

	if cfg.Kafka != nil {
		pc, err := cfg.Kafka.ProducerConfig()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		producer := kafkawrapper.NewProducer(pc)
		closers = append(closers, func() { _ = producer.Close() })
		sinks = append(sinks, report.NewKafkaSink(producer))
	}

	return sinks, closeAll, nil
}
