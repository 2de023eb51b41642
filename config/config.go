package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	redis_wrapper "github.com/joripage/matching-engine/pkg/infra/redis"
	kafkawrapper "github.com/joripage/matching-engine/pkg/kafka_wrapper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	ServiceName string           `yaml:"service_name"`
	LogLevel    string           `yaml:"log_level"`
	Benchmark   BenchmarkConfig  `yaml:"benchmark"`
	Dispatcher  DispatcherConfig `yaml:"dispatcher"`
	Report      ReportConfig     `yaml:"report"`
}

type BenchmarkConfig struct {
	Orders     int    `yaml:"orders"`
	Producers  int    `yaml:"producers"`
	Seed       int64  `yaml:"seed"`
	MarketPct  int    `yaml:"market_pct"`
	TickSize   string `yaml:"tick_size"`
	PriceBase  string `yaml:"price_base"`  // decimal, multiple of tick_size
	PriceDrift string `yaml:"price_drift"` // decimal, multiple of tick_size
	MaxQty     int64  `yaml:"max_qty"`
}

type DispatcherConfig struct {
	QueueSize int `yaml:"queue_size"`
}

type ReportConfig struct {
	Log   bool               `yaml:"log"`
	Redis *RedisReportConfig `yaml:"redis"`
	Kafka *KafkaReportConfig `yaml:"kafka"`
}

type RedisReportConfig struct {
	redis_wrapper.RedisConfig `yaml:",inline"`
	KeyPrefix                 string `yaml:"key_prefix"`
	TTLSeconds                int    `yaml:"ttl_seconds"`
}

type KafkaReportConfig struct {
	Brokers        []string `yaml:"brokers"`
	Topic          string   `yaml:"topic"`
	RequiredAcks   string   `yaml:"required_acks"` // none, one, all
	Async          bool     `yaml:"async"`
	BatchSize      int      `yaml:"batch_size"`
	BatchTimeoutMs int      `yaml:"batch_timeout_ms"`
}

// ProducerConfig maps the report settings onto the kafka producer.
func (k *KafkaReportConfig) ProducerConfig() (kafkawrapper.ProducerConfig, error) {
	acks, err := kafkawrapper.ParseRequiredAcks(k.RequiredAcks)
	if err != nil {
		return kafkawrapper.ProducerConfig{}, err
	}
	return kafkawrapper.ProducerConfig{
		Brokers:      k.Brokers,
		Topic:        k.Topic,
		RequiredAcks: acks,
		Async:        k.Async,
		BatchSize:    k.BatchSize,
		BatchTimeout: time.Duration(k.BatchTimeoutMs) * time.Millisecond,
	}, nil
}

var errInvalidConfig = errors.New("invalid config")

// Default mirrors the reference benchmark: 3M orders, 10% market, seed 42,
// prices 100000 +/- 5000 ticks, quantities 1..3.
func Default() *AppConfig {
	return &AppConfig{
		ServiceName: "matching-engine",
		LogLevel:    "info",
		Benchmark: BenchmarkConfig{
			Orders:     3_000_000,
			Producers:  1,
			Seed:       42,
			MarketPct:  10,
			TickSize:   "1",
			PriceBase:  "100000",
			PriceDrift: "5000",
			MaxQty:     3,
		},
		Dispatcher: DispatcherConfig{QueueSize: 1 << 16},
		Report:     ReportConfig{Log: true},
	}
}

// Load load config from file and environment variables. Values missing from
// the file keep their defaults.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	cfg := Default()
	if len(filePath) == 0 {
		zap.S().Debug("no config file, using defaults")
		return cfg, nil
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, fmt.Errorf("read config %s: %w", filePath, err)
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, fmt.Errorf("parse config %s: %w", filePath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}

func (c *AppConfig) Validate() error {
	b := c.Benchmark
	switch {
	case b.Orders < 0:
		return fmt.Errorf("%w: benchmark.orders must not be negative", errInvalidConfig)
	case b.Producers < 1:
		return fmt.Errorf("%w: benchmark.producers must be at least 1", errInvalidConfig)
	case b.MarketPct < 0 || b.MarketPct > 100:
		return fmt.Errorf("%w: benchmark.market_pct must be within [0, 100]", errInvalidConfig)
	case b.MaxQty < 1:
		return fmt.Errorf("%w: benchmark.max_qty must be at least 1", errInvalidConfig)
	}
	if r := c.Report.Redis; r != nil && r.ConnectionURL == "" {
		return fmt.Errorf("%w: report.redis.connection_url is required", errInvalidConfig)
	}
	if k := c.Report.Kafka; k != nil {
		if len(k.Brokers) == 0 || k.Topic == "" {
			return fmt.Errorf("%w: report.kafka needs brokers and topic", errInvalidConfig)
		}
		if k.BatchSize < 0 || k.BatchTimeoutMs < 0 {
			return fmt.Errorf("%w: report.kafka batch settings must not be negative", errInvalidConfig)
		}
		if _, err := kafkawrapper.ParseRequiredAcks(k.RequiredAcks); err != nil {
			return fmt.Errorf("%w: report.kafka: %w", errInvalidConfig, err)
		}
	}
	return nil
}
