// Package kafkawrapper publishes JSON documents to a single Kafka topic.
package kafkawrapper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	kafka "github.com/segmentio/kafka-go"
)

var (
	errProducerNotInitialized = errors.New("producer not initialized")
	ErrInvalidRequiredAcks    = errors.New("required acks must be one of none, one, all")
)

type ProducerConfig struct {
	Brokers      []string
	Topic        string
	RequiredAcks kafka.RequiredAcks
	Async        bool
	BatchSize    int           // 0 flushes every message
	BatchTimeout time.Duration // 0 keeps the kafka-go default
}

// ParseRequiredAcks maps "none", "one" and "all" to kafka.RequiredAcks.
// An empty string means "one".
func ParseRequiredAcks(s string) (kafka.RequiredAcks, error) {
	switch strings.ToLower(s) {
	case "", "one":
		return kafka.RequireOne, nil
	case "none":
		return kafka.RequireNone, nil
	case "all":
		return kafka.RequireAll, nil
	}
	return kafka.RequireOne, fmt.Errorf("%w: %q", ErrInvalidRequiredAcks, s)
}

type Producer struct {
	w *kafka.Writer
}

func NewProducer(cfg ProducerConfig) *Producer {
	return &Producer{w: newWriter(cfg)}
}

func newWriter(cfg ProducerConfig) *kafka.Writer {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{}, // same key, same partition
		BatchSize:              batchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           cfg.RequiredAcks,
		Async:                  cfg.Async,
		AllowAutoTopicCreation: true,
	}
}

func (p *Producer) Topic() string {
	if p == nil || p.w == nil {
		return ""
	}
	return p.w.Topic
}

// PublishJSON marshals v and writes it under key. In async mode the call
// returns before the broker acknowledges; Close flushes.
func (p *Producer) PublishJSON(ctx context.Context, key string, v any, headers map[string]string) error {
	if p == nil || p.w == nil {
		return errProducerNotInitialized
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	msg := kafka.Message{Key: []byte(key), Value: b, Time: time.Now()}
	for k, val := range headers {
		msg.Headers = append(msg.Headers, kafka.Header{Key: k, Value: []byte(val)})
	}
	return p.w.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error {
	if p == nil || p.w == nil {
		return nil
	}
	return p.w.Close()
}
