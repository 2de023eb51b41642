package report

import (
	"context"
	"fmt"
)

type jsonPublisher interface {
	PublishJSON(ctx context.Context, key string, v any, headers map[string]string) error
	Topic() string
}

// KafkaSink publishes each report as JSON keyed by run id.
type KafkaSink struct {
	producer jsonPublisher
}

func NewKafkaSink(producer jsonPublisher) *KafkaSink {
	return &KafkaSink{producer: producer}
}

func (s *KafkaSink) Publish(ctx context.Context, r Report) error {
	headers := map[string]string{"type": "benchmark_report"}
	if err := s.producer.PublishJSON(ctx, r.RunID, r, headers); err != nil {
		return fmt.Errorf("kafka publish %s: %w", s.producer.Topic(), err)
	}
	return nil
}
