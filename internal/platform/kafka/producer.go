// Package kafka wraps the franz-go client for event publishing. The
// producer is optional: with no seed brokers configured, New returns nil
// and callers skip publishing.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"docket/internal/platform/config"
)

// Producer publishes records to a single topic.
type Producer struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewProducer connects to the configured brokers. Returns (nil, nil) when
// no brokers are configured.
func NewProducer(cfg config.KafkaConfig, logger *slog.Logger) (*Producer, error) {
	if len(cfg.SeedBrokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.SeedBrokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	return &Producer{client: client, topic: cfg.Topic, logger: logger}, nil
}

// Publish produces one record asynchronously. Delivery failures are
// logged, not returned: event publishing must never fail the operation
// that emitted the event.
func (p *Producer) Publish(ctx context.Context, key, value []byte) {
	if p == nil {
		return
	}
	record := &kgo.Record{Key: key, Value: value}
	p.client.Produce(ctx, record, func(r *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("kafka publish failed",
				"topic", p.topic,
				"key", string(r.Key),
				"error", err,
			)
		}
	})
}

// Close flushes buffered records and releases the client.
func (p *Producer) Close() {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil {
		p.logger.Error("kafka flush on close failed", "error", err)
	}
	p.client.Close()
}
