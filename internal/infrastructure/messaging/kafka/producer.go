// Package kafka publishes analysis completion events for downstream
// display and persistence consumers.
package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/procurelens/ProcureLens/internal/config"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/pkg/errors"
)

// writer abstracts kafka.Writer for testing.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes messages to a single configured topic.
type Producer struct {
	writer writer
	topic  string
	logger logging.Logger
	closed atomic.Bool
}

// NewProducer builds a producer for the configured brokers and topic.
func NewProducer(cfg config.KafkaConfig, log logging.Logger) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return newProducer(w, cfg.Topic, log)
}

func newProducer(w writer, topic string, log logging.Logger) *Producer {
	return &Producer{writer: w, topic: topic, logger: log}
}

// Publish writes one message keyed by key. The key partitions events so all
// events for one contract stay ordered.
func (p *Producer) Publish(ctx context.Context, key string, value []byte) error {
	if p.closed.Load() {
		return errors.New(errors.ErrCodeAnalysisPublish, "producer closed")
	}
	start := time.Now()
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  start,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeAnalysisPublish, "publish event")
	}
	p.logger.Debug("event published",
		logging.String("topic", p.topic),
		logging.String("key", key),
		logging.Duration("took", time.Since(start)),
	)
	return nil
}

// Close flushes and closes the underlying writer. Safe to call twice.
func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}
