// Package publisher pushes refreshed rate snapshots to Kafka so downstream
// dashboards can react without polling the API.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/sendrail/fxrates/internal/rates"
)

const writeTimeout = 5 * time.Second

type RatePublisher struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

func NewRatePublisher(broker, topic string, logger *logrus.Logger) *RatePublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &RatePublisher{writer: writer, logger: logger}
}

// PublishQuote sends one refreshed quote, keyed by instrument so consumers
// read each instrument's updates in order.
func (p *RatePublisher) PublishQuote(ctx context.Context, quote rates.Quote) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("serialize quote failed: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(quote.Instrument),
		Value: data,
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("kafka write failed: %w", err)
	}
	return nil
}

func (p *RatePublisher) Close() error {
	return p.writer.Close()
}
