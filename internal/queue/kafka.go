// Package queue publishes resolved selections to Kafka for downstream
// consumers (model retraining, dashboards).
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"risk_service/internal/domain/model"
)

type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: writer, logger: logger}
}

// PublishResolution emits one resolution keyed by district so that all
// events for a district land on the same partition.
func (p *Publisher) PublishResolution(ctx context.Context, res *model.Resolution) error {
	value, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal resolution: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(res.Prediction.Distrito),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish resolution: %w", err)
	}

	p.logger.Debug("published resolution",
		"distrito", res.Prediction.Distrito,
		"state", res.State,
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
