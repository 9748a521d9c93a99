package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	orderTopic = "order-events"
	stockTopic = "stock-events"
)

type KafkaProducer struct {
	orderWriter *kafka.Writer
	stockWriter *kafka.Writer
	logger      *zap.Logger
}

func NewKafkaProducer(brokers string, logger *zap.Logger) *KafkaProducer {
	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:         kafka.TCP(brokers),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		}
	}

	return &KafkaProducer{
		orderWriter: newWriter(orderTopic),
		stockWriter: newWriter(stockTopic),
		logger:      logger,
	}
}

func (p *KafkaProducer) PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	return p.publish(ctx, p.orderWriter, event.EventID, event)
}

func (p *KafkaProducer) PublishStockDepleted(ctx context.Context, event StockDepletedEvent) error {
	return p.publish(ctx, p.stockWriter, event.EventID, event)
}

func (p *KafkaProducer) publish(ctx context.Context, writer *kafka.Writer, key string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: eventBytes,
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := writer.WriteMessages(writeCtx, msg); err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("event_id", key),
			zap.String("topic", writer.Topic),
			zap.Error(err))
		return err
	}

	p.logger.Info("Event published",
		zap.String("event_id", key),
		zap.String("topic", writer.Topic))
	return nil
}

func (p *KafkaProducer) Close() error {
	if err := p.orderWriter.Close(); err != nil {
		return err
	}
	return p.stockWriter.Close()
}
