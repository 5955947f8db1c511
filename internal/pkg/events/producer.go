package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
)

// Producer publishes classification results for downstream analytics.
// Publishing is fire-and-forget: a failed publish never fails a request.
type Producer interface {
	PublishPrediction(event entity.PredictionEvent) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
}

// NewProducer connects to Kafka and creates the topic if needed. When the
// brokers are unreachable the service still has to serve predictions, so
// a no-op producer is returned instead.
func NewProducer(brokers, topic string) Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", brokers)
	if err != nil {
		logrus.Warnf("kafka connection failed, prediction events disabled: %s", err.Error())
		return &noopProducer{}
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logrus.Debugf("could not create topic (might already exist): %s", err.Error())
	}

	logrus.Infof("prediction events publishing to %s on topic %s", brokers, topic)
	return &kafkaProducer{writer: writer}
}

func (p *kafkaProducer) PublishPrediction(event entity.PredictionEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ID),
		Value: value,
		Time:  event.CreatedAt,
	})
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// NewNoopProducer is used when event publishing is disabled in config.
func NewNoopProducer() Producer {
	return &noopProducer{}
}

type noopProducer struct{}

func (n *noopProducer) PublishPrediction(event entity.PredictionEvent) error {
	logrus.Debugf("prediction event dropped (events disabled): %s %s", event.ID, event.Prediction)
	return nil
}

func (n *noopProducer) Close() error {
	return nil
}
