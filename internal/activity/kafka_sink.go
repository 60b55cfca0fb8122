package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/Gunvolt24/foodorder/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.ActivitySink = (*KafkaSink)(nil)

// writer - минимальный контракт над kafka.Writer, чтобы подменять его в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConfig - параметры продюсера событий.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

func (c *KafkaConfig) writer() *kafka.Writer {
	bt := c.BatchTimeout
	if bt <= 0 {
		bt = 10 * time.Millisecond
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           bt,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// KafkaSink - пишет события в топик; ключ сообщения - профиль,
// поэтому события одного киоска попадают в одну партицию и сохраняют порядок.
type KafkaSink struct {
	w         writer
	log       ports.Logger
	closeOnce sync.Once
}

// NewKafkaSink - конструктор.
func NewKafkaSink(cfg *KafkaConfig, log ports.Logger) *KafkaSink {
	return &KafkaSink{w: cfg.writer(), log: log}
}

// Publish - сериализует событие в JSON и пишет одно сообщение.
func (s *KafkaSink) Publish(ctx context.Context, event domain.ActivityEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		metrics.ActivityFailed.WithLabelValues(event.Type).Inc()
		return fmt.Errorf("marshal activity event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Profile),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := s.w.WriteMessages(ctx, msg); err != nil {
		metrics.ActivityFailed.WithLabelValues(event.Type).Inc()
		return fmt.Errorf("write activity event: %w", err)
	}

	metrics.ActivityPublished.WithLabelValues(event.Type).Inc()
	return nil
}

// Close - закрывает writer. Вызывается при остановке приложения.
func (s *KafkaSink) Close() (retErr error) {
	s.closeOnce.Do(func() {
		retErr = s.w.Close()
	})
	return retErr
}
