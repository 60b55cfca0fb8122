//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/segmentio/kafka-go"
)

// ActivityMessage - прочитанное событие вместе с ключом и заголовками записи.
type ActivityMessage struct {
	Key     string
	Headers map[string]string
	Event   domain.ActivityEvent
}

// NewActivityTopic - свежий топик "<base>-<suffix>" с одной партицией.
func NewActivityTopic(ctx context.Context, t testing.TB, broker, base string) string {
	t.Helper()
	topic := fmt.Sprintf("%s-%s", base, UniqSuffix())

	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		t.Fatalf("dial %s: %v", broker, err)
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		t.Fatalf("dial controller: %v", err)
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		t.Fatalf("create topic %s: %v", topic, err)
	}
	return topic
}

// ReadActivity - читает n событий активности с начала топика.
func ReadActivity(ctx context.Context, brokers []string, topic string, n int) ([]ActivityMessage, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     topic + "-reader",
		StartOffset: kafka.FirstOffset,
		MaxWait:     200 * time.Millisecond,
	})
	defer r.Close()

	out := make([]ActivityMessage, 0, n)
	for len(out) < n {
		msg, err := r.ReadMessage(ctx)
		if err != nil {
			return out, fmt.Errorf("read message %d/%d: %w", len(out)+1, n, err)
		}
		am := ActivityMessage{Key: string(msg.Key), Headers: make(map[string]string, len(msg.Headers))}
		for _, h := range msg.Headers {
			am.Headers[h.Key] = string(h.Value)
		}
		if err := json.Unmarshal(msg.Value, &am.Event); err != nil {
			return out, fmt.Errorf("decode event: %w", err)
		}
		out = append(out, am)
	}
	return out, nil
}
