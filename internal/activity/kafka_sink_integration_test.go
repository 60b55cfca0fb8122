//go:build integration

package activity_test

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/foodorder/internal/activity"
	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestKafkaSink_Redpanda_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	brokers := testutil.StartRedpanda(ctx, t)
	topic := testutil.NewActivityTopic(ctx, t, brokers[0], "activity-itest")

	sink := activity.NewKafkaSink(&activity.KafkaConfig{Brokers: brokers, Topic: topic}, noopLogger{})
	emitter := activity.NewEmitter(sink, "kiosk-it", 5*time.Second, noopLogger{})
	defer func() { _ = emitter.Close() }()

	item := testutil.MakeMenuItem()
	emitter.Emit(ctx, domain.EventCartItemAdded, domain.RoleUser, map[string]any{"item_id": item.ID})
	emitter.Emit(ctx, domain.EventOrderPlaced, domain.RoleUser, map[string]any{"lines": 1})

	got, err := testutil.ReadActivity(ctx, brokers, topic, 2)
	require.NoError(t, err)

	require.Equal(t, "kiosk-it", got[0].Key)
	require.Equal(t, domain.EventCartItemAdded, got[0].Headers["event_type"])
	require.Equal(t, domain.EventCartItemAdded, got[0].Event.Type)
	require.Equal(t, item.ID, got[0].Event.Attributes["item_id"])

	// один профиль -> один ключ -> порядок сохраняется
	require.Equal(t, domain.EventOrderPlaced, got[1].Event.Type)
	require.Equal(t, "user", got[1].Event.Role)
}
