package ports

import (
	"context"

	"github.com/Gunvolt24/foodorder/internal/domain"
)

// ActivitySink - приёмник событий активности клиента (аналитика).
// Ошибка публикации не должна влиять на пользовательский сценарий.
type ActivitySink interface {
	Publish(ctx context.Context, event domain.ActivityEvent) error
	Close() error
}
