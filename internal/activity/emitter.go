// Пакет activity - события активности профиля (вход, корзина, заказ) и их доставка в брокер.
package activity

import (
	"context"
	"time"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/google/uuid"
)

// Emitter - дополняет событие служебными полями и отдаёт его в приёмник.
// Ошибки приёмника только логируются: аналитика не ломает пользовательский сценарий.
type Emitter struct {
	sink    ports.ActivitySink
	profile string
	timeout time.Duration
	log     ports.Logger
	now     func() time.Time
	newID   func() string
}

// NewEmitter - конструктор. sink == nil даёт выключенный эмиттер.
func NewEmitter(sink ports.ActivitySink, profile string, timeout time.Duration, log ports.Logger) *Emitter {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Emitter{
		sink:    sink,
		profile: profile,
		timeout: timeout,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.NewString() },
	}
}

// Enabled - есть ли куда отправлять.
func (e *Emitter) Enabled() bool {
	return e != nil && e.sink != nil
}

// Emit - публикует событие типа eventType от имени роли role.
func (e *Emitter) Emit(ctx context.Context, eventType string, role domain.Role, attrs map[string]any) {
	if !e.Enabled() {
		return
	}

	event := domain.ActivityEvent{
		ID:         e.newID(),
		Type:       eventType,
		Profile:    e.profile,
		Role:       role.String(),
		OccurredAt: e.now(),
		Attributes: attrs,
	}

	// отмена запроса не должна обрывать запись события
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	if err := e.sink.Publish(pubCtx, event); err != nil {
		e.log.Warnf(ctx, "activity publish failed type=%s: %v", eventType, err)
	}
}

// Close - закрывает приёмник.
func (e *Emitter) Close() error {
	if !e.Enabled() {
		return nil
	}
	return e.sink.Close()
}
