// Пакет notify - пользовательские уведомления (toast).
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/foodorder/internal/ports"
)

var _ ports.Notifier = (*Toaster)(nil)

// Kind - вид уведомления.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast - одно уведомление.
type Toast struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Toaster - ограниченная очередь уведомлений; самые старые вытесняются.
type Toaster struct {
	log   ports.Logger
	limit int
	now   func() time.Time

	mu     sync.Mutex
	toasts []Toast
}

// NewToaster - limit <= 0 превращается в 20.
func NewToaster(limit int, log ports.Logger) *Toaster {
	if limit <= 0 {
		limit = 20
	}
	return &Toaster{log: log, limit: limit, now: time.Now}
}

func (t *Toaster) NotifySuccess(ctx context.Context, message string) {
	t.push(Toast{Kind: KindSuccess, Message: message, At: t.now()})
	t.log.Infof(ctx, "toast success: %s", message)
}

func (t *Toaster) NotifyError(ctx context.Context, message string) {
	t.push(Toast{Kind: KindError, Message: message, At: t.now()})
	t.log.Warnf(ctx, "toast error: %s", message)
}

// Drain - забирает накопленные уведомления (старые первыми).
func (t *Toaster) Drain() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.toasts
	t.toasts = nil
	if out == nil {
		out = []Toast{}
	}
	return out
}

func (t *Toaster) push(toast Toast) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.toasts = append(t.toasts, toast)
	if over := len(t.toasts) - t.limit; over > 0 {
		t.toasts = append([]Toast(nil), t.toasts[over:]...)
	}
}
