// Пакет busy - общий индикатор занятости со счётчиком ссылок.
// Индикатор виден, пока хотя бы одна операция не завершилась.
package busy

import (
	"context"
	"sync"

	"github.com/Gunvolt24/foodorder/pkg/metrics"
)

// Coordinator - счётчик активных операций.
type Coordinator struct {
	mu     sync.Mutex
	active int

	// fireMu упорядочивает вызовы слушателей; lastFired - последнее
	// сообщённое им состояние.
	fireMu    sync.Mutex
	lastFired bool
	listeners []func(busy bool)
}

// New - счётчик начинается с нуля при старте процесса.
func New() *Coordinator {
	metrics.BusyActive.Set(0)
	return &Coordinator{}
}

// Begin - операция началась.
func (c *Coordinator) Begin() {
	c.mu.Lock()
	c.active++
	metrics.BusyActive.Set(float64(c.active))
	c.mu.Unlock()

	c.notify()
}

// End - операция завершилась. End без парного Begin игнорируется.
func (c *Coordinator) End() {
	c.mu.Lock()
	if c.active == 0 {
		c.mu.Unlock()
		metrics.BusyUnderflow.Inc()
		return
	}
	c.active--
	metrics.BusyActive.Set(float64(c.active))
	c.mu.Unlock()

	c.notify()
}

// IsBusy - активных операций больше нуля.
func (c *Coordinator) IsBusy() bool {
	return c.Active() > 0
}

// Active - текущее значение счётчика.
func (c *Coordinator) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Acquire - Begin и функция освобождения; повторный вызов освобождения - no-op.
func (c *Coordinator) Acquire() (release func()) {
	c.Begin()
	var once sync.Once
	return func() { once.Do(c.End) }
}

// Track - выполняет fn под индикатором. End вызывается на любом пути выхода,
// включая панику внутри fn и отменённый ctx.
func (c *Coordinator) Track(ctx context.Context, fn func(ctx context.Context) error) error {
	release := c.Acquire()
	defer release()
	return fn(ctx)
}

// OnChange - подписка на смену видимости индикатора.
// Слушатель не должен сам вызывать Begin/End.
func (c *Coordinator) OnChange(fn func(busy bool)) {
	c.fireMu.Lock()
	defer c.fireMu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// notify - сообщает слушателям текущее состояние, если оно отличается от последнего
// сообщённого. Состояние читается под fireMu, поэтому при гонке Begin/End
// слушатели в итоге видят фактическое значение.
func (c *Coordinator) notify() {
	c.fireMu.Lock()
	defer c.fireMu.Unlock()

	busy := c.IsBusy()
	if busy == c.lastFired {
		return
	}
	c.lastFired = busy
	for _, fn := range c.listeners {
		fn(busy)
	}
}
