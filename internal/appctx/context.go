// Пакет appctx - владеемый контекст клиента: хранилище профиля, корзина,
// сессия и индикатор занятости. Создаётся один раз в корне сборки и
// передаётся всем потребителям; глобального состояния нет.
package appctx

import (
	"context"
	"errors"
	"sync"

	"github.com/Gunvolt24/foodorder/internal/busy"
	"github.com/Gunvolt24/foodorder/internal/cart"
	"github.com/Gunvolt24/foodorder/internal/persist"
	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/Gunvolt24/foodorder/internal/session"
)

// Context - состояние одного профиля клиента.
type Context struct {
	Profile string
	Store   *persist.Adapter
	Cart    *cart.Engine
	Session *session.Guard
	Busy    *busy.Coordinator

	log       ports.Logger
	closers   []func() error
	closeOnce sync.Once
	closeErr  error
}

// Option - настройка Context при создании.
type Option func(*Context)

// WithCloser - ресурс, который нужно освободить в Close (пул БД и т.п.).
// Закрываются в обратном порядке регистрации.
func WithCloser(fn func() error) Option {
	return func(c *Context) { c.closers = append(c.closers, fn) }
}

// New - собирает контекст поверх хранилища профиля.
// Порядок важен: корзина восстанавливается раньше сессии, потому что
// сессия при сбросе очищает корзину.
func New(ctx context.Context, profile string, kv ports.KVStore, log ports.Logger, opts ...Option) *Context {
	store := persist.NewAdapter(kv, log)
	engine := cart.NewEngine(ctx, store, log)

	c := &Context{
		Profile: profile,
		Store:   store,
		Cart:    engine,
		Session: session.NewGuard(ctx, store, engine, log),
		Busy:    busy.New(),
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}

	log.Infof(ctx, "client context ready profile=%s role=%q cart_lines=%d",
		profile, c.Session.CurrentRole(), c.Cart.Len())
	return c
}

// Close - освобождает ресурсы. Повторный вызов возвращает результат первого.
func (c *Context) Close() error {
	c.closeOnce.Do(func() {
		if active := c.Busy.Active(); active > 0 {
			c.log.Warnf(context.Background(), "closing client context with %d operations in flight", active)
		}
		var errs []error
		for i := len(c.closers) - 1; i >= 0; i-- {
			if err := c.closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		c.closeErr = errors.Join(errs...)
	})
	return c.closeErr
}
