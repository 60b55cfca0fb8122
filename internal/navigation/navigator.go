// Пакет navigation - императивный переход между страницами.
// Страница вызывает NavigateTo, а транспорт после обработки запроса
// превращает записанную цель в редирект.
package navigation

import (
	"context"
	"sync"

	"github.com/Gunvolt24/foodorder/internal/ports"
)

var _ ports.Navigator = (*Navigator)(nil)

type ctxKey struct{}

// Location - цель перехода в рамках одного запроса. Побеждает последний вызов.
type Location struct {
	mu     sync.Mutex
	target string
}

// WithLocation - кладёт в контекст пустую Location.
func WithLocation(ctx context.Context) (context.Context, *Location) {
	loc := &Location{}
	return context.WithValue(ctx, ctxKey{}, loc), loc
}

// LocationFromContext - Location текущего запроса, если она есть.
func LocationFromContext(ctx context.Context) (*Location, bool) {
	if ctx == nil {
		return nil, false
	}
	loc, ok := ctx.Value(ctxKey{}).(*Location)
	return loc, ok && loc != nil
}

// Target - записанная цель перехода.
func (l *Location) Target() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target, l.target != ""
}

func (l *Location) set(path string) {
	l.mu.Lock()
	l.target = path
	l.mu.Unlock()
}

// Navigator - реализация ports.Navigator поверх Location из контекста.
type Navigator struct {
	log ports.Logger
}

func NewNavigator(log ports.Logger) *Navigator { return &Navigator{log: log} }

// NavigateTo - без Location в контексте переход только логируется
// (например, в CLI, где страниц нет).
func (n *Navigator) NavigateTo(ctx context.Context, path string) {
	if loc, ok := LocationFromContext(ctx); ok {
		loc.set(path)
	}
	n.log.Infof(ctx, "navigate to=%s", path)
}
