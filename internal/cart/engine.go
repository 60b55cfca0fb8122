// Пакет cart - состояние корзины профиля.
//
// Позиции хранятся в порядке добавления и после каждой мутации синхронно
// записываются в хранилище профиля под ключом StorageKey (write-through).
// Инварианты: ItemID уникален, Quantity >= 1; позиция с нулевым количеством удаляется.
package cart

import (
	"context"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/Gunvolt24/foodorder/pkg/metrics"
)

// StorageKey - ключ корзины в хранилище профиля. Пишет в него только Engine.
const StorageKey = "cart"

// Persister - то, что Engine требует от адаптера хранилища.
type Persister interface {
	Load(ctx context.Context, key string, dst any) bool
	Save(ctx context.Context, key string, value any) error
}

// Engine - корзина в памяти с зеркалом в хранилище.
type Engine struct {
	store Persister
	log   ports.Logger

	mu    sync.Mutex
	lines []domain.CartLine
	index map[string]int // ItemID -> позиция в lines
}

// NewEngine - восстанавливает корзину из хранилища.
// Отсутствующее или повреждённое значение даёт пустую корзину.
func NewEngine(ctx context.Context, store Persister, log ports.Logger) *Engine {
	e := &Engine{
		store: store,
		log:   log,
		index: make(map[string]int),
	}

	var persisted []domain.CartLine
	if store.Load(ctx, StorageKey, &persisted) {
		e.restore(ctx, persisted)
	}
	metrics.CartLines.Set(float64(len(e.lines)))
	return e
}

// restore - принимает сохранённые позиции, отбрасывая то, что нарушает инварианты:
// пустой ID и количество <= 0 выкидываются, дубли ID склеиваются.
func (e *Engine) restore(ctx context.Context, persisted []domain.CartLine) {
	dropped := 0
	for _, l := range persisted {
		if l.ItemID == "" || l.Quantity <= 0 {
			dropped++
			continue
		}
		if i, ok := e.index[l.ItemID]; ok {
			e.lines[i].Quantity += l.Quantity
			dropped++
			continue
		}
		e.index[l.ItemID] = len(e.lines)
		e.lines = append(e.lines, l)
	}
	if dropped > 0 {
		e.log.Warnf(ctx, "cart restored with %d invalid or duplicate lines normalized", dropped)
	}
}

// AddItem - upsert по ID: существующая позиция +1, иначе новая с Quantity = 1.
// Имя, категория и цена копируются из item в момент добавления.
// Позиция без ID игнорируется; возвращает false, если корзина не изменилась.
func (e *Engine) AddItem(ctx context.Context, item domain.MenuItem) bool {
	if item.ID == "" {
		metrics.CartOps.WithLabelValues("noop").Inc()
		e.log.Warnf(ctx, "cart add ignored: item without id name=%q", item.Name)
		return false
	}
	if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		metrics.CartOps.WithLabelValues("noop").Inc()
		e.log.Warnf(ctx, "cart add ignored: unusable price id=%s price=%v", item.ID, item.Price)
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if i, ok := e.index[item.ID]; ok {
		e.lines[i].Quantity++
	} else {
		e.index[item.ID] = len(e.lines)
		e.lines = append(e.lines, domain.CartLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Category:  item.Category,
			UnitPrice: item.Price,
			Quantity:  1,
		})
	}

	metrics.CartOps.WithLabelValues("add").Inc()
	e.persistLocked(ctx)
	return true
}

// RemoveItem - amount == 0 удаляет позицию целиком; amount > 0 уменьшает количество
// и удаляет позицию, если оно стало <= 0. Неизвестный ID и amount < 0 - no-op.
func (e *Engine) RemoveItem(ctx context.Context, itemID string, amount int) bool {
	if amount < 0 {
		metrics.CartOps.WithLabelValues("noop").Inc()
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.index[itemID]
	if !ok {
		metrics.CartOps.WithLabelValues("noop").Inc()
		return false
	}

	if amount > 0 && e.lines[i].Quantity-amount > 0 {
		e.lines[i].Quantity -= amount
	} else {
		e.deleteLocked(i)
	}

	metrics.CartOps.WithLabelValues("remove").Inc()
	e.persistLocked(ctx)
	return true
}

// Clear - очищает корзину и сохраняет пустое состояние. Повторный вызов безопасен.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lines = nil
	e.index = make(map[string]int)

	metrics.CartOps.WithLabelValues("clear").Inc()
	e.persistLocked(ctx)
}

// Total - сумма UnitPrice * Quantity по всем позициям.
// Слагаемые складываются в порядке ItemID, поэтому результат не зависит от порядка добавления.
func (e *Engine) Total() float64 {
	e.mu.Lock()
	lines := slices.Clone(e.lines)
	e.mu.Unlock()

	slices.SortFunc(lines, func(a, b domain.CartLine) int { return strings.Compare(a.ItemID, b.ItemID) })

	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// Count - сумма количеств (для бейджа), а не число различных позиций.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, l := range e.lines {
		n += l.Quantity
	}
	return n
}

// Len - число различных позиций.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines)
}

// Quantity - количество позиции; 0, если её нет.
func (e *Engine) Quantity(itemID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i, ok := e.index[itemID]; ok {
		return e.lines[i].Quantity
	}
	return 0
}

// Lines - копия позиций в порядке добавления.
func (e *Engine) Lines() []domain.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.CartLine{}, e.lines...)
}

func (e *Engine) deleteLocked(i int) {
	delete(e.index, e.lines[i].ItemID)
	e.lines = append(e.lines[:i], e.lines[i+1:]...)
	for j := i; j < len(e.lines); j++ {
		e.index[e.lines[j].ItemID] = j
	}
}

// persistLocked - зеркалит корзину в хранилище. Ошибка записи не откатывает
// состояние в памяти: чтение сразу после мутации должно видеть мутацию.
func (e *Engine) persistLocked(ctx context.Context) {
	metrics.CartLines.Set(float64(len(e.lines)))

	snapshot := e.lines
	if snapshot == nil {
		snapshot = []domain.CartLine{}
	}
	if err := e.store.Save(ctx, StorageKey, snapshot); err != nil {
		e.log.Errorf(ctx, "cart persist failed lines=%d err=%v", len(snapshot), err)
	}
}
