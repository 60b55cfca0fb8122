package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/Gunvolt24/foodorder/pkg/metrics"
)

// Проверка, что MenuCache удовлетворяет интерфейсу ports.MenuCache.
var _ ports.MenuCache = (*MenuCache)(nil)

type entry struct {
	id        string
	item      domain.MenuItem
	expiresAt time.Time
}

// MenuCache - LRU-кэш позиций меню с TTL.
// Нужен, чтобы добавление в корзину по ID не перечитывало всё меню.
type MenuCache struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

// NewMenuCache - capacity <= 0 превращается в 1; ttl <= 0 - без истечения.
func NewMenuCache(capacity int, ttl time.Duration) *MenuCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &MenuCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

func (c *MenuCache) Get(_ context.Context, itemID string) (*domain.MenuItem, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[itemID]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		return nil, false
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	item := ent.item
	return &item, true
}

func (c *MenuCache) Set(_ context.Context, item *domain.MenuItem) error {
	if item == nil || item.ID == "" {
		return nil
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setLocked(*item, now)
	return nil
}

// WarmUp - кладёт в кэш всё прочитанное меню; отмена контекста прерывает загрузку.
func (c *MenuCache) WarmUp(ctx context.Context, items []domain.MenuItem) error {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if items[i].ID == "" {
			continue
		}
		c.setLocked(items[i], now)
	}
	return nil
}

func (c *MenuCache) Invalidate(_ context.Context, itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[itemID]; ok {
		c.removeElement(elem)
		metrics.CacheOps.WithLabelValues("invalidated").Inc()
	}
}

// Len - число записей (включая ещё не вычищенные просроченные).
func (c *MenuCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// ------вспомогательные функции------

func (c *MenuCache) setLocked(item domain.MenuItem, now time.Time) {
	if elem, ok := c.index[item.ID]; ok {
		ent := elem.Value.(*entry)
		ent.item = item
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        item.ID,
		item:      item,
		expiresAt: c.expiryFrom(now),
	})
	c.index[item.ID] = elem
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
}

// evictLRU - удаляет наименее используемый элемент.
func (c *MenuCache) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
}

// removeElement - удаляет элемент из списка и индекса.
func (c *MenuCache) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	delete(c.index, ent.id)
	c.ll.Remove(elem)
	metrics.CacheSize.Set(float64(len(c.index)))
}

func (c *MenuCache) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *MenuCache) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack - удаляет просроченные элементы с хвоста до первого актуального.
func (c *MenuCache) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.ll.Back(); back != nil; back = c.ll.Back() {
		if !now.After(back.Value.(*entry).expiresAt) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	}
}
