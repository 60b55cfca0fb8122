package ports

import (
	"context"

	"github.com/Gunvolt24/foodorder/internal/domain"
)

// MenuCache - кэш позиций меню.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1); возврат копий.
type MenuCache interface {
	// Get - вернуть позицию по ID; (item, true) при попадании, (nil, false) при промахе/истечении.
	Get(ctx context.Context, itemID string) (*domain.MenuItem, bool)

	// Set - сохранить/обновить позицию.
	Set(ctx context.Context, item *domain.MenuItem) error

	// WarmUp - массовая загрузка (после чтения меню целиком).
	WarmUp(ctx context.Context, items []domain.MenuItem) error

	// Invalidate - удалить позицию (после удаления на сервере).
	Invalidate(ctx context.Context, itemID string)
}
