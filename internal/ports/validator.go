package ports

import (
	"context"

	"github.com/Gunvolt24/foodorder/internal/domain"
)

// MenuItemValidator - проверка позиции меню перед созданием или загрузкой из файла.
type MenuItemValidator interface {
	Validate(ctx context.Context, item *domain.MenuItem) error
}
