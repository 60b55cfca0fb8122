package validate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/ports"
)

// Проверка, что MenuItemValidator удовлетворяет интерфейсу порта.
var _ ports.MenuItemValidator = (*MenuItemValidator)(nil)

// ErrInvalidMenuItem - базовая (sentinel error) ошибка валидации позиции меню.
var ErrInvalidMenuItem = errors.New("menu item validation failed")

// MenuItemValidator - валидатор позиции меню.
type MenuItemValidator struct {
	requireID bool
}

// NewMenuItemValidator - валидатор новой позиции (id назначает сервер).
func NewMenuItemValidator() *MenuItemValidator { return &MenuItemValidator{} }

// NewCatalogValidator - валидатор позиции каталога: id обязателен.
func NewCatalogValidator() *MenuItemValidator { return &MenuItemValidator{requireID: true} }

// Validate - проверяет поля позиции. Возвращает ErrInvalidMenuItem с причиной.
func (v *MenuItemValidator) Validate(_ context.Context, item *domain.MenuItem) error {
	if item == nil {
		return fmt.Errorf("%w: позиция не может быть nil", ErrInvalidMenuItem)
	}
	if v.requireID && strings.TrimSpace(item.ID) == "" {
		return fmt.Errorf("%w: _id обязателен", ErrInvalidMenuItem)
	}
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name обязателен", ErrInvalidMenuItem)
	}
	if strings.TrimSpace(item.Category) == "" {
		return fmt.Errorf("%w: category обязателен", ErrInvalidMenuItem)
	}
	if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) || item.Price <= 0 {
		return fmt.Errorf("%w: price должен быть > 0", ErrInvalidMenuItem)
	}
	return nil
}
