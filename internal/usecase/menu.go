package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/foodorder/internal/domain"
)

// Menu - GET /menu; результат прогревает кэш позиций.
func (s *Service) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	err := s.app.Busy.Track(ctx, func(ctx context.Context) error {
		var err error
		items, err = s.fetchMenu(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "fetch menu", err, "Failed to fetch menu items")
	}
	return items, nil
}

// AddToCart - добавление позиции по id: сначала кэш, при промахе - меню с сервера.
// Недоступная позиция отклоняется с уведомлением, корзина не меняется.
func (s *Service) AddToCart(ctx context.Context, itemID string) error {
	item, err := s.lookup(ctx, itemID)
	if err != nil {
		return err
	}
	if !item.Availability {
		s.notify.NotifyError(ctx, fmt.Sprintf("%s is not available", item.Name))
		return fmt.Errorf("%w: %s", ErrItemUnavailable, itemID)
	}

	if !s.app.Cart.AddItem(ctx, *item) {
		return fmt.Errorf("%w: %s", ErrItemUnavailable, itemID)
	}
	s.notify.NotifySuccess(ctx, fmt.Sprintf("%s added to cart", item.Name))
	s.emit(ctx, domain.EventCartItemAdded, map[string]any{
		"item_id":  item.ID,
		"quantity": s.app.Cart.Quantity(item.ID),
	})
	return nil
}

// RemoveFromCart - уменьшение количества на amount; amount == 0 - удалить строку.
func (s *Service) RemoveFromCart(ctx context.Context, itemID string, amount int) bool {
	if !s.app.Cart.RemoveItem(ctx, itemID, amount) {
		return false
	}
	s.emit(ctx, domain.EventCartItemRemove, map[string]any{
		"item_id":  itemID,
		"quantity": s.app.Cart.Quantity(itemID),
	})
	return true
}

// ClearCart - очистка корзины пользователем.
func (s *Service) ClearCart(ctx context.Context) {
	if s.app.Cart.Len() == 0 {
		return
	}
	s.app.Cart.Clear(ctx)
	s.emit(ctx, domain.EventCartCleared, nil)
}

func (s *Service) lookup(ctx context.Context, itemID string) (*domain.MenuItem, error) {
	if item, ok := s.cache.Get(ctx, itemID); ok {
		return item, nil
	}

	err := s.app.Busy.Track(ctx, func(ctx context.Context) error {
		_, err := s.fetchMenu(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "fetch menu", err, "Failed to fetch menu items")
	}

	item, ok := s.cache.Get(ctx, itemID)
	if !ok {
		s.notify.NotifyError(ctx, "Menu item not found")
		return nil, fmt.Errorf("%w: %s not in menu", ErrItemUnavailable, itemID)
	}
	return item, nil
}

func (s *Service) fetchMenu(ctx context.Context) ([]domain.MenuItem, error) {
	env, err := s.api.Get(ctx, pathMenu)
	if err != nil {
		return nil, err
	}
	var items []domain.MenuItem
	if err := env.Decode(&items); err != nil {
		return nil, err
	}
	if err := s.cache.WarmUp(ctx, items); err != nil {
		s.log.Warnf(ctx, "menu cache warm-up failed: %v", err)
	}
	return items, nil
}
