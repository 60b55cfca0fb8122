package usecase

import (
	"context"
	"net/url"

	"github.com/Gunvolt24/foodorder/internal/domain"
)

// ListOrders - GET /orders.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.app.Busy.Track(ctx, func(ctx context.Context) error {
		env, err := s.api.Get(ctx, pathOrders)
		if err != nil {
			return err
		}
		return env.Decode(&orders)
	})
	if err != nil {
		return nil, s.fail(ctx, "list orders", err, "Failed to fetch orders")
	}
	return orders, nil
}

// DeleteOrder - DELETE /orders/{id}; только admin.
func (s *Service) DeleteOrder(ctx context.Context, orderID string) error {
	if err := s.allowed(ctx, ActionOrdersDelete); err != nil {
		return err
	}
	err := s.app.Busy.Track(ctx, func(ctx context.Context) error {
		_, err := s.api.Delete(ctx, pathOrders+"/"+url.PathEscape(orderID))
		return err
	})
	if err != nil {
		return s.fail(ctx, "delete order", err, "Failed to delete order")
	}
	s.notify.NotifySuccess(ctx, "Order deleted successfully")
	return nil
}

// ListUsers - GET /auth/users.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := s.app.Busy.Track(ctx, func(ctx context.Context) error {
		env, err := s.api.Get(ctx, pathUsers)
		if err != nil {
			return err
		}
		return env.Decode(&users)
	})
	if err != nil {
		s.log.Warnf(ctx, "list users failed: %v", err)
		s.notify.NotifyError(ctx, "Failed to fetch users")
		return nil, err
	}
	return users, nil
}

// DeleteUser - DELETE /auth/users/{id}; только admin.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if err := s.allowed(ctx, ActionUsersDelete); err != nil {
		return err
	}
	err := s.app.Busy.Track(ctx, func(ctx context.Context) error {
		_, err := s.api.Delete(ctx, pathUsers+"/"+url.PathEscape(userID))
		return err
	})
	if err != nil {
		s.log.Warnf(ctx, "delete user failed: %v", err)
		s.notify.NotifyError(ctx, "Failed to delete user")
		return err
	}
	s.notify.NotifySuccess(ctx, "User deleted successfully")
	return nil
}

// CreateMenuItem - POST /menu после локальной проверки полей; только admin.
func (s *Service) CreateMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	if err := s.allowed(ctx, ActionMenuCreate); err != nil {
		return nil, err
	}
	item.ID = ""
	if err := s.validator.Validate(ctx, &item); err != nil {
		s.log.Warnf(ctx, "create menu item rejected: %v", err)
		s.notify.NotifyError(ctx, "Please fill in all fields")
		return nil, err
	}

	var created domain.MenuItem
	err := s.app.Busy.Track(ctx, func(ctx context.Context) error {
		env, err := s.api.Post(ctx, pathMenu, item)
		if err != nil {
			return err
		}
		return env.Decode(&created)
	})
	if err != nil {
		return nil, s.fail(ctx, "create menu item", err, "Failed to create menu item")
	}

	if created.ID != "" {
		if err := s.cache.Set(ctx, &created); err != nil {
			s.log.Warnf(ctx, "cache.Set failed item=%s: %v", created.ID, err)
		}
	}
	s.notify.NotifySuccess(ctx, "Menu item created successfully")
	return &created, nil
}

// DeleteMenuItem - DELETE /menu/{id}; только admin. Позиция убирается из кэша.
func (s *Service) DeleteMenuItem(ctx context.Context, itemID string) error {
	if err := s.allowed(ctx, ActionMenuDelete); err != nil {
		return err
	}
	err := s.app.Busy.Track(ctx, func(ctx context.Context) error {
		_, err := s.api.Delete(ctx, pathMenu+"/"+url.PathEscape(itemID))
		return err
	})
	if err != nil {
		return s.fail(ctx, "delete menu item", err, "Failed to delete menu item")
	}
	s.cache.Invalidate(ctx, itemID)
	s.notify.NotifySuccess(ctx, "Menu item deleted successfully")
	return nil
}
