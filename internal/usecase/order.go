package usecase

import (
	"context"

	"github.com/Gunvolt24/foodorder/internal/domain"
)

// PlaceOrder - POST /orders со снимком корзины. Корзина очищается только
// после подтверждения сервера; при ошибке остаётся как была.
func (s *Service) PlaceOrder(ctx context.Context) error {
	lines := s.app.Cart.Lines()
	if len(lines) == 0 {
		s.notify.NotifyError(ctx, "Your cart is empty")
		return ErrEmptyCart
	}
	req := domain.NewOrderRequest(lines)
	total := s.app.Cart.Total()

	err := s.app.Busy.Track(ctx, func(ctx context.Context) error {
		_, err := s.api.Post(ctx, pathOrders, req)
		return err
	})
	if err != nil {
		return s.fail(ctx, "place order", err, "Failed to place order")
	}

	s.log.Infof(ctx, "order placed lines=%d total=%.2f", len(req.Items), total)
	s.notify.NotifySuccess(ctx, "Order placed successfully")
	s.emit(ctx, domain.EventOrderPlaced, map[string]any{
		"lines": len(req.Items),
		"total": total,
	})
	s.app.Cart.Clear(ctx)
	s.nav.NavigateTo(ctx, s.policy.Home(s.Role()))
	return nil
}
