package usecase

import (
	"context"
	"errors"

	"github.com/Gunvolt24/foodorder/internal/activity"
	"github.com/Gunvolt24/foodorder/internal/appctx"
	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/Gunvolt24/foodorder/internal/routes"
	"github.com/Gunvolt24/foodorder/internal/session"
)

var (
	// ErrEmptyCart - попытка оформить пустую корзину.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrItemUnavailable - позиции нет в меню или она недоступна для заказа.
	ErrItemUnavailable = errors.New("menu item unavailable")
	// ErrForbidden - роли сессии не хватает прав на действие.
	ErrForbidden = errors.New("action forbidden for role")
)

// Пути удалённого API.
const (
	pathLogin    = "/auth/login"
	pathRegister = "/auth/register"
	pathUsers    = "/auth/users"
	pathMenu     = "/menu"
	pathOrders   = "/orders"
)

// Имена действий в таблице прав.
const (
	ActionMenuCreate   = "menu.create"
	ActionMenuDelete   = "menu.delete"
	ActionOrdersDelete = "orders.delete"
	ActionUsersDelete  = "users.delete"
)

// Deps - зависимости сервиса страниц.
type Deps struct {
	App       *appctx.Context
	API       ports.APIClient
	Cache     ports.MenuCache
	Notifier  ports.Notifier
	Navigator ports.Navigator
	Policy    *routes.Policy
	Validator ports.MenuItemValidator
	Activity  *activity.Emitter
	Log       ports.Logger
}

// Service - сценарии страниц клиента (без знаний о транспорте).
// Каждый сетевой сценарий идёт через индикатор занятости, при ошибке
// показывает ровно одно уведомление и не меняет корзину и сессию.
type Service struct {
	app       *appctx.Context
	api       ports.APIClient
	cache     ports.MenuCache
	notify    ports.Notifier
	nav       ports.Navigator
	policy    *routes.Policy
	validator ports.MenuItemValidator
	activity  *activity.Emitter
	log       ports.Logger
}

// NewService - DI-конструктор.
func NewService(d Deps) *Service {
	return &Service{
		app:       d.App,
		api:       d.API,
		cache:     d.Cache,
		notify:    d.Notifier,
		nav:       d.Navigator,
		policy:    d.Policy,
		validator: d.Validator,
		activity:  d.Activity,
		log:       d.Log,
	}
}

// Admit - допуск на страницу path по таблице прав; при отказе навигация уже выполнена.
func (s *Service) Admit(ctx context.Context, path string) bool {
	roles, public := s.policy.Page(path)
	if public {
		return true
	}
	return s.app.Session.Admit(ctx, s.nav, roles...)
}

// Role - текущая роль сессии.
func (s *Service) Role() domain.Role {
	return s.app.Session.CurrentRole()
}

// HomePath - домашняя страница текущей роли (для навигационной панели).
func (s *Service) HomePath() string {
	return s.policy.Home(s.Role())
}

// CartBadge - число единиц в корзине.
func (s *Service) CartBadge() int {
	return s.app.Cart.Count()
}

// Cart - снимок корзины и сумма.
func (s *Service) Cart() ([]domain.CartLine, float64) {
	return s.app.Cart.Lines(), s.app.Cart.Total()
}

// Busy - идёт ли хотя бы одна операция.
func (s *Service) Busy() bool {
	return s.app.Busy.IsBusy()
}

// allowed - проверка права на действие; при отказе - уведомление.
func (s *Service) allowed(ctx context.Context, action string) error {
	if s.app.Session.Authorize(s.policy.Action(action)...) == session.Allow {
		return nil
	}
	s.log.Warnf(ctx, "action %s denied role=%q", action, s.Role())
	s.notify.NotifyError(ctx, "You are not allowed to do that")
	return ErrForbidden
}

// fail - одно уведомление об ошибке сценария; сообщение сервера важнее fallback.
func (s *Service) fail(ctx context.Context, op string, err error, fallback string) error {
	s.log.Warnf(ctx, "%s failed: %v", op, err)
	s.notify.NotifyError(ctx, domain.UserMessage(err, fallback))
	return err
}

func (s *Service) emit(ctx context.Context, eventType string, attrs map[string]any) {
	s.activity.Emit(ctx, eventType, s.Role(), attrs)
}
