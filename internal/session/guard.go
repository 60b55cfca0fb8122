// Пакет session - кэш роли и токена профиля и допуск к страницам.
//
// Проверка роли здесь - только подсказка для UI: авторитетная проверка
// выполняется сервером на каждом вызове API.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/Gunvolt24/foodorder/pkg/metrics"
)

// Ключи хранилища профиля. Пишет в них только Guard.
const (
	KeyToken = "access_token"
	KeyRole  = "userRole"
)

// LoginPath - точка входа, куда уводит отказ в допуске.
const LoginPath = "/login"

// ErrInvalidSession - роль вне закрытого множества или пустой токен.
var ErrInvalidSession = errors.New("invalid session")

// Decision - результат проверки допуска.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Store - то, что Guard требует от адаптера хранилища.
type Store interface {
	LoadString(ctx context.Context, key string) (string, bool)
	SaveString(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// CartClearer - корзина, которую нужно сбрасывать при смене сессии.
type CartClearer interface {
	Clear(ctx context.Context)
}

// Guard - состояние сессии: Unauthenticated или Authenticated(role).
type Guard struct {
	store Store
	cart  CartClearer
	log   ports.Logger

	mu      sync.Mutex
	session domain.Session
}

// NewGuard - восстанавливает сессию из хранилища.
// Роль принимается, только если рядом лежит токен и роль из закрытого множества;
// половинчатая пара считается отсутствующей и вычищается.
func NewGuard(ctx context.Context, store Store, cart CartClearer, log ports.Logger) *Guard {
	g := &Guard{store: store, cart: cart, log: log}

	token, hasToken := store.LoadString(ctx, KeyToken)
	rawRole, hasRole := store.LoadString(ctx, KeyRole)
	role, validRole := domain.ParseRole(rawRole)

	switch {
	case hasToken && token != "" && hasRole && validRole:
		g.session = domain.Session{Role: role, Token: token}
	case hasToken || hasRole:
		log.Warnf(ctx, "discarding incomplete session role=%q has_token=%v", rawRole, hasToken)
		g.removeKeys(ctx)
	}
	return g
}

// SetSession - сохраняет роль и токен как единое целое.
// Если запись роли не удалась, токен откатывается к прежнему значению.
func (g *Guard) SetSession(ctx context.Context, role domain.Role, token string) error {
	if !role.Valid() || token == "" {
		return fmt.Errorf("%w: role=%q token_set=%v", ErrInvalidSession, role, token != "")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	prev := g.session
	if err := g.store.SaveString(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	if err := g.store.SaveString(ctx, KeyRole, role.String()); err != nil {
		g.rollbackToken(ctx, prev)
		return fmt.Errorf("set session: %w", err)
	}

	g.session = domain.Session{Role: role, Token: token}
	metrics.SessionTransitions.WithLabelValues("authenticated").Inc()
	g.log.Infof(ctx, "session started role=%s", role)
	return nil
}

// ClearSession - удаляет роль и токен и очищает корзину,
// чтобы корзина прошлого пользователя не попала в новую сессию.
func (g *Guard) ClearSession(ctx context.Context) {
	g.mu.Lock()
	wasAuthenticated := g.session.Role != domain.RoleNone
	g.session = domain.Session{}
	g.removeKeys(ctx)
	g.mu.Unlock()

	g.cart.Clear(ctx)

	if wasAuthenticated {
		metrics.SessionTransitions.WithLabelValues("unauthenticated").Inc()
		g.log.Infof(ctx, "session cleared")
	}
}

// CurrentRole - кэшированная роль или RoleNone.
func (g *Guard) CurrentRole() domain.Role {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.Role
}

// Token - кэшированный токен или "".
func (g *Guard) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.Token
}

// Authenticated - есть ли роль.
func (g *Guard) Authenticated() bool {
	return g.CurrentRole() != domain.RoleNone
}

// Authorize - Allow, если роль есть и входит в required.
// Пустой required пропускает любую аутентифицированную роль.
func (g *Guard) Authorize(required ...domain.Role) Decision {
	role := g.CurrentRole()
	if role == domain.RoleNone {
		return Deny
	}
	if len(required) == 0 || slices.Contains(required, role) {
		return Allow
	}
	return Deny
}

// Admit - Authorize плюс путь отказа: без роли сессия переводится в
// Unauthenticated, затем вызывающий уводится на LoginPath.
func (g *Guard) Admit(ctx context.Context, nav ports.Navigator, required ...domain.Role) bool {
	decision := g.Authorize(required...)
	metrics.RouteDecisions.WithLabelValues(decision.String()).Inc()
	if decision == Allow {
		return true
	}

	if !g.Authenticated() {
		g.ClearSession(ctx)
	}
	g.log.Infof(ctx, "route denied role=%q required=%v", g.CurrentRole(), required)
	nav.NavigateTo(ctx, LoginPath)
	return false
}

func (g *Guard) removeKeys(ctx context.Context) {
	for _, key := range []string{KeyToken, KeyRole} {
		if err := g.store.Remove(ctx, key); err != nil {
			g.log.Warnf(ctx, "session key cleanup failed key=%s err=%v", key, err)
		}
	}
}

func (g *Guard) rollbackToken(ctx context.Context, prev domain.Session) {
	var err error
	if prev.Token != "" {
		err = g.store.SaveString(ctx, KeyToken, prev.Token)
	} else {
		err = g.store.Remove(ctx, KeyToken)
	}
	if err != nil {
		g.log.Errorf(ctx, "session token rollback failed err=%v", err)
	}
}
