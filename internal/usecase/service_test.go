package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Gunvolt24/foodorder/internal/activity"
	"github.com/Gunvolt24/foodorder/internal/appctx"
	cachemem "github.com/Gunvolt24/foodorder/internal/cache/memory"
	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/ports/mocks"
	"github.com/Gunvolt24/foodorder/internal/routes"
	memstore "github.com/Gunvolt24/foodorder/internal/storage/memory"
	"github.com/Gunvolt24/foodorder/internal/usecase"
	"github.com/Gunvolt24/foodorder/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

var (
	tea = domain.MenuItem{ID: "a", Name: "Tea", Category: "drinks", Price: 10, Availability: true}
	bun = domain.MenuItem{ID: "b", Name: "Bun", Category: "bakery", Price: 5, Availability: true}
	pie = domain.MenuItem{ID: "c", Name: "Pie", Category: "bakery", Price: 7, Availability: false}
)

type fixture struct {
	svc      *usecase.Service
	app      *appctx.Context
	api      *mocks.MockAPIClient
	notifier *mocks.MockNotifier
	nav      *mocks.MockNavigator
	cache    *cachemem.MenuCache
	sink     *activity.CaptureSink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := noopLogger{}

	f := &fixture{
		app:      appctx.New(context.Background(), "test", memstore.NewStore(), log),
		api:      mocks.NewMockAPIClient(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
		nav:      mocks.NewMockNavigator(ctrl),
		cache:    cachemem.NewMenuCache(100, time.Minute),
		sink:     &activity.CaptureSink{},
	}
	f.svc = usecase.NewService(usecase.Deps{
		App:       f.app,
		API:       f.api,
		Cache:     f.cache,
		Notifier:  f.notifier,
		Navigator: f.nav,
		Policy:    routes.MustDefault(),
		Validator: validate.NewMenuItemValidator(),
		Activity:  activity.NewEmitter(f.sink, "test", 0, log),
		Log:       log,
	})
	return f
}

func (f *fixture) loginAs(t *testing.T, role domain.Role) {
	t.Helper()
	require.NoError(t, f.app.Session.SetSession(context.Background(), role, "tok-"+role.String()))
}

func okEnv(t *testing.T, data any) domain.Envelope {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return domain.Envelope{StatusCode: 200, Message: "ok", Data: raw}
}

func apiErr(msg string) error {
	return &domain.APIError{Method: "POST", Path: "/x", StatusCode: 400, Message: msg}
}

func TestLogin_RoutesByRole(t *testing.T) {
	cases := []struct {
		role string
		home string
	}{
		{"user", "/user-home"},
		{"manager", "/admin-home"},
		{"admin", "/admin-home"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.role, func(t *testing.T) {
			f := newFixture(t)
			creds := domain.Credentials{Username: "u", Password: "p"}

			gomock.InOrder(
				f.api.EXPECT().Post(gomock.Any(), "/auth/login", creds).
					Return(okEnv(t, domain.LoginResult{AccessToken: "jwt", Role: tc.role}), nil),
				f.notifier.EXPECT().NotifySuccess(gomock.Any(), "Successfully logged in"),
				f.nav.EXPECT().NavigateTo(gomock.Any(), tc.home),
			)

			require.NoError(t, f.svc.Login(context.Background(), creds))
			require.Equal(t, domain.Role(tc.role), f.app.Session.CurrentRole())
			require.Equal(t, "jwt", f.app.Session.Token())
			require.Equal(t, []string{domain.EventSessionStarted}, f.sink.Types())
			require.False(t, f.app.Busy.IsBusy())
		})
	}
}

func TestLogin_Failure_LeavesSessionUnchanged(t *testing.T) {
	f := newFixture(t)
	creds := domain.Credentials{Username: "u", Password: "bad"}

	f.api.EXPECT().Post(gomock.Any(), "/auth/login", creds).Return(domain.Envelope{}, apiErr("Invalid credentials"))
	f.notifier.EXPECT().NotifyError(gomock.Any(), "Failed to login").Times(1)

	err := f.svc.Login(context.Background(), creds)
	require.ErrorIs(t, err, domain.ErrOperationFailed)
	require.Equal(t, domain.RoleNone, f.app.Session.CurrentRole())
	require.Empty(t, f.sink.Events())
}

func TestLogin_UnknownRole(t *testing.T) {
	f := newFixture(t)
	creds := domain.Credentials{Username: "u", Password: "p"}

	f.api.EXPECT().Post(gomock.Any(), "/auth/login", creds).
		Return(okEnv(t, domain.LoginResult{AccessToken: "jwt", Role: "root"}), nil)
	f.notifier.EXPECT().NotifyError(gomock.Any(), "Failed to login")

	require.ErrorIs(t, f.svc.Login(context.Background(), creds), domain.ErrOperationFailed)
	require.False(t, f.app.Session.Authenticated())
}

func TestLogin_NewSessionStartsWithEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, domain.RoleUser)
	f.app.Cart.AddItem(ctx, tea)
	f.app.Cart.AddItem(ctx, bun)

	creds := domain.Credentials{Username: "other", Password: "p"}
	gomock.InOrder(
		f.api.EXPECT().Post(gomock.Any(), "/auth/login", creds).
			Return(okEnv(t, domain.LoginResult{AccessToken: "jwt2", Role: "user"}), nil),
		f.notifier.EXPECT().NotifySuccess(gomock.Any(), "Successfully logged in"),
		f.nav.EXPECT().NavigateTo(gomock.Any(), "/user-home"),
	)

	require.NoError(t, f.svc.Login(ctx, creds))
	require.Equal(t, "jwt2", f.app.Session.Token())
	require.Zero(t, f.app.Cart.Count())
	require.Empty(t, f.app.Cart.Lines())
	require.Equal(t, []string{domain.EventSessionEnded, domain.EventSessionStarted}, f.sink.Types())
}

func TestLogin_Failure_KeepsPreviousCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, domain.RoleUser)
	f.app.Cart.AddItem(ctx, tea)

	creds := domain.Credentials{Username: "other", Password: "p"}
	f.api.EXPECT().Post(gomock.Any(), "/auth/login", creds).
		Return(okEnv(t, domain.LoginResult{AccessToken: "", Role: "user"}), nil)
	f.notifier.EXPECT().NotifyError(gomock.Any(), "Failed to login")

	require.ErrorIs(t, f.svc.Login(ctx, creds), domain.ErrOperationFailed)
	require.Equal(t, "tok-user", f.app.Session.Token())
	require.Equal(t, 1, f.app.Cart.Count())
}

func TestEnterLogin_ClearsSessionAndCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, domain.RoleUser)
	f.app.Cart.AddItem(ctx, tea)

	f.svc.EnterLogin(ctx)

	require.False(t, f.app.Session.Authenticated())
	require.Zero(t, f.app.Cart.Count())
	require.Equal(t, []string{domain.EventSessionEnded}, f.sink.Types())
}

func TestSignup_DefaultsRoleAndRedirects(t *testing.T) {
	f := newFixture(t)
	reg := domain.Registration{Username: "new", Password: "pw"}
	want := domain.Registration{Username: "new", Password: "pw", Role: "user"}

	gomock.InOrder(
		f.api.EXPECT().Post(gomock.Any(), "/auth/register", want).Return(okEnv(t, nil), nil),
		f.notifier.EXPECT().NotifySuccess(gomock.Any(), "Registration successful"),
		f.nav.EXPECT().NavigateTo(gomock.Any(), "/login"),
	)

	require.NoError(t, f.svc.Signup(context.Background(), reg))
}

func TestSignup_RejectsUnknownRole(t *testing.T) {
	f := newFixture(t)
	f.notifier.EXPECT().NotifyError(gomock.Any(), "Failed to register")

	err := f.svc.Signup(context.Background(), domain.Registration{Username: "x", Password: "y", Role: "root"})
	require.ErrorIs(t, err, domain.ErrOperationFailed)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, domain.RoleUser)
	f.app.Cart.AddItem(ctx, tea)

	f.nav.EXPECT().NavigateTo(gomock.Any(), "/login")
	f.svc.Logout(ctx)

	require.False(t, f.app.Session.Authenticated())
	require.Zero(t, f.app.Cart.Len())
}

func TestAdmit(t *testing.T) {
	t.Run("public page", func(t *testing.T) {
		f := newFixture(t)
		require.True(t, f.svc.Admit(context.Background(), "/login"))
	})

	t.Run("no role goes to login", func(t *testing.T) {
		f := newFixture(t)
		f.nav.EXPECT().NavigateTo(gomock.Any(), "/login")
		require.False(t, f.svc.Admit(context.Background(), "/cart"))
	})

	t.Run("manager on admin-only page", func(t *testing.T) {
		f := newFixture(t)
		f.loginAs(t, domain.RoleManager)
		f.nav.EXPECT().NavigateTo(gomock.Any(), "/login")
		require.False(t, f.svc.Admit(context.Background(), "/admin/users"))
		// роль есть, поэтому сессия не сбрасывается
		require.Equal(t, domain.RoleManager, f.app.Session.CurrentRole())
	})

	t.Run("admin on users page", func(t *testing.T) {
		f := newFixture(t)
		f.loginAs(t, domain.RoleAdmin)
		require.True(t, f.svc.Admit(context.Background(), "/admin/users"))
		require.Equal(t, "/admin-home", f.svc.HomePath())
	})
}

func TestAddToCart_CacheHit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, domain.RoleUser)
	require.NoError(t, f.cache.WarmUp(ctx, []domain.MenuItem{tea}))

	f.notifier.EXPECT().NotifySuccess(gomock.Any(), "Tea added to cart").Times(2)

	require.NoError(t, f.svc.AddToCart(ctx, "a"))
	require.NoError(t, f.svc.AddToCart(ctx, "a"))

	require.Equal(t, 2, f.svc.CartBadge())
	require.Equal(t, 1, f.app.Cart.Len())
	require.Equal(t, []string{domain.EventCartItemAdded, domain.EventCartItemAdded}, f.sink.Types())
	require.Equal(t, 2, f.sink.Events()[1].Attributes["quantity"])
}

func TestAddToCart_CacheMiss_FetchesMenuOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, domain.RoleUser)

	f.api.EXPECT().Get(gomock.Any(), "/menu").
		DoAndReturn(func(context.Context, string) (domain.Envelope, error) {
			require.True(t, f.app.Busy.IsBusy())
			return okEnv(t, []domain.MenuItem{tea, bun}), nil
		}).Times(1)
	f.notifier.EXPECT().NotifySuccess(gomock.Any(), gomock.Any()).Times(2)

	require.NoError(t, f.svc.AddToCart(ctx, "a"))
	require.NoError(t, f.svc.AddToCart(ctx, "b"))

	lines, total := f.svc.Cart()
	require.Len(t, lines, 2)
	require.InDelta(t, 15.0, total, 1e-9)
	require.False(t, f.svc.Busy())
}

func TestAddToCart_Unavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.cache.WarmUp(ctx, []domain.MenuItem{pie}))

	f.notifier.EXPECT().NotifyError(gomock.Any(), "Pie is not available")

	require.ErrorIs(t, f.svc.AddToCart(ctx, "c"), usecase.ErrItemUnavailable)
	require.Zero(t, f.app.Cart.Len())
	require.Empty(t, f.sink.Events())
}

func TestAddToCart_NotInMenu(t *testing.T) {
	f := newFixture(t)

	f.api.EXPECT().Get(gomock.Any(), "/menu").Return(okEnv(t, []domain.MenuItem{tea}), nil)
	f.notifier.EXPECT().NotifyError(gomock.Any(), "Menu item not found")

	require.ErrorIs(t, f.svc.AddToCart(context.Background(), "zzz"), usecase.ErrItemUnavailable)
	require.Zero(t, f.app.Cart.Len())
}

func TestAddToCart_MenuFetchFails_ShowsServerMessage(t *testing.T) {
	f := newFixture(t)

	f.api.EXPECT().Get(gomock.Any(), "/menu").Return(domain.Envelope{}, apiErr("menu offline"))
	f.notifier.EXPECT().NotifyError(gomock.Any(), "menu offline").Times(1)

	require.ErrorIs(t, f.svc.AddToCart(context.Background(), "a"), domain.ErrOperationFailed)
	require.Zero(t, f.app.Cart.Len())
	require.False(t, f.app.Busy.IsBusy())
}

func TestRemoveAndClearCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.app.Cart.AddItem(ctx, tea)
	f.app.Cart.AddItem(ctx, tea)
	f.app.Cart.AddItem(ctx, bun)

	require.True(t, f.svc.RemoveFromCart(ctx, "a", 1))
	require.False(t, f.svc.RemoveFromCart(ctx, "missing", 1))
	require.Equal(t, 2, f.svc.CartBadge())

	f.svc.ClearCart(ctx)
	f.svc.ClearCart(ctx)
	require.Zero(t, f.svc.CartBadge())
	require.Equal(t, []string{domain.EventCartItemRemove, domain.EventCartCleared}, f.sink.Types())
}

func TestMenu_WarmsCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.api.EXPECT().Get(gomock.Any(), "/menu").Return(okEnv(t, []domain.MenuItem{tea, pie}), nil)

	items, err := f.svc.Menu(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 2, f.cache.Len())
}

func TestMenu_TransportError_Fallback(t *testing.T) {
	f := newFixture(t)

	f.api.EXPECT().Get(gomock.Any(), "/menu").Return(domain.Envelope{}, errors.New("dial tcp: refused"))
	f.notifier.EXPECT().NotifyError(gomock.Any(), "Failed to fetch menu items")

	_, err := f.svc.Menu(context.Background())
	require.Error(t, err)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, domain.RoleUser)
	f.notifier.EXPECT().NotifyError(gomock.Any(), "Your cart is empty")

	require.ErrorIs(t, f.svc.PlaceOrder(context.Background()), usecase.ErrEmptyCart)
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, domain.RoleUser)
	f.app.Cart.AddItem(ctx, tea)
	f.app.Cart.AddItem(ctx, bun)
	f.app.Cart.AddItem(ctx, tea)

	want := domain.OrderRequest{Items: []domain.OrderRequestItem{
		{MenuItemID: "a", Quantity: 2},
		{MenuItemID: "b", Quantity: 1},
	}}

	gomock.InOrder(
		f.api.EXPECT().Post(gomock.Any(), "/orders", want).Return(okEnv(t, map[string]string{"_id": "o1"}), nil),
		f.notifier.EXPECT().NotifySuccess(gomock.Any(), "Order placed successfully"),
		f.nav.EXPECT().NavigateTo(gomock.Any(), "/user-home"),
	)

	require.NoError(t, f.svc.PlaceOrder(ctx))
	require.Zero(t, f.app.Cart.Len())

	events := f.sink.Events()
	require.Len(t, events, 1)
	require.Equal(t, domain.EventOrderPlaced, events[0].Type)
	require.InDelta(t, 25.0, events[0].Attributes["total"], 1e-9)
}

func TestPlaceOrder_Failure_KeepsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, domain.RoleUser)
	f.app.Cart.AddItem(ctx, tea)

	f.api.EXPECT().Post(gomock.Any(), "/orders", gomock.Any()).Return(domain.Envelope{}, apiErr(""))
	f.notifier.EXPECT().NotifyError(gomock.Any(), "Failed to place order").Times(1)

	require.ErrorIs(t, f.svc.PlaceOrder(ctx), domain.ErrOperationFailed)
	require.Equal(t, 1, f.app.Cart.Count())
	require.False(t, f.app.Busy.IsBusy())
}

func TestDeleteOrder_Permissions(t *testing.T) {
	t.Run("manager forbidden", func(t *testing.T) {
		f := newFixture(t)
		f.loginAs(t, domain.RoleManager)
		f.notifier.EXPECT().NotifyError(gomock.Any(), gomock.Any())

		require.ErrorIs(t, f.svc.DeleteOrder(context.Background(), "o1"), usecase.ErrForbidden)
	})

	t.Run("admin allowed", func(t *testing.T) {
		f := newFixture(t)
		f.loginAs(t, domain.RoleAdmin)
		f.api.EXPECT().Delete(gomock.Any(), "/orders/o1").Return(okEnv(t, nil), nil)
		f.notifier.EXPECT().NotifySuccess(gomock.Any(), "Order deleted successfully")

		require.NoError(t, f.svc.DeleteOrder(context.Background(), "o1"))
	})
}

func TestListOrdersAndUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, domain.RoleAdmin)

	f.api.EXPECT().Get(gomock.Any(), "/orders").
		Return(okEnv(t, []domain.Order{{ID: "o1", TotalAmount: 20, Status: "pending"}}), nil)
	f.api.EXPECT().Get(gomock.Any(), "/auth/users").
		Return(okEnv(t, []domain.User{{ID: "u1", Username: "ann", Role: "user"}}), nil)

	orders, err := f.svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Equal(t, "o1", orders[0].ID)

	users, err := f.svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, "ann", users[0].Username)
}

func TestDeleteUser_Failure(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, domain.RoleAdmin)

	f.api.EXPECT().Delete(gomock.Any(), "/auth/users/u%2F1").Return(domain.Envelope{}, apiErr("nope"))
	f.notifier.EXPECT().NotifyError(gomock.Any(), "Failed to delete user")

	require.Error(t, f.svc.DeleteUser(context.Background(), "u/1"))
}

func TestCreateMenuItem(t *testing.T) {
	t.Run("invalid fields", func(t *testing.T) {
		f := newFixture(t)
		f.loginAs(t, domain.RoleAdmin)
		f.notifier.EXPECT().NotifyError(gomock.Any(), "Please fill in all fields")

		_, err := f.svc.CreateMenuItem(context.Background(), domain.MenuItem{Name: "Soup", Price: 0, Category: "main"})
		require.ErrorIs(t, err, validate.ErrInvalidMenuItem)
	})

	t.Run("manager forbidden", func(t *testing.T) {
		f := newFixture(t)
		f.loginAs(t, domain.RoleManager)
		f.notifier.EXPECT().NotifyError(gomock.Any(), gomock.Any())

		_, err := f.svc.CreateMenuItem(context.Background(), tea)
		require.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("created item is cached", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.loginAs(t, domain.RoleAdmin)

		draft := domain.MenuItem{Name: "Soup", Category: "main", Price: 6, Availability: true}
		created := draft
		created.ID = "new-1"

		f.api.EXPECT().Post(gomock.Any(), "/menu", draft).Return(okEnv(t, created), nil)
		f.notifier.EXPECT().NotifySuccess(gomock.Any(), "Menu item created successfully")

		got, err := f.svc.CreateMenuItem(ctx, draft)
		require.NoError(t, err)
		require.Equal(t, "new-1", got.ID)

		cached, ok := f.cache.Get(ctx, "new-1")
		require.True(t, ok)
		require.Equal(t, created, *cached)
	})
}

func TestDeleteMenuItem_InvalidatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, domain.RoleAdmin)
	require.NoError(t, f.cache.WarmUp(ctx, []domain.MenuItem{tea}))

	f.api.EXPECT().Delete(gomock.Any(), "/menu/a").Return(okEnv(t, nil), nil)
	f.notifier.EXPECT().NotifySuccess(gomock.Any(), "Menu item deleted successfully")

	require.NoError(t, f.svc.DeleteMenuItem(ctx, "a"))
	_, ok := f.cache.Get(ctx, "a")
	require.False(t, ok)
}

func TestMenu_CacheWarmUpFailureDoesNotFailPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := noopLogger{}
	api := mocks.NewMockAPIClient(ctrl)
	cache := mocks.NewMockMenuCache(ctrl)
	app := appctx.New(context.Background(), "test", memstore.NewStore(), log)

	svc := usecase.NewService(usecase.Deps{
		App:       app,
		API:       api,
		Cache:     cache,
		Notifier:  mocks.NewMockNotifier(ctrl),
		Navigator: mocks.NewMockNavigator(ctrl),
		Policy:    routes.MustDefault(),
		Validator: validate.NewMenuItemValidator(),
		Log:       log,
	})

	api.EXPECT().Get(gomock.Any(), "/menu").Return(okEnv(t, []domain.MenuItem{tea, bun}), nil)
	cache.EXPECT().WarmUp(gomock.Any(), []domain.MenuItem{tea, bun}).Return(context.DeadlineExceeded)

	items, err := svc.Menu(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.False(t, svc.Busy())
}

func TestAddToCart_CacheHitSkipsAPI(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := noopLogger{}
	cache := mocks.NewMockMenuCache(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	app := appctx.New(context.Background(), "test", memstore.NewStore(), log)

	// API-клиент без ожиданий: любой вызов провалит тест
	svc := usecase.NewService(usecase.Deps{
		App:       app,
		API:       mocks.NewMockAPIClient(ctrl),
		Cache:     cache,
		Notifier:  notifier,
		Navigator: mocks.NewMockNavigator(ctrl),
		Policy:    routes.MustDefault(),
		Validator: validate.NewMenuItemValidator(),
		Log:       log,
	})

	item := tea
	cache.EXPECT().Get(gomock.Any(), "a").Return(&item, true)
	notifier.EXPECT().NotifySuccess(gomock.Any(), "Tea added to cart")

	require.NoError(t, svc.AddToCart(context.Background(), "a"))
	require.Equal(t, 1, svc.CartBadge())
}

func TestListOrders_NullDataIsEmptyList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, domain.RoleAdmin)

	// уведомлений не ожидается: пустой список не ошибка
	f.api.EXPECT().Get(gomock.Any(), "/orders").
		Return(domain.Envelope{StatusCode: 200, Message: "ok", Data: json.RawMessage("null")}, nil)

	orders, err := f.svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)
}
