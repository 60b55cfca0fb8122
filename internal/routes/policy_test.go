package routes_test

import (
	"testing"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/routes"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()
	p, err := routes.Default()
	require.NoError(t, err)
	require.Equal(t, "/login", p.Login)
}

func TestPage(t *testing.T) {
	t.Parallel()
	p := routes.MustDefault()

	tests := []struct {
		path   string
		roles  []domain.Role
		public bool
	}{
		{"/login", nil, true},
		{"/signup", nil, true},
		{"/cart", []domain.Role{domain.RoleUser}, false},
		{"/admin/users", []domain.Role{domain.RoleAdmin}, false},
		{"/admin/orders", []domain.Role{domain.RoleAdmin, domain.RoleManager}, false},
	}
	for _, tt := range tests {
		roles, public := p.Page(tt.path)
		require.Equal(t, tt.public, public, tt.path)
		require.Equal(t, tt.roles, roles, tt.path)
	}
}

func TestHome(t *testing.T) {
	t.Parallel()
	p := routes.MustDefault()

	require.Equal(t, "/user-home", p.Home(domain.RoleUser))
	require.Equal(t, "/admin-home", p.Home(domain.RoleManager))
	require.Equal(t, "/admin-home", p.Home(domain.RoleAdmin))
	require.Equal(t, "/login", p.Home(domain.RoleNone))
}

func TestAction(t *testing.T) {
	t.Parallel()
	p := routes.MustDefault()

	require.Equal(t, []domain.Role{domain.RoleAdmin}, p.Action("menu.create"))
	require.Nil(t, p.Action("unknown.action"))
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"not_yaml", "login: [unclosed"},
		{"no_login", "pages: {/cart: [user]}"},
		{"unknown_role_in_pages", "login: /login\npages: {/cart: [root]}"},
		{"unknown_home_role", "login: /login\nhomes: {root: /root}"},
		{"empty_roles", "login: /login\nactions: {menu.create: []}"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := routes.Parse([]byte(tt.raw))
			require.ErrorIs(t, err, routes.ErrInvalidPolicy)
		})
	}
}
