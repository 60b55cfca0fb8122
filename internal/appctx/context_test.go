package appctx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunvolt24/foodorder/internal/appctx"
	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/storage/memory"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func TestNew_RestoresProfile(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()

	first := appctx.New(ctx, "p1", kv, noopLogger{})
	require.NoError(t, first.Session.SetSession(ctx, domain.RoleUser, "tok"))
	first.Cart.AddItem(ctx, domain.MenuItem{ID: "A", Name: "Tea", Price: 10})
	first.Cart.AddItem(ctx, domain.MenuItem{ID: "A", Name: "Tea", Price: 10})

	second := appctx.New(ctx, "p1", kv, noopLogger{})
	require.Equal(t, domain.RoleUser, second.Session.CurrentRole())
	require.Equal(t, 2, second.Cart.Count())
	require.False(t, second.Busy.IsBusy())
}

func TestClearSession_ClearsSharedCart(t *testing.T) {
	ctx := context.Background()
	c := appctx.New(ctx, "p1", memory.NewStore(), noopLogger{})
	require.NoError(t, c.Session.SetSession(ctx, domain.RoleUser, "tok"))
	c.Cart.AddItem(ctx, domain.MenuItem{ID: "A", Price: 1})

	c.Session.ClearSession(ctx)

	require.Equal(t, 0, c.Cart.Len())
}

func TestClose_RunsClosersInReverseOnce(t *testing.T) {
	var order []string
	boom := errors.New("pool close failed")

	c := appctx.New(context.Background(), "p1", memory.NewStore(), noopLogger{},
		appctx.WithCloser(func() error { order = append(order, "first"); return nil }),
		appctx.WithCloser(func() error { order = append(order, "second"); return boom }),
	)

	require.ErrorIs(t, c.Close(), boom)
	require.ErrorIs(t, c.Close(), boom)
	require.Equal(t, []string{"second", "first"}, order)
}
