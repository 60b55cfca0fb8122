package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Gunvolt24/foodorder/internal/storage/file"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func TestStore_SurvivesReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	s, err := file.Open(ctx, dir, "default", noopLogger{})
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "cart", `[{"_id":"a","quantity":1}]`))
	require.NoError(t, s.Set(ctx, "userRole", "user"))
	require.NoError(t, s.Delete(ctx, "userRole"))

	reopened, err := file.Open(ctx, dir, "default", noopLogger{})
	require.NoError(t, err)

	v, ok, err := reopened.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"_id":"a","quantity":1}]`, v)

	_, ok, err = reopened.Get(ctx, "userRole")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_CorruptedFileStartsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o600))

	s, err := file.Open(ctx, dir, "broken", noopLogger{})
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	require.False(t, ok)

	// первая запись перезаписывает испорченный файл
	require.NoError(t, s.Set(ctx, "cart", "[]"))
	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.JSONEq(t, `{"cart":"[]"}`, string(raw))
}

func TestOpen_EmptyProfile(t *testing.T) {
	t.Parallel()
	_, err := file.Open(context.Background(), t.TempDir(), "", noopLogger{})
	require.True(t, errors.Is(err, file.ErrEmptyProfile))
}
