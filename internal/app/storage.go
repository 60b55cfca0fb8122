package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/foodorder/config"
	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/Gunvolt24/foodorder/internal/storage/file"
	"github.com/Gunvolt24/foodorder/internal/storage/memory"
	"github.com/Gunvolt24/foodorder/internal/storage/postgres"
)

// ErrUnknownDriver - в конфигурации указан неизвестный драйвер хранилища.
var ErrUnknownDriver = errors.New("unknown storage driver")

// OpenStore - хранилище профиля по Storage.Driver.
// Возвращает функцию закрытия (для memory/file - no-op).
func OpenStore(ctx context.Context, cfg config.Storage, profile string, log ports.Logger) (ports.KVStore, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "memory":
		log.Warnf(ctx, "profile %s is kept in memory and will not survive a restart", profile)
		return memory.NewStore(), noop, nil

	case "", "file":
		store, err := file.Open(ctx, cfg.Dir, profile, log)
		if err != nil {
			return nil, nil, err
		}
		log.Infof(ctx, "profile storage file=%s", store.Path())
		return store, noop, nil

	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN, cfg.MaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres pool: %w", err)
		}
		if cfg.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		log.Infof(ctx, "profile storage postgres profile=%s", profile)
		return postgres.NewStore(pool, profile), func() error { pool.Close(); return nil }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
