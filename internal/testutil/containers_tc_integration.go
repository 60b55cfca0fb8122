//go:build integration

// Пакет testutil - окружение интеграционных тестов: контейнеры Postgres и
// Redpanda, топики активности, генераторы позиций меню.
package testutil

import (
	"context"
	"testing"
	"time"

	pgstore "github.com/Gunvolt24/foodorder/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16-alpine"
	redpandaImage = "docker.redpanda.com/redpandadata/redpanda:v23.3.8"
)

// lifecycle - этапы жизни контейнера в вывод теста.
func lifecycle(t testing.TB) tc.ContainerLifecycleHooks {
	short := func(c tc.Container) string {
		id := c.GetContainerID()
		if len(id) > 12 {
			return id[:12]
		}
		return id
	}
	return tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{
			func(_ context.Context, req tc.ContainerRequest) error {
				t.Logf("[tc] creating image=%s", req.Image)
				return nil
			},
		},
		PostReadies: []tc.ContainerHook{
			func(_ context.Context, c tc.Container) error {
				t.Logf("[tc] ready id=%s", short(c))
				return nil
			},
		},
		PostTerminates: []tc.ContainerHook{
			func(_ context.Context, c tc.Container) error {
				t.Logf("[tc] terminated id=%s", short(c))
				return nil
			},
		},
	}
}

// StartPostgres - контейнер Postgres с применённой схемой хранилища профилей.
// Пул и контейнер закрываются в t.Cleanup.
func StartPostgres(ctx context.Context, t testing.TB) *pgxpool.Pool {
	t.Helper()

	pg, err := postgres.Run(
		ctx,
		postgresImage,
		tc.WithLifecycleHooks(lifecycle(t)),
		postgres.WithDatabase("foodorder"),
		postgres.WithUsername("app"),
		postgres.WithPassword("app"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("run postgres: %v", err)
	}
	t.Cleanup(func() { _ = tc.TerminateContainer(pg) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres dsn: %v", err)
	}

	pool, err := pgstore.NewPool(ctx, dsn, 4)
	if err != nil {
		t.Fatalf("postgres pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pgstore.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

// StartRedpanda - Kafka-совместимый брокер; возвращает адреса для клиента.
func StartRedpanda(ctx context.Context, t testing.TB) []string {
	t.Helper()

	rp, err := redpanda.Run(
		ctx,
		redpandaImage,
		tc.WithLifecycleHooks(lifecycle(t)),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		t.Fatalf("run redpanda: %v", err)
	}
	t.Cleanup(func() { _ = tc.TerminateContainer(rp) })

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		t.Fatalf("seed broker: %v", err)
	}
	return []string{seed}
}
