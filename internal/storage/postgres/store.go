package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что Store удовлетворяет интерфейсу KVStore.
var _ ports.KVStore = (*Store)(nil)

// Store - хранилище профиля в таблице client_storage.
// Используется на киосках, где профиль должен пережить замену диска/контейнера.
type Store struct {
	pool    *pgxpool.Pool
	profile string
}

// NewStore - конструктор Store для одного профиля.
func NewStore(pool *pgxpool.Pool, profile string) *Store {
	return &Store{pool: pool, profile: profile}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `
		SELECT value FROM client_storage
		WHERE profile = $1 AND key = $2
	`, s.profile, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %s: %w", key, err)
	}
	return value, true, nil
}

// Set - upsert по (profile, key).
func (s *Store) Set(ctx context.Context, key, value string) error {
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO client_storage (profile, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (profile, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, s.profile, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `
		DELETE FROM client_storage WHERE profile = $1 AND key = $2
	`, s.profile, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
