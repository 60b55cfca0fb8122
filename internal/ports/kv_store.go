package ports

import "context"

// KVStore - сырое хранилище "ключ -> строка" одного профиля клиента.
// Отсутствие ключа - это ("", false, nil), а не ошибка.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
