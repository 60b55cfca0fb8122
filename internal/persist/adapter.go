// Пакет persist - адаптер постоянного хранилища профиля.
// Поверх сырого KVStore даёт чтение/запись JSON-значений и строк.
// Чтение никогда не возвращает ошибку: отсутствующее, недоступное или
// повреждённое значение считается отсутствующим.
package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/Gunvolt24/foodorder/pkg/metrics"
)

// Adapter - read-modify-write по ключам профиля.
type Adapter struct {
	kv  ports.KVStore
	log ports.Logger
}

// NewAdapter - DI-конструктор.
func NewAdapter(kv ports.KVStore, log ports.Logger) *Adapter {
	return &Adapter{kv: kv, log: log}
}

// Load - читает JSON-значение ключа в dst.
// false - ключа нет, хранилище недоступно или значение не декодируется; dst при этом не трогаем.
func (a *Adapter) Load(ctx context.Context, key string, dst any) bool {
	raw, ok := a.LoadString(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		a.log.Warnf(ctx, "stored value is not valid json, treating as absent key=%s err=%v", key, err)
		metrics.StoreDecodeFailures.WithLabelValues(key).Inc()
		return false
	}
	return true
}

// LoadString - читает сырое строковое значение ключа.
func (a *Adapter) LoadString(ctx context.Context, key string) (string, bool) {
	raw, ok, err := a.kv.Get(ctx, key)
	if err != nil {
		a.log.Warnf(ctx, "store read failed, treating as absent key=%s err=%v", key, err)
		metrics.StoreDecodeFailures.WithLabelValues(key).Inc()
		return "", false
	}
	return raw, ok
}

// Save - кодирует value в JSON и записывает под ключом.
func (a *Adapter) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return a.SaveString(ctx, key, string(raw))
}

// SaveString - записывает строку как есть.
func (a *Adapter) SaveString(ctx context.Context, key, value string) error {
	if err := a.kv.Set(ctx, key, value); err != nil {
		metrics.StoreWriteFailures.WithLabelValues(key).Inc()
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Remove - удаляет ключ; отсутствие ключа ошибкой не является.
func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.kv.Delete(ctx, key); err != nil {
		metrics.StoreWriteFailures.WithLabelValues(key).Inc()
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
