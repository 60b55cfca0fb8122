// Пакет file - хранилище профиля клиента в JSON-файле.
// Один профиль = один файл <dir>/<profile>.json с плоским объектом "ключ -> строка".
// Файл переживает перезапуск процесса так же, как localStorage переживает перезагрузку страницы.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Gunvolt24/foodorder/internal/ports"
)

var _ ports.KVStore = (*Store)(nil)

// ErrEmptyProfile - имя профиля не задано.
var ErrEmptyProfile = errors.New("profile name is required")

// Store - файловое хранилище профиля.
type Store struct {
	path string
	log  ports.Logger

	mu    sync.Mutex
	items map[string]string
}

// Open - открывает (или создаёт при первой записи) файл профиля.
// Повреждённый файл не считается ошибкой: хранилище стартует пустым,
// а файл будет перезаписан при первой же записи.
func Open(ctx context.Context, dir, profile string, log ports.Logger) (*Store, error) {
	if profile == "" {
		return nil, ErrEmptyProfile
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}

	s := &Store{
		path:  filepath.Join(dir, profile+".json"),
		log:   log,
		items: make(map[string]string),
	}

	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read profile: %w", err)
	}

	if len(raw) > 0 {
		if decodeErr := json.Unmarshal(raw, &s.items); decodeErr != nil {
			log.Warnf(ctx, "profile file is corrupted, starting empty path=%s err=%v", s.path, decodeErr)
			s.items = make(map[string]string)
		}
	}
	return s, nil
}

// Path - путь к файлу профиля.
func (s *Store) Path() string { return s.path }

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.items[key]
	s.items[key] = value
	if err := s.flushLocked(); err != nil {
		if had {
			s.items[key] = prev
		} else {
			delete(s.items, key)
		}
		return err
	}
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.items[key]
	if !had {
		return nil
	}
	delete(s.items, key)
	if err := s.flushLocked(); err != nil {
		s.items[key] = prev
		return err
	}
	return nil
}

// flushLocked - атомарная запись: временный файл + rename.
func (s *Store) flushLocked() error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".profile-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace profile: %w", err)
	}
	return nil
}
