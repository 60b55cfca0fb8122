package activity

import (
	"context"
	"sync"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/ports"
)

var _ ports.ActivitySink = (*CaptureSink)(nil)

// CaptureSink - приёмник в памяти; используется в тестах и при выключенном брокере в cartctl.
type CaptureSink struct {
	Err    error
	mu     sync.Mutex
	events []domain.ActivityEvent
}

// Publish - запоминает событие и возвращает заданную ошибку.
func (s *CaptureSink) Publish(_ context.Context, event domain.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.Err
}

// Close - ничего не делает.
func (s *CaptureSink) Close() error { return nil }

// Events - копия записанных событий.
func (s *CaptureSink) Events() []domain.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ActivityEvent(nil), s.events...)
}

// Types - типы записанных событий по порядку.
func (s *CaptureSink) Types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Type)
	}
	return out
}
