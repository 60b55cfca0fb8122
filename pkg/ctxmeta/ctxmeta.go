// Пакет ctxmeta - метаданные запроса, которые едут через context.Context
// (request_id, trace_id, span_id). HTTP-слой, API-клиент и логгер зависят
// от этого пакета, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// KeyRequestID - ключ request_id (собственный тип, чтобы не было коллизий).
	KeyRequestID ctxKey = "request_id"
)

// WithRequestID кладёт request_id в контекст (если пусто - ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// TraceRef - идентификаторы спана для логов.
type TraceRef struct {
	TraceID string
	SpanID  string
	Sampled bool
}

// LogFields - пары ключ/значение для структурного логгера; отсутствующие поля пропускаются.
func LogFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var fields []any
	if rid, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", rid)
	}
	if ref, ok := Trace(ctx); ok {
		fields = append(fields, "trace_id", ref.TraceID, "span_id", ref.SpanID)
	}
	return fields
}
