//go:build otel && !gopls

package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Trace - ссылка на активный спан (его создают otelgin на входе и otelhttp
// в API-клиенте).
func Trace(ctx context.Context) (TraceRef, bool) {
	if ctx == nil {
		return TraceRef{}, false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return TraceRef{}, false
	}
	return TraceRef{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
		Sampled: sc.IsSampled(),
	}, true
}
