//go:build !otel || gopls

package ctxmeta

import "context"

// Trace - без тега otel спанов нет.
func Trace(context.Context) (TraceRef, bool) { return TraceRef{}, false }
