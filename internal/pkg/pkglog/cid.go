package pkglog

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type correlationIDKey struct{}

// GetCorrelationID returns the correlation ID stored in the context, or "".
func GetCorrelationID(ctx context.Context) string {
	cid, _ := ctx.Value(correlationIDKey{}).(string)
	return cid
}

// SetCorrelationID stores a correlation ID into the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cid)
}

// traceIDs returns the ids of the span in ctx, if it carries a valid one.
func traceIDs(ctx context.Context) (traceID, spanID string, ok bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
