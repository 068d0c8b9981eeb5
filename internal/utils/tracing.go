package utils

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TraceOperation starts a span with the given attributes and returns a
// cleanup func that records the elapsed time before ending the span.
func TraceOperation(ctx context.Context, operationName string, attributes map[string]interface{}) (context.Context, trace.Span, func()) {
	start := time.Now()

	otelAttrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		otelAttrs = append(otelAttrs, toAttribute(k, v))
	}

	spanCtx, span := otel.Tracer("quick-registration").Start(ctx, operationName, trace.WithAttributes(otelAttrs...))

	cleanup := func() {
		duration := time.Since(start)
		span.SetAttributes(
			attribute.Int64("duration_ms", duration.Milliseconds()),
		)
		span.End()
	}

	return spanCtx, span, cleanup
}

// TraceInputValidation traces a validation step within an endpoint
func TraceInputValidation(ctx context.Context, validationType, field string) (context.Context, trace.Span) {
	spanCtx, span, _ := traceStep(ctx, "validation."+validationType, map[string]interface{}{
		"validation.type":  validationType,
		"validation.field": field,
	})
	return spanCtx, span
}

// TraceStoreRead traces a whole-value read of a storage key
func TraceStoreRead(ctx context.Context, key string) (context.Context, trace.Span) {
	spanCtx, span, _ := traceStep(ctx, "store.read", map[string]interface{}{
		"store.key":       key,
		"store.operation": "read",
	})
	return spanCtx, span
}

// TraceStoreWrite traces a whole-value write of a storage key
func TraceStoreWrite(ctx context.Context, key string) (context.Context, trace.Span) {
	spanCtx, span, _ := traceStep(ctx, "store.write", map[string]interface{}{
		"store.key":       key,
		"store.operation": "write",
	})
	return spanCtx, span
}

// TraceBusinessLogic traces a business logic step
func TraceBusinessLogic(ctx context.Context, logicType string) (context.Context, trace.Span) {
	spanCtx, span, _ := traceStep(ctx, "business."+logicType, map[string]interface{}{
		"logic.type": logicType,
	})
	return spanCtx, span
}

// TraceResponseSerialization traces response serialization
func TraceResponseSerialization(ctx context.Context, responseType string) (context.Context, trace.Span) {
	spanCtx, span, _ := traceStep(ctx, "response.serialize", map[string]interface{}{
		"response.type": responseType,
	})
	return spanCtx, span
}

// RecordErrorInSpan records an error with additional context attributes
func RecordErrorInSpan(span trace.Span, err error, context map[string]interface{}) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	for k, v := range context {
		span.SetAttributes(toAttribute(k, v))
	}
}

// AddSpanAttribute adds a single attribute to a span
func AddSpanAttribute(span trace.Span, key string, value interface{}) {
	span.SetAttributes(toAttribute(key, value))
}

func traceStep(ctx context.Context, name string, attributes map[string]interface{}) (context.Context, trace.Span, func()) {
	return TraceOperation(ctx, name, attributes)
}

func toAttribute(k string, v interface{}) attribute.KeyValue {
	switch val := v.(type) {
	case string:
		return attribute.String(k, val)
	case int:
		return attribute.Int(k, val)
	case int64:
		return attribute.Int64(k, val)
	case bool:
		return attribute.Bool(k, val)
	case float64:
		return attribute.Float64(k, val)
	default:
		return attribute.String(k, "unknown_type")
	}
}
