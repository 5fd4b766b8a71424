package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const dispatchTracerName = "github.com/KasumiMercury/primind-push-dispatch/internal/service/dispatch"

func DispatchTracer() trace.Tracer {
	return otel.Tracer(dispatchTracerName)
}

func StartDispatchSpan(ctx context.Context, tokenMasked string) (context.Context, trace.Span) {
	return DispatchTracer().Start(ctx, "dispatch.push",
		trace.WithAttributes(
			attribute.String("fcm.token_masked", tokenMasked),
		),
	)
}

func StartTokenExchangeSpan(ctx context.Context, tokenURL string) (context.Context, trace.Span) {
	return DispatchTracer().Start(ctx, "dispatch.token_exchange",
		trace.WithAttributes(
			attribute.String("url", tokenURL),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartSendSpan(ctx context.Context, endpoint string) (context.Context, trace.Span) {
	return DispatchTracer().Start(ctx, "dispatch.send",
		trace.WithAttributes(
			attribute.String("url", endpoint),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordHTTPStatus(span trace.Span, statusCode int) {
	span.SetAttributes(attribute.Int("http.status_code", statusCode))
	if statusCode >= 400 {
		span.SetStatus(codes.Error, "upstream returned error status")
	}
}

func RecordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
