package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const dispatchMeterName = "dispatch.service"

const (
	TokenCacheHit     = "hit"
	TokenCacheRefresh = "refresh"
)

type DispatchMetrics struct {
	dispatchTotal         metric.Int64Counter
	dispatchDuration      metric.Float64Histogram
	tokenExchangeDuration metric.Float64Histogram
	tokenCacheTotal       metric.Int64Counter
}

func NewDispatchMetrics() (*DispatchMetrics, error) {
	meter := otel.Meter(dispatchMeterName)

	dispatchTotal, err := meter.Int64Counter(
		"push_dispatch_total",
		metric.WithDescription("Total number of push dispatch attempts"),
		metric.WithUnit("{dispatch}"),
	)
	if err != nil {
		return nil, err
	}

	dispatchDuration, err := meter.Float64Histogram(
		"push_dispatch_duration_seconds",
		metric.WithDescription("End-to-end push dispatch duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	tokenExchangeDuration, err := meter.Float64Histogram(
		"push_token_exchange_duration_seconds",
		metric.WithDescription("OAuth2 token exchange duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	tokenCacheTotal, err := meter.Int64Counter(
		"push_token_cache_total",
		metric.WithDescription("Access token cache lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	return &DispatchMetrics{
		dispatchTotal:         dispatchTotal,
		dispatchDuration:      dispatchDuration,
		tokenExchangeDuration: tokenExchangeDuration,
		tokenCacheTotal:       tokenCacheTotal,
	}, nil
}

func (m *DispatchMetrics) RecordDispatch(ctx context.Context, result string, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("result", result))
	m.dispatchTotal.Add(ctx, 1, attrs)
	m.dispatchDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *DispatchMetrics) RecordTokenExchange(ctx context.Context, duration time.Duration) {
	if m == nil {
		return
	}
	m.tokenExchangeDuration.Record(ctx, duration.Seconds())
}

func (m *DispatchMetrics) RecordTokenCache(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.tokenCacheTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
