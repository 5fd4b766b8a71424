package dispatch

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-push-dispatch/internal/domain"
	"github.com/KasumiMercury/primind-push-dispatch/internal/infra/fcm"
	"github.com/KasumiMercury/primind-push-dispatch/internal/infra/googleauth"
	"github.com/KasumiMercury/primind-push-dispatch/internal/observability/metrics"
	"github.com/KasumiMercury/primind-push-dispatch/internal/observability/tracing"
)

//go:generate mockgen -source=service.go -destination=mock.go -package=dispatch

// MessageSender delivers a composed message to the push gateway.
type MessageSender interface {
	Send(ctx context.Context, msg fcm.SendRequest, accessToken string) (json.RawMessage, error)
}

type Service struct {
	tokens          googleauth.TokenSource
	sender          MessageSender
	dispatchMetrics *metrics.DispatchMetrics
}

func NewService(tokens googleauth.TokenSource, sender MessageSender, dispatchMetrics *metrics.DispatchMetrics) *Service {
	return &Service{
		tokens:          tokens,
		sender:          sender,
		dispatchMetrics: dispatchMetrics,
	}
}

// Dispatch runs the sequential pipeline for one push: acquire a bearer token,
// compose the gateway message, deliver it. All state is request-scoped.
func (s *Service) Dispatch(ctx context.Context, req domain.PushRequest) (*domain.DispatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	tokenMasked := maskToken(req.Token)

	ctx, span := tracing.StartDispatchSpan(ctx, tokenMasked)
	defer span.End()

	accessToken, err := s.tokens.Token(ctx)
	if err != nil {
		tracing.RecordSpanError(span, err)
		s.dispatchMetrics.RecordDispatch(ctx, "token_error", time.Since(start))
		slog.ErrorContext(ctx, "failed to acquire access token",
			slog.String("fcm_token_masked", tokenMasked),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	msg := fcm.Compose(req)

	gatewayResp, err := s.sender.Send(ctx, msg, accessToken)
	if err != nil {
		tracing.RecordSpanError(span, err)
		s.dispatchMetrics.RecordDispatch(ctx, "dispatch_error", time.Since(start))
		slog.ErrorContext(ctx, "failed to deliver push",
			slog.String("fcm_token_masked", tokenMasked),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	duration := time.Since(start)
	s.dispatchMetrics.RecordDispatch(ctx, "delivered", duration)

	slog.InfoContext(ctx, "dispatch completed",
		slog.String("fcm_token_masked", tokenMasked),
		slog.Int64("duration_ms", duration.Milliseconds()),
	)

	return &domain.DispatchResult{
		Delivered:       true,
		GatewayResponse: gatewayResp,
		Duration:        duration,
	}, nil
}

// maskToken keeps a short prefix for log correlation without exposing the
// device token.
func maskToken(token string) string {
	const visible = 8
	if len(token) <= visible {
		return token
	}
	return token[:visible] + "..."
}
