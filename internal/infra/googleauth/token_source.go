package googleauth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/KasumiMercury/primind-push-dispatch/internal/domain"
	"github.com/KasumiMercury/primind-push-dispatch/internal/observability/metrics"
)

//go:generate mockgen -source=token_source.go -destination=mock.go -package=googleauth

// TokenSource yields a bearer token valid for at least the immediate call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// CachedTokenSource holds one access token per service account identity and
// refreshes it only when absent or inside the expiry leeway. Concurrent
// refreshes collapse into a single assertion mint and exchange.
type CachedTokenSource struct {
	cred      *Credential
	tokenURL  string
	exchanger *Exchanger
	leeway    time.Duration
	dispatch  *metrics.DispatchMetrics

	now func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	group singleflight.Group
}

func NewCachedTokenSource(cred *Credential, tokenURL string, exchanger *Exchanger, leeway time.Duration, dispatchMetrics *metrics.DispatchMetrics) *CachedTokenSource {
	return &CachedTokenSource{
		cred:      cred,
		tokenURL:  tokenURL,
		exchanger: exchanger,
		leeway:    leeway,
		dispatch:  dispatchMetrics,
		now:       time.Now,
	}
}

func (s *CachedTokenSource) Token(ctx context.Context) (string, error) {
	if s.cred == nil {
		return "", domain.ErrCredentialMissing
	}

	if token, ok := s.cached(); ok {
		if s.dispatch != nil {
			s.dispatch.RecordTokenCache(ctx, metrics.TokenCacheHit)
		}
		return token, nil
	}

	result, err, _ := s.group.Do(s.cred.ClientEmail, func() (any, error) {
		// Another waiter may have refreshed while this one queued.
		if token, ok := s.cached(); ok {
			return token, nil
		}
		return s.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (s *CachedTokenSource) cached() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" || !s.now().Add(s.leeway).Before(s.expiresAt) {
		return "", false
	}
	return s.token, true
}

func (s *CachedTokenSource) refresh(ctx context.Context) (string, error) {
	if s.dispatch != nil {
		s.dispatch.RecordTokenCache(ctx, metrics.TokenCacheRefresh)
	}

	now := s.now()
	assertion, err := BuildAssertion(s.cred, s.tokenURL, now)
	if err != nil {
		return "", err
	}

	slog.DebugContext(ctx, "assertion built",
		slog.String("issuer", s.cred.ClientEmail),
		slog.String("audience", s.tokenURL),
	)

	exchangeStart := time.Now()
	accessToken, err := s.exchanger.Exchange(ctx, assertion)
	if err != nil {
		return "", err
	}
	if s.dispatch != nil {
		s.dispatch.RecordTokenExchange(ctx, time.Since(exchangeStart))
	}

	s.mu.Lock()
	s.token = accessToken.Value
	s.expiresAt = now.Add(time.Duration(accessToken.ExpiresIn) * time.Second)
	s.mu.Unlock()

	slog.InfoContext(ctx, "token exchanged",
		slog.String("issuer", s.cred.ClientEmail),
		slog.Int("expires_in", accessToken.ExpiresIn),
	)

	return accessToken.Value, nil
}
