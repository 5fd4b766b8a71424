package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-push-dispatch/internal/domain"
	"github.com/KasumiMercury/primind-push-dispatch/internal/observability/tracing"
)

const jwtBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// AccessToken is a short-lived bearer credential returned by the OAuth2
// token endpoint.
type AccessToken struct {
	Value     string
	TokenType string
	ExpiresIn int
}

type tokenEndpointResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type Exchanger struct {
	tokenURL   string
	httpClient *http.Client
}

func NewExchanger(tokenURL string, timeout time.Duration) *Exchanger {
	return &Exchanger{
		tokenURL: tokenURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Exchange trades a signed assertion for an access token under the
// jwt-bearer grant. A non-2xx response surfaces as *TokenExchangeError and is
// never retried here.
func (e *Exchanger) Exchange(ctx context.Context, assertion string) (*AccessToken, error) {
	form := url.Values{}
	form.Set("grant_type", jwtBearerGrantType)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	exchangeCtx, span := tracing.StartTokenExchangeSpan(ctx, e.tokenURL)
	defer span.End()
	req = req.WithContext(exchangeCtx)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		tracing.RecordSpanError(span, err)
		slog.ErrorContext(ctx, "failed to reach token endpoint",
			slog.String("url", e.tokenURL),
			slog.String("error", err.Error()),
		)
		return nil, wrapOutboundError("token exchange", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		tracing.RecordSpanError(span, err)
		return nil, fmt.Errorf("failed to read token response body: %w", err)
	}

	tracing.RecordHTTPStatus(span, resp.StatusCode)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		slog.ErrorContext(ctx, "token endpoint rejected assertion",
			slog.String("url", e.tokenURL),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, &TokenExchangeError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var parsed tokenEndpointResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	slog.DebugContext(ctx, "access token obtained",
		slog.String("token_type", parsed.TokenType),
		slog.Int("expires_in", parsed.ExpiresIn),
	)

	return &AccessToken{
		Value:     parsed.AccessToken,
		TokenType: parsed.TokenType,
		ExpiresIn: parsed.ExpiresIn,
	}, nil
}

func wrapOutboundError(operation string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%s: %w", operation, domain.ErrOutboundTimeout)
	}
	return fmt.Errorf("%s request failed: %w", operation, err)
}
