package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/primind-push-dispatch/internal/domain"
	"github.com/KasumiMercury/primind-push-dispatch/internal/observability/tracing"
)

type Client struct {
	endpoint   string
	projectID  string
	httpClient *http.Client
}

func NewClient(endpoint, projectID string, timeout time.Duration) *Client {
	return &Client{
		endpoint:  endpoint,
		projectID: projectID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send posts the composed message to the per-project send endpoint. 2xx
// returns the gateway body; anything else surfaces as *DispatchError without
// internal retry so the caller stays in control of retry policy.
func (c *Client) Send(ctx context.Context, msg SendRequest, accessToken string) (json.RawMessage, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FCM endpoint: %w", err)
	}
	u.Path = fmt.Sprintf("/v1/projects/%s/messages:send", c.projectID)

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	sendCtx, span := tracing.StartSendSpan(ctx, u.String())
	defer span.End()
	req = req.WithContext(sendCtx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		tracing.RecordSpanError(span, err)
		slog.ErrorContext(ctx, "failed to reach FCM",
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		return nil, wrapOutboundError("fcm send", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		tracing.RecordSpanError(span, err)
		return nil, fmt.Errorf("failed to read FCM response body: %w", err)
	}

	tracing.RecordHTTPStatus(span, resp.StatusCode)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		slog.ErrorContext(ctx, "FCM rejected message",
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, &DispatchError{
			StatusCode: resp.StatusCode,
			Body:       json.RawMessage(respBody),
		}
	}

	return json.RawMessage(respBody), nil
}

func wrapOutboundError(operation string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%s: %w", operation, domain.ErrOutboundTimeout)
	}
	return fmt.Errorf("%s request failed: %w", operation, err)
}
