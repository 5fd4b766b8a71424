package googleauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-push-dispatch/internal/domain"
)

func TestExchange(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotContentType, gotGrantType, gotAssertion string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			if err := r.ParseForm(); err != nil {
				t.Errorf("failed to parse form: %v", err)
			}
			gotGrantType = r.PostFormValue("grant_type")
			gotAssertion = r.PostFormValue("assertion")

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"T","token_type":"Bearer","expires_in":3600}`))
		}))
		defer server.Close()

		exchanger := NewExchanger(server.URL, 5*time.Second)
		token, err := exchanger.Exchange(context.Background(), "header.payload.signature")
		if err != nil {
			t.Fatalf("Exchange returned error: %v", err)
		}

		if gotContentType != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type: got %q", gotContentType)
		}
		if gotGrantType != "urn:ietf:params:oauth:grant-type:jwt-bearer" {
			t.Errorf("grant_type: got %q", gotGrantType)
		}
		if gotAssertion != "header.payload.signature" {
			t.Errorf("assertion: got %q", gotAssertion)
		}
		if token.Value != "T" {
			t.Errorf("Value: got %q, want T", token.Value)
		}
		if token.TokenType != "Bearer" {
			t.Errorf("TokenType: got %q, want Bearer", token.TokenType)
		}
		if token.ExpiresIn != 3600 {
			t.Errorf("ExpiresIn: got %d, want 3600", token.ExpiresIn)
		}
	})

	t.Run("401 preserves upstream body", func(t *testing.T) {
		upstreamBody := `{"error":"invalid_grant","error_description":"Invalid JWT Signature."}`
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(upstreamBody))
		}))
		defer server.Close()

		exchanger := NewExchanger(server.URL, 5*time.Second)
		_, err := exchanger.Exchange(context.Background(), "bad.assertion.sig")

		var exchangeErr *TokenExchangeError
		if !errors.As(err, &exchangeErr) {
			t.Fatalf("got %v, want *TokenExchangeError", err)
		}
		if exchangeErr.StatusCode != http.StatusUnauthorized {
			t.Errorf("StatusCode: got %d, want 401", exchangeErr.StatusCode)
		}
		if exchangeErr.Body != upstreamBody {
			t.Errorf("Body: got %q, want %q", exchangeErr.Body, upstreamBody)
		}
	})

	t.Run("deadline exceeded maps to timeout error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		exchanger := NewExchanger(server.URL, time.Minute)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := exchanger.Exchange(ctx, "slow.assertion.sig")
		if !errors.Is(err, domain.ErrOutboundTimeout) {
			t.Errorf("got %v, want ErrOutboundTimeout", err)
		}
	})
}
