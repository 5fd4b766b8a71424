package fcm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-push-dispatch/internal/domain"
)

func testMessage() SendRequest {
	return Compose(domain.PushRequest{
		Token: "device-token-1",
		Title: "Hi",
		Body:  "There",
	})
}

func TestClientSend(t *testing.T) {
	t.Run("delivered", func(t *testing.T) {
		var gotPath, gotAuth, gotContentType string
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.Write([]byte(`{"name":"projects/primind-test/messages/msg1"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "primind-test", 5*time.Second)
		resp, err := client.Send(context.Background(), testMessage(), "T")
		if err != nil {
			t.Fatalf("Send returned error: %v", err)
		}

		if gotPath != "/v1/projects/primind-test/messages:send" {
			t.Errorf("path: got %q", gotPath)
		}
		if gotAuth != "Bearer T" {
			t.Errorf("Authorization: got %q", gotAuth)
		}
		if gotContentType != "application/json" {
			t.Errorf("Content-Type: got %q", gotContentType)
		}

		var sent SendRequest
		if err := json.Unmarshal(gotBody, &sent); err != nil {
			t.Fatalf("request body is not a send request: %v", err)
		}
		if sent.Message.Token != "device-token-1" {
			t.Errorf("sent token: got %q", sent.Message.Token)
		}

		var name struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(resp, &name); err != nil {
			t.Fatalf("gateway response not preserved: %v", err)
		}
		if name.Name != "projects/primind-test/messages/msg1" {
			t.Errorf("gateway response name: got %q", name.Name)
		}
	})

	t.Run("4xx is a permanent dispatch error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"invalid token"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "primind-test", 5*time.Second)
		_, err := client.Send(context.Background(), testMessage(), "T")

		var dispatchErr *DispatchError
		if !errors.As(err, &dispatchErr) {
			t.Fatalf("got %v, want *DispatchError", err)
		}
		if dispatchErr.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode: got %d, want 404", dispatchErr.StatusCode)
		}
		if string(dispatchErr.Body) != `{"error":"invalid token"}` {
			t.Errorf("Body: got %s", dispatchErr.Body)
		}
		if !dispatchErr.Permanent() {
			t.Error("4xx must be permanent")
		}
	})

	t.Run("5xx is transient", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"backend unavailable"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "primind-test", 5*time.Second)
		_, err := client.Send(context.Background(), testMessage(), "T")

		var dispatchErr *DispatchError
		if !errors.As(err, &dispatchErr) {
			t.Fatalf("got %v, want *DispatchError", err)
		}
		if dispatchErr.Permanent() {
			t.Error("5xx must not be permanent")
		}
	})

	t.Run("deadline exceeded maps to timeout error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(server.URL, "primind-test", time.Minute)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := client.Send(ctx, testMessage(), "T")
		if !errors.Is(err, domain.ErrOutboundTimeout) {
			t.Errorf("got %v, want ErrOutboundTimeout", err)
		}
	})
}
