package fcm

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DispatchError reports a non-2xx response from the FCM send endpoint with
// the gateway body preserved for the caller.
type DispatchError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("fcm send rejected: status=%d body=%s", e.StatusCode, string(e.Body))
}

// Permanent reports whether retrying with the same token is pointless: 4xx
// means the token or message is bad, 5xx is a transient gateway failure the
// caller may retry with a bound.
func (e *DispatchError) Permanent() bool {
	return e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError
}
