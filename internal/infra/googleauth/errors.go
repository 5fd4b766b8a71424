package googleauth

import (
	"errors"
	"fmt"
)

var (
	ErrCredentialIncomplete = errors.New("service account document is missing client_email, private_key or project_id")
	ErrInvalidPrivateKey    = errors.New("private_key is not a valid PEM-encoded RSA key")
	ErrSigning              = errors.New("failed to sign assertion")
)

// TokenExchangeError reports a non-2xx response from the OAuth2 token
// endpoint. The upstream body is preserved verbatim for diagnosis; a rejected
// assertion means the claims or key were wrong, so it is never retried.
type TokenExchangeError struct {
	StatusCode int
	Body       string
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("token exchange rejected: status=%d body=%s", e.StatusCode, e.Body)
}
