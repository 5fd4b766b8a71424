package googleauth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

	// assertionLifetime is the maximum lifetime Google accepts for a
	// self-issued assertion.
	assertionLifetime = time.Hour
)

type assertionClaims struct {
	jwt.RegisteredClaims

	// Audience shadows the registered claim: the token endpoint requires a
	// bare string, while jwt.ClaimStrings marshals single values as arrays.
	Audience string `json:"aud"`
	Scope    string `json:"scope"`
}

// BuildAssertion mints an RS256-signed JWT proving possession of the service
// account key, audience-bound to the token endpoint. The result is consumed
// exactly once by the token exchange and never cached.
func BuildAssertion(cred *Credential, tokenURL string, now time.Time) (string, error) {
	claims := assertionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cred.ClientEmail,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(assertionLifetime)),
		},
		Audience: tokenURL,
		Scope:    cloudPlatformScope,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(cred.privateKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigning, err)
	}
	return signed, nil
}
