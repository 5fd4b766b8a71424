package googleauth

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Credential holds the parsed service account identity. The private key is
// parsed once at startup and shared read-only across requests.
type Credential struct {
	ClientEmail string
	ProjectID   string

	privateKey *rsa.PrivateKey
}

type serviceAccountDocument struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`
}

// ParseCredential parses a service account JSON document as held by the
// FIREBASE_SERVICE_ACCOUNT secret.
func ParseCredential(raw []byte) (*Credential, error) {
	var doc serviceAccountDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse service account document: %w", err)
	}

	if doc.ClientEmail == "" || doc.PrivateKey == "" || doc.ProjectID == "" {
		return nil, ErrCredentialIncomplete
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(doc.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}

	return &Credential{
		ClientEmail: doc.ClientEmail,
		ProjectID:   doc.ProjectID,
		privateKey:  key,
	}, nil
}
