package config

import "errors"

var (
	ErrServiceAccountMissing   = errors.New("FIREBASE_SERVICE_ACCOUNT is required")
	ErrInvalidOutboundTimeout  = errors.New("OUTBOUND_TIMEOUT_SECONDS must be a positive integer")
	ErrInvalidTokenCacheLeeway = errors.New("TOKEN_CACHE_LEEWAY_SECONDS must be a non-negative integer")
)
