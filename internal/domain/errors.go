package domain

import "errors"

var (
	ErrMissingToken      = errors.New("fcm_token is required")
	ErrMissingTitle      = errors.New("title is required")
	ErrMissingBody       = errors.New("body is required")
	ErrOutboundTimeout   = errors.New("outbound call exceeded deadline")
	ErrCredentialMissing = errors.New("service account credential is not configured")
)
