package domain

import (
	"encoding/json"
	"time"
)

// PushRequest is the generic dispatch input before any gateway-specific
// shaping is applied.
type PushRequest struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// DispatchResult describes the outcome of a single push delivery attempt.
type DispatchResult struct {
	Delivered       bool
	GatewayResponse json.RawMessage
	Duration        time.Duration
}

func (r *PushRequest) Validate() error {
	if r.Token == "" {
		return ErrMissingToken
	}
	if r.Title == "" {
		return ErrMissingTitle
	}
	if r.Body == "" {
		return ErrMissingBody
	}
	return nil
}
