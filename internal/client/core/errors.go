package core

import (
	"encoding/json"
	"errors"
)

// AuthError is returned when the backend rejects credentials on login. The
// detail is the backend's own message when it supplied one.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	return e.Detail
}

// DomainError carries a backend-supplied validation detail, e.g. "User not
// found" when inviting an unknown email. Callers display the message
// verbatim.
type DomainError struct {
	Detail string
}

func (e *DomainError) Error() string {
	return e.Detail
}

// ErrSettingsUpdateUnsupported marks the user-settings update path, which
// has no backend endpoint yet. Surfaced instead of faking success.
var ErrSettingsUpdateUnsupported = errors.New("user settings update is not supported by the backend yet")

// apiError is the backend's structured error body.
type apiError struct {
	Detail string `json:"detail"`
}

// errorDetail extracts the backend's detail field, falling back to the
// given message when the body has no recognizable shape.
func errorDetail(body []byte, fallback string) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	return fallback
}
