package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteError is any transport failure or non-2xx response. Message
// carries the server's "message" field when the body has one.
type RemoteError struct {
	StatusCode int // zero when the request never reached the server
	Message    string
	err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("remote call failed: %s", e.Message)
	}
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("remote returned %d: %s", e.StatusCode, msg)
}

func (e *RemoteError) Unwrap() error {
	return e.err
}

// AuthError marks rejected credentials or an invalid token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// asAuthError converts credential rejections into AuthError and
// passes everything else through unchanged.
func asAuthError(err error) error {
	var remote *RemoteError
	if !errors.As(err, &remote) {
		return err
	}
	switch remote.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{Message: remote.Message}
	}
	return err
}

// ServerMessage extracts the human-readable message of err, or falls
// back to the given default. Forms surface this next to the failed
// action.
func ServerMessage(err error, fallback string) string {
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	var remote *RemoteError
	if errors.As(err, &remote) && remote.StatusCode != 0 && remote.Message != "" {
		return remote.Message
	}
	return fallback
}
