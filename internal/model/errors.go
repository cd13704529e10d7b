package model

import (
	"fmt"
	"strings"
)

// HTTPError wraps an unexpected HTTP status from an upstream provider.
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// MissingEnvError reports required environment variables that are unset.
type MissingEnvError struct {
	Keys []string
}

func (e *MissingEnvError) Error() string {
	return "missing required env vars: " + strings.Join(e.Keys, ", ")
}
