package smarthire

import (
	"fmt"
)

const (
	msgEmptyText     = "please provide resume text to analyze"
	msgNoFile        = "please select a file"
	msgAnalyzeFailed = "analysis failed"
)

// ValidationError is returned before any request is sent.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NetworkError means the backend could not be reached at all.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx answer. Message comes from the response body when present.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP status %d", e.StatusCode)
	}
	return e.Message
}

// ServiceError is a 2xx answer whose payload reports a failed analysis.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return msgAnalyzeFailed
	}
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
