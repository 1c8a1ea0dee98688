package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// CodeSessionExpired is the machine-readable reason code the backend sets on
// 401 responses caused by an expired access token, as opposed to requests
// that were never authenticated. Matching on this code replaces fragile
// message-text matching.
const CodeSessionExpired = "session_expired"

// reserved names the top-level body keys that are never treated as
// field names for validation errors.
var reserved = map[string]struct{}{
	"message": {},
	"detail":  {},
	"code":    {},
	"errors":  {},
}

// Error is the typed error for every non-2xx backend response.
type Error struct {
	// Status is the HTTP status code of the response.
	Status int
	// Code is the backend's machine-readable reason code, if any.
	Code string
	// Message is a human-readable description, from the body's message or
	// detail field, falling back to the HTTP status line.
	Message string
	// Errors holds field-keyed validation messages when the body carries
	// them (field name to ordered list of messages).
	Errors map[string][]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsValidation reports whether the error represents a validation failure.
func (e *Error) IsValidation() bool {
	return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
}

// IsUnauthorized reports whether the request was rejected as unauthenticated.
func (e *Error) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// IsSessionExpired reports whether the 401 was caused by an expired access
// token and should trigger a transparent refresh rather than an error shown
// to the user.
func (e *Error) IsSessionExpired() bool {
	return e.Status == http.StatusUnauthorized && e.Code == CodeSessionExpired
}

// IsForbidden reports a 403 (forbidden or inactive account).
func (e *Error) IsForbidden() bool {
	return e.Status == http.StatusForbidden
}

// IsNotFound reports a 404.
func (e *Error) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsConflict reports a 409.
func (e *Error) IsConflict() bool {
	return e.Status == http.StatusConflict
}

// IsRateLimited reports a 429.
func (e *Error) IsRateLimited() bool {
	return e.Status == http.StatusTooManyRequests
}

// IsServerError reports any 5xx status.
func (e *Error) IsServerError() bool {
	return e.Status >= 500
}

// AsError unwraps err into *Error if it is (or wraps) a backend error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsSessionExpired reports whether err is a backend 401 with the
// session-expired reason code.
func IsSessionExpired(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.IsSessionExpired()
}

// newError builds an *Error from a non-2xx response body. Non-JSON bodies
// degrade to a message built from the HTTP status line.
func newError(status int, statusLine string, body []byte) *Error {
	apiErr := &Error{
		Status:  status,
		Message: statusLine,
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return apiErr
	}

	if msg, ok := stringField(raw, "message"); ok {
		apiErr.Message = msg
	} else if msg, ok := stringField(raw, "detail"); ok {
		apiErr.Message = msg
	}
	if code, ok := stringField(raw, "code"); ok {
		apiErr.Code = code
	}

	// Validation errors arrive in two shapes: field lists flattened at the
	// top level, or a field-keyed object under "errors". Both merge into
	// Errors; the nested form wins on a field collision.
	for field, value := range raw {
		if _, skip := reserved[field]; skip {
			continue
		}
		var messages []string
		if err := json.Unmarshal(value, &messages); err != nil || len(messages) == 0 {
			continue
		}
		apiErr.setFieldErrors(field, messages)
	}

	if nested, ok := raw["errors"]; ok {
		var fields map[string][]string
		if err := json.Unmarshal(nested, &fields); err == nil {
			for field, messages := range fields {
				if len(messages) == 0 {
					continue
				}
				apiErr.setFieldErrors(field, messages)
			}
		}
	}

	return apiErr
}

func (e *Error) setFieldErrors(field string, messages []string) {
	if e.Errors == nil {
		e.Errors = make(map[string][]string)
	}
	e.Errors[field] = messages
}

func stringField(raw map[string]json.RawMessage, key string) (string, bool) {
	value, ok := raw[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}
