package apiclient

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError_MessageFallbacks(t *testing.T) {
	t.Parallel()

	// message field wins.
	err := newError(400, "400 Bad Request", []byte(`{"message":"nope","detail":"ignored"}`))
	assert.Equal(t, "nope", err.Message)

	// detail is the fallback.
	err = newError(400, "400 Bad Request", []byte(`{"detail":"details here"}`))
	assert.Equal(t, "details here", err.Message)

	// status line when neither present.
	err = newError(400, "400 Bad Request", []byte(`{}`))
	assert.Equal(t, "400 Bad Request", err.Message)

	// non-JSON body.
	err = newError(500, "500 Internal Server Error", []byte("oops"))
	assert.Equal(t, "500 Internal Server Error", err.Message)
	assert.Nil(t, err.Errors)
}

func TestNewError_ValidationFields(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"message": "Bad request",
		"code": "validation_failed",
		"email": ["required", "invalid format"],
		"password": ["too short"],
		"count": 3,
		"nested": {"not": "a list"}
	}`)

	err := newError(400, "400 Bad Request", body)
	assert.Equal(t, "Bad request", err.Message)
	assert.Equal(t, "validation_failed", err.Code)
	assert.Equal(t, []string{"required", "invalid format"}, err.Errors["email"])
	assert.Equal(t, []string{"too short"}, err.Errors["password"])
	assert.NotContains(t, err.Errors, "message", "reserved keys are excluded")
	assert.NotContains(t, err.Errors, "code")
	assert.NotContains(t, err.Errors, "count", "non-list values are not validation errors")
	assert.NotContains(t, err.Errors, "nested")
}

func TestNewError_NestedErrorsKey(t *testing.T) {
	t.Parallel()

	// Field lists nested under "errors" merge with the flattened form, and
	// "errors" itself is never treated as a field name.
	body := []byte(`{
		"message": "Bad request",
		"username": ["taken"],
		"errors": {
			"email": ["required"],
			"username": ["too long"],
			"empty": []
		}
	}`)

	err := newError(400, "400 Bad Request", body)
	assert.Equal(t, []string{"required"}, err.Errors["email"])
	assert.Equal(t, []string{"too long"}, err.Errors["username"], "nested form wins on collision")
	assert.NotContains(t, err.Errors, "errors")
	assert.NotContains(t, err.Errors, "empty", "empty lists are not validation errors")

	// A non-object "errors" value is ignored.
	err = newError(400, "400 Bad Request", []byte(`{"errors":"boom"}`))
	assert.Nil(t, err.Errors)
}

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		check  func(*Error) bool
	}{
		{http.StatusBadRequest, (*Error).IsValidation},
		{http.StatusUnprocessableEntity, (*Error).IsValidation},
		{http.StatusUnauthorized, (*Error).IsUnauthorized},
		{http.StatusForbidden, (*Error).IsForbidden},
		{http.StatusNotFound, (*Error).IsNotFound},
		{http.StatusConflict, (*Error).IsConflict},
		{http.StatusTooManyRequests, (*Error).IsRateLimited},
		{http.StatusInternalServerError, (*Error).IsServerError},
		{http.StatusServiceUnavailable, (*Error).IsServerError},
	}

	for _, tc := range cases {
		assert.True(t, tc.check(&Error{Status: tc.status}), "status %d", tc.status)
	}
}
