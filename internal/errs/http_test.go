package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetStatusAndCode(t *testing.T) {
	cases := []struct {
		err    *HTTPError
		status int
		code   string
	}{
		{NewUnauthorizedError("no", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{NewForbiddenError("no", false), http.StatusForbidden, "FORBIDDEN"},
		{NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{NewNotFoundError("gone", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status)
		assert.Equal(t, tc.code, tc.err.Code)
	}
}

func TestBadRequestCustomCode(t *testing.T) {
	code := "INVALID_PRODUCT_IDS"
	err := NewBadRequestError("Invalid product IDs: 3", true, &code, nil, nil)

	assert.Equal(t, code, err.Code)
	assert.Equal(t, "Invalid product IDs: 3", err.Error())
}

func TestWithMessageCopies(t *testing.T) {
	base := NewNotFoundError("Resource not found", false, nil)
	derived := base.WithMessage("Tag not found")

	assert.Equal(t, "Resource not found", base.Message)
	assert.Equal(t, "Tag not found", derived.Message)
	assert.Equal(t, base.Status, derived.Status)
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewInternalServerError())

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.True(t, errors.Is(wrapped, &HTTPError{}))
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("not found"))
}
