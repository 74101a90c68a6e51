package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPError(t *testing.T) {
	assert.Equal(t, "http 409: taken", ErrConflict("taken").Error())
	assert.Equal(t, "http 404: Not Found", NewHTTPError(http.StatusNotFound, "").Error())
}

func TestStatusCode(t *testing.T) {
	wrapped := fmt.Errorf("get ticket: %w", ErrUnauthorized("no token"))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(wrapped))
	assert.Equal(t, 0, StatusCode(fmt.Errorf("plain")))
	assert.Equal(t, 0, StatusCode(nil))
}
