package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSuccessResponse(t *testing.T) {
	c, rec := newTestContext()

	err := SuccessResponse(c, http.StatusCreated, "payment initiated", map[string]string{"checkout_request_id": "ws_CO_01"})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "payment initiated", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestErrorResponseHandler(t *testing.T) {
	c, rec := newTestContext()

	err := ErrorResponseHandler(c, http.StatusBadRequest, "invalid phone number")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "invalid phone number", resp.Error)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestErrorShorthands(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(echo.Context, string) error
		expected int
	}{
		{"bad request", BadRequestResponse, http.StatusBadRequest},
		{"unauthorized", UnauthorizedResponse, http.StatusUnauthorized},
		{"forbidden", ForbiddenResponse, http.StatusForbidden},
		{"not found", NotFoundResponse, http.StatusNotFound},
		{"internal error", InternalServerErrorResponse, http.StatusInternalServerError},
		{"service unavailable", ServiceUnavailableResponse, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext()
			assert.NoError(t, tt.fn(c, ""))
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}
