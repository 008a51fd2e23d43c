package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func gatewayRequest(token string, header string) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/verification/phone", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	Gateway(token)(next).ServeHTTP(rec, req)
	return rec
}

func TestGateway_ValidToken(t *testing.T) {
	rec := gatewayRequest("s3cret", "Bearer s3cret")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGateway_WrongToken(t *testing.T) {
	rec := gatewayRequest("s3cret", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGateway_MissingHeader(t *testing.T) {
	rec := gatewayRequest("s3cret", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGateway_EmptyConfiguredTokenRejectsAll(t *testing.T) {
	rec := gatewayRequest("", "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
