package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["error"]
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{name: "map", code: http.StatusOK, data: map[string]string{"message": "ok"}, expectedBody: `{"message":"ok"}`},
		{name: "slice", code: http.StatusOK, data: []string{"All", "Crypto"}, expectedBody: `["All","Crypto"]`},
		{name: "struct", code: http.StatusCreated, data: struct {
			Title string `json:"title"`
		}{Title: "example.com"}, expectedBody: `{"title":"example.com"}`},
		{name: "nil", code: http.StatusNoContent, data: nil, expectedBody: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			JSON(rr, tt.code, tt.data)

			assert.Equal(t, tt.code, rr.Code)
			assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedBody, strings.TrimSpace(rr.Body.String()))
		})
	}
}

func TestJSON_KeepsUTF8(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusOK, map[string]string{"error": "Impossible de récupérer les articles (API)."})
	assert.Contains(t, rr.Body.String(), "récupérer")
}

func TestError(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, http.StatusBadRequest, errors.New("URL invalide"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "URL invalide", decodeError(t, rr))
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		err     error
		wantMsg string
	}{
		{name: "validation error passes", code: http.StatusBadRequest, err: errors.New("invalid feed URL"), wantMsg: "invalid feed URL"},
		{name: "range error passes", code: http.StatusBadRequest, err: errors.New("spice must be an integer between 0 and 100"), wantMsg: "spice must be an integer between 0 and 100"},
		{name: "unknown wording hidden", code: http.StatusBadRequest, err: errors.New("EOF"), wantMsg: "internal server error"},
		{name: "5xx always hidden", code: http.StatusBadGateway, err: errors.New("invalid upstream payload"), wantMsg: "internal server error"},
		{
			name:    "app error uses user message",
			code:    http.StatusInternalServerError,
			err:     NewAppError(http.StatusBadGateway, "Impossible de récupérer les articles (API).", errors.New("HTTP 500")),
			wantMsg: "Impossible de récupérer les articles (API).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			SafeError(rr, tt.code, tt.err)
			assert.Equal(t, tt.wantMsg, decodeError(t, rr))
		})
	}
}

func TestSafeError_AppErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	wrapped := fmt.Errorf("refresh: %w", NewAppError(http.StatusTooManyRequests, "rate limit exceeded", nil))
	SafeError(rr, http.StatusInternalServerError, wrapped)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "rate limit exceeded", decodeError(t, rr))
}

func TestSafeError_Nil(t *testing.T) {
	rr := httptest.NewRecorder()
	SafeError(rr, http.StatusBadRequest, nil)
	assert.Empty(t, rr.Body.String())
}

func TestAppError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	appErr := NewAppError(http.StatusBadGateway, "upstream unavailable", cause)

	assert.Equal(t, cause.Error(), appErr.Error())
	assert.ErrorIs(t, appErr, cause)
	assert.Equal(t, "only user", NewAppError(http.StatusBadRequest, "only user", nil).Error())
}
