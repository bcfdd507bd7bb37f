package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluxactu/internal/usecase/reader"
)

type stubStatus struct {
	status reader.Status
}

func (s stubStatus) Status() reader.Status { return s.status }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		session        StatusProvider
		expectedStatus int
		expectHealthy  bool
		message        string
	}{
		{
			name:           "loaded",
			session:        stubStatus{reader.Status{Settled: true, Count: 3, LoadedAt: fixed}},
			expectedStatus: http.StatusOK,
			expectHealthy:  true,
		},
		{
			name:           "initial load in progress",
			session:        stubStatus{reader.Status{Loading: true}},
			expectedStatus: http.StatusOK,
			expectHealthy:  true,
			message:        "loading",
		},
		{
			name:           "last load failed",
			session:        stubStatus{reader.Status{Settled: true, Error: reader.LoadErrorMessage}},
			expectedStatus: http.StatusServiceUnavailable,
			expectHealthy:  false,
			message:        reader.LoadErrorMessage,
		},
		{
			name:           "no session",
			session:        nil,
			expectedStatus: http.StatusServiceUnavailable,
			expectHealthy:  false,
			message:        "not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &HealthHandler{
				Session:    tt.session,
				Version:    "test-version",
				Now:        func() time.Time { return fixed },
				CSPEnabled: true,
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var response HealthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

			if tt.expectHealthy {
				assert.Equal(t, "healthy", response.Status)
			} else {
				assert.Equal(t, "unhealthy", response.Status)
			}
			assert.Equal(t, "test-version", response.Version)
			assert.Equal(t, "2026-03-01T12:00:00Z", response.Timestamp)
			assert.Equal(t, tt.message, response.Checks["session"].Message)
			assert.Equal(t, true, response.Checks["csp"].Details["enabled"])
		})
	}
}

func TestHealthHandler_SessionDetails(t *testing.T) {
	loadedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	handler := &HealthHandler{Session: stubStatus{reader.Status{Settled: true, Count: 2, LoadedAt: loadedAt}}}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var response HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

	details := response.Checks["session"].Details
	assert.Equal(t, float64(2), details["articles"])
	assert.Equal(t, true, details["settled"])
	assert.Equal(t, "2026-03-01T12:00:00Z", details["loaded_at"])
}

func TestReadyHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name    string
		session StatusProvider
		want    int
	}{
		{name: "settled", session: stubStatus{reader.Status{Settled: true}}, want: http.StatusOK},
		{name: "settled with error", session: stubStatus{reader.Status{Settled: true, Error: "x"}}, want: http.StatusOK},
		{name: "still loading", session: stubStatus{reader.Status{Loading: true}}, want: http.StatusServiceUnavailable},
		{name: "no session", session: nil, want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			(&ReadyHandler{Session: tt.session}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestLiveHandler_ServeHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
}

func TestRegister_Routes(t *testing.T) {
	mux := http.NewServeMux()
	st := stubStatus{reader.Status{Settled: true}}
	Register(mux, &HealthHandler{Session: st}, &ReadyHandler{Session: st})

	for _, path := range []string{"/health", "/ready", "/live", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}
