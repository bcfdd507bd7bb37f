// Package http provides the operational endpoints and shared middleware of the reader service.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"fluxactu/internal/usecase/reader"
)

// StatusProvider reports the session load state.
type StatusProvider interface {
	Status() reader.Status
}

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler reports the session state. It returns 503 when the last load failed.
type HealthHandler struct {
	Session StatusProvider
	Version string
	// Now defaults to time.Now.
	Now func() time.Time

	CSPEnabled    bool
	CSPReportOnly bool
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	checks := make(map[string]CheckStatus)
	healthy := true

	if h.Session == nil {
		checks["session"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
		healthy = false
	} else {
		check := checkSession(h.Session.Status())
		checks["session"] = check
		if check.Status == "unhealthy" {
			healthy = false
		}
	}

	checks["csp"] = CheckStatus{
		Status: "healthy",
		Details: map[string]any{
			"enabled":     h.CSPEnabled,
			"report_only": h.CSPReportOnly,
		},
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(HealthResponse{
		Status:    status,
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}); err != nil {
		slog.Warn("health: failed to encode response", slog.Any("error", err))
	}
}

func checkSession(st reader.Status) CheckStatus {
	details := map[string]any{
		"loading":  st.Loading,
		"settled":  st.Settled,
		"articles": st.Count,
	}
	if !st.LoadedAt.IsZero() {
		details["loaded_at"] = st.LoadedAt.UTC().Format(time.RFC3339)
	}

	switch {
	case st.Error != "":
		return CheckStatus{Status: "unhealthy", Message: st.Error, Details: details}
	case st.Loading:
		return CheckStatus{Status: "healthy", Message: "loading", Details: details}
	default:
		return CheckStatus{Status: "healthy", Details: details}
	}
}

// ReadyHandler returns 200 once the first load has settled, successful or not.
type ReadyHandler struct {
	Session StatusProvider
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Session == nil {
		http.Error(w, "session not configured", http.StatusServiceUnavailable)
		return
	}
	if !h.Session.Status().Settled {
		http.Error(w, "initial load in progress", http.StatusServiceUnavailable)
		return
	}
	writeText(w, "ready")
}

// LiveHandler always returns 200.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeText(w, "alive")
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Warn("failed to write response", slog.Any("error", err))
	}
}

// Register mounts the operational endpoints on mux.
func Register(mux *http.ServeMux, health *HealthHandler, ready *ReadyHandler) {
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", ready)
	mux.Handle("GET /live", &LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())
}
